package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	// ErrReverted is reported when a transaction was mined with a failed
	// status.
	ErrReverted = errors.New("transaction reverted")
	// ErrNoAccount is reported when the signing context exposes no account.
	ErrNoAccount = errors.New("no account available in signing context")
	// ErrNotFound is reported when a read returns the zero record of an
	// unknown id.
	ErrNotFound = errors.New("record not found")
)

// LedgerError wraps any submission, revert or read failure from the chain
// client. Ledger calls are never retried.
type LedgerError struct {
	Op     string
	TxHash common.Hash
	Err    error
}

func (e *LedgerError) Error() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("ledger %s (tx %s): %v", e.Op, e.TxHash.Hex(), e.Err)
	}

	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}
