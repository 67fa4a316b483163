package orm

import "time"

// LedgerOp represents the ledger operation of a journaled transaction.
type LedgerOp uint8

const (
	InvalidOp LedgerOp = iota
	ListCrop
	BuyCrop
	RegisterStorage
	UpdateAvailability
	DeactivateSlot
)

var (
	opValue = map[LedgerOp]string{
		InvalidOp:          "INVALID",
		ListCrop:           "LIST_CROP",
		BuyCrop:            "BUY_CROP",
		RegisterStorage:    "REGISTER_STORAGE",
		UpdateAvailability: "UPDATE_AVAILABILITY",
		DeactivateSlot:     "DEACTIVATE_SLOT",
	}

	valueOp = map[string]LedgerOp{
		"INVALID":             InvalidOp,
		"LIST_CROP":           ListCrop,
		"BUY_CROP":            BuyCrop,
		"REGISTER_STORAGE":    RegisterStorage,
		"UPDATE_AVAILABILITY": UpdateAvailability,
		"DEACTIVATE_SLOT":     DeactivateSlot,
	}
)

// StrToOp converts op string to ledger op.
func StrToOp(str string) LedgerOp {
	if _, ok := valueOp[str]; !ok {
		return InvalidOp
	}

	return valueOp[str]
}

// String returns the string of ledger op.
func (o LedgerOp) String() string {
	if _, ok := opValue[o]; !ok {
		return "unknown"
	}

	return opValue[o]
}

// TxStatus is the outcome of a journaled submission.
type TxStatus uint8

const (
	TxSucceeded TxStatus = iota + 1
	TxFailed
)

// String returns the string of tx status.
func (s TxStatus) String() string {
	switch s {
	case TxSucceeded:
		return "succeeded"
	case TxFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LedgerTransaction is a gorm table definition represents the
// ledger_transactions journal. Rows are written once per mutation, after
// the receipt or the failure is known.
type LedgerTransaction struct {
	ID        uint64 `gorm:"primary_key"`
	RequestID string `gorm:"size:36;index"`
	Op        LedgerOp
	Status    TxStatus
	Hash      string `gorm:"size:66;index"`
	From      string `gorm:"column:from_address;size:42;index"`
	To        string `gorm:"column:to_address;size:42"`
	Value     string
	GasUsed   uint64
	Block     uint64
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
