package chain

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

const (
	defaultGasLimit     = uint64(300000)
	defaultPollInterval = time.Second
)

// Config holds the static contract configuration of a Ledger.
type Config struct {
	MarketplaceAddress  string        `yaml:"marketplace_address"`
	StorageAddress      string        `yaml:"storage_address"`
	GasLimit            uint64        `yaml:"gas_limit"`
	ReceiptPollInterval time.Duration `yaml:"receipt_poll_interval"`
}

type contract struct {
	address common.Address
	abi     abi.ABI
}

// Ledger submits crop marketplace and storage registry operations to their
// contracts. It keeps no session state: the signing account is resolved on
// every call, so account switches between calls are honoured.
type Ledger struct {
	backend      Backend
	accounts     AccountProvider
	market       *contract
	storage      *contract
	gasLimit     uint64
	pollInterval time.Duration
}

// New returns a Ledger bound to the configured contracts.
func New(backend Backend, accounts AccountProvider, cfg Config) (*Ledger, error) {
	market, err := newContract(cfg.MarketplaceAddress, marketplaceABI)
	if err != nil {
		return nil, errors.Wrap(err, "marketplace contract")
	}

	storage, err := newContract(cfg.StorageAddress, storageABI)
	if err != nil {
		return nil, errors.Wrap(err, "storage contract")
	}

	l := &Ledger{
		backend:      backend,
		accounts:     accounts,
		market:       market,
		storage:      storage,
		gasLimit:     cfg.GasLimit,
		pollInterval: cfg.ReceiptPollInterval,
	}
	if l.gasLimit == 0 {
		l.gasLimit = defaultGasLimit
	}
	if l.pollInterval <= 0 {
		l.pollInterval = defaultPollInterval
	}

	return l, nil
}

func newContract(address, abiJSON string) (*contract, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.Errorf("invalid contract address %q", address)
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse abi")
	}

	return &contract{
		address: common.HexToAddress(address),
		abi:     parsed,
	}, nil
}

// CurrentAccount resolves the first account of the signing context.
func (l *Ledger) CurrentAccount(ctx context.Context) (common.Address, error) {
	accounts, err := l.accounts.Accounts(ctx)
	if err != nil {
		return common.Address{}, &LedgerError{Op: "resolve account", Err: err}
	}

	if len(accounts) == 0 {
		return common.Address{}, &LedgerError{Op: "resolve account", Err: ErrNoAccount}
	}

	return accounts[0], nil
}

// call executes a read-only contract method and returns its raw output.
func (l *Ledger) call(
	ctx context.Context,
	c *contract,
	method string,
	args ...interface{},
) ([]byte, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, &LedgerError{Op: method, Err: errors.Wrap(err, "pack call")}
	}

	res, err := l.backend.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	})
	if err != nil {
		return nil, &LedgerError{Op: method, Err: err}
	}

	return res, nil
}

// callInto executes a read-only contract method and unpacks its outputs
// into out.
func (l *Ledger) callInto(
	ctx context.Context,
	c *contract,
	out interface{},
	method string,
	args ...interface{},
) error {
	res, err := l.call(ctx, c, method, args...)
	if err != nil {
		return err
	}

	if err := c.abi.UnpackIntoInterface(out, method, res); err != nil {
		return &LedgerError{Op: method, Err: errors.Wrap(err, "decode result")}
	}

	return nil
}

// transact submits a state-changing method exactly once and waits for it to
// be mined. value may be nil for non-payable methods.
func (l *Ledger) transact(
	ctx context.Context,
	c *contract,
	value *big.Int,
	method string,
	args ...interface{},
) (*Receipt, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, &LedgerError{Op: method, Err: errors.Wrap(err, "pack call")}
	}

	from, err := l.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := l.backend.SendTransaction(ctx, ethereum.CallMsg{
		From:  from,
		To:    &c.address,
		Gas:   l.gasLimit,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, &LedgerError{Op: method, Err: err}
	}

	receipt, err := l.waitMined(ctx, hash)
	if err != nil {
		return nil, &LedgerError{Op: method, TxHash: hash, Err: err}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &LedgerError{Op: method, TxHash: hash, Err: ErrReverted}
	}

	r := &Receipt{
		TxHash:  hash,
		From:    from,
		To:      c.address,
		Method:  method,
		Value:   value,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		r.Block = receipt.BlockNumber.Uint64()
	}

	return r, nil
}

// waitMined polls for the receipt of hash. It never resubmits.
func (l *Ledger) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := l.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}

		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-ticker.C:
		}
	}
}

func toUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, errors.New("missing integer value")
	}

	if !v.IsUint64() {
		return 0, errors.Errorf("value %s overflows uint64", v)
	}

	return v.Uint64(), nil
}
