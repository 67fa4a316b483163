package chain

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// Backend is the transport to the ledger node.
type Backend interface {
	// CallContract executes a read-only call against the latest state.
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	// SendTransaction submits a transaction signed by msg.From and returns
	// its hash. It must submit at most once.
	SendTransaction(ctx context.Context, msg ethereum.CallMsg) (common.Hash, error)
	// TransactionReceipt returns ethereum.NotFound while the transaction is
	// pending.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// AccountProvider exposes the accounts of a signing context.
type AccountProvider interface {
	Accounts(ctx context.Context) ([]common.Address, error)
}

// StaticAccounts is a fixed signing context.
type StaticAccounts []common.Address

// Accounts returns the fixed account list.
func (s StaticAccounts) Accounts(_ context.Context) ([]common.Address, error) {
	return s, nil
}

// RPCBackend talks to a JSON-RPC ledger node whose accounts are unlocked on
// the node side, so transactions are signed by the node.
type RPCBackend struct {
	rpc *rpc.Client
	eth *ethclient.Client
}

// Dial connects to the ledger node at endpoint.
func Dial(ctx context.Context, endpoint string) (*RPCBackend, error) {
	c, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "dial ledger node %s", endpoint)
	}

	return &RPCBackend{
		rpc: c,
		eth: ethclient.NewClient(c),
	}, nil
}

// CallContract implements Backend.
func (b *RPCBackend) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return b.eth.CallContract(ctx, msg, nil)
}

type sendTxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Gas   hexutil.Uint64  `json:"gas"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data"`
}

// SendTransaction implements Backend using eth_sendTransaction.
func (b *RPCBackend) SendTransaction(ctx context.Context, msg ethereum.CallMsg) (common.Hash, error) {
	args := sendTxArgs{
		From: msg.From,
		To:   msg.To,
		Gas:  hexutil.Uint64(msg.Gas),
		Data: msg.Data,
	}
	if msg.Value != nil {
		args.Value = (*hexutil.Big)(msg.Value)
	}

	var hash common.Hash
	if err := b.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, err
	}

	return hash, nil
}

// TransactionReceipt implements Backend.
func (b *RPCBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return b.eth.TransactionReceipt(ctx, hash)
}

// Accounts implements AccountProvider with the node managed accounts.
func (b *RPCBackend) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := b.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Close releases the node connection.
func (b *RPCBackend) Close() {
	b.rpc.Close()
}
