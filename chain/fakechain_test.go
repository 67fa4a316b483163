package chain

import (
	"context"
	"encoding/binary"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var (
	marketAddr  = common.HexToAddress("0x1406E4b10DEb8feA28BF50bd4F66DdABF7d9A5F5")
	storageAddr = common.HexToAddress("0x00c56AE214FaE7C06560b0Eda2bfBb33784fdA48")
	alice       = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob         = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol       = common.HexToAddress("0x00000000000000000000000000000000000ca201")
)

type fakeCrop struct {
	seller   common.Address
	name     string
	quantity *big.Int
	price    *big.Int
	sold     bool
}

type fakeSlot struct {
	owner     common.Address
	capacity  *big.Int
	available *big.Int
	active    bool
}

// fakeChain executes the marketplace and storage contracts in memory by
// decoding calldata with the same ABIs the Ledger uses.
type fakeChain struct {
	mu         sync.Mutex
	marketABI  abi.ABI
	storageABI abi.ABI

	crops       []*fakeCrop
	slots       map[uint64]*fakeSlot
	nextSlotID  uint64
	farmerSlots map[common.Address][]uint64

	// zeroMissingCrops answers getCrop on an unknown id with a zero record
	// instead of a revert.
	zeroMissingCrops bool

	receipts     map[common.Hash]*types.Receipt
	pendingPolls int
	nonce        uint64

	calls int
	sends []ethereum.CallMsg
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		marketABI:   mustABI(marketplaceABI),
		storageABI:  mustABI(storageABI),
		slots:       make(map[uint64]*fakeSlot),
		farmerSlots: make(map[common.Address][]uint64),
		receipts:    make(map[common.Hash]*types.Receipt),
	}
}

func mustABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

func (f *fakeChain) decode(msg ethereum.CallMsg) (*abi.Method, []interface{}, error) {
	if msg.To == nil || len(msg.Data) < 4 {
		return nil, nil, errors.New("invalid call")
	}

	var parsed abi.ABI
	switch *msg.To {
	case marketAddr:
		parsed = f.marketABI
	case storageAddr:
		parsed = f.storageABI
	default:
		return nil, nil, errors.New("no contract code at address")
	}

	method, err := parsed.MethodById(msg.Data[:4])
	if err != nil {
		return nil, nil, err
	}

	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, nil, err
	}

	return method, args, nil
}

func (f *fakeChain) CallContract(_ context.Context, msg ethereum.CallMsg) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	method, args, err := f.decode(msg)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "getCrop":
		id := args[0].(*big.Int).Uint64()
		if id == 0 || id > uint64(len(f.crops)) {
			if f.zeroMissingCrops {
				return method.Outputs.Pack(big.NewInt(0), common.Address{}, "", big.NewInt(0), big.NewInt(0), false)
			}
			return nil, errors.New("execution reverted: crop does not exist")
		}
		c := f.crops[id-1]
		return method.Outputs.Pack(new(big.Int).SetUint64(id), c.seller, c.name, c.quantity, c.price, c.sold)

	case "getFarmerSlots":
		ids := f.farmerSlots[args[0].(common.Address)]
		out := make([]*big.Int, len(ids))
		for i, id := range ids {
			out[i] = new(big.Int).SetUint64(id)
		}
		return method.Outputs.Pack(out)

	case "storageSlots":
		id := args[0].(*big.Int).Uint64()
		s, ok := f.slots[id]
		if !ok {
			return method.Outputs.Pack(big.NewInt(0), common.Address{}, big.NewInt(0), big.NewInt(0), false)
		}
		return method.Outputs.Pack(new(big.Int).SetUint64(id), s.owner, s.capacity, s.available, s.active)

	case "nextSlotId":
		return method.Outputs.Pack(new(big.Int).SetUint64(f.nextSlotID))
	}

	return nil, errors.Errorf("unsupported call %s", method.Name)
}

func (f *fakeChain) SendTransaction(_ context.Context, msg ethereum.CallMsg) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, msg)

	method, args, err := f.decode(msg)
	if err != nil {
		return common.Hash{}, err
	}

	status := types.ReceiptStatusSuccessful
	switch method.Name {
	case "listCrop":
		f.crops = append(f.crops, &fakeCrop{
			seller:   msg.From,
			name:     args[0].(string),
			quantity: args[1].(*big.Int),
			price:    args[2].(*big.Int),
		})

	case "buyCrop":
		id := args[0].(*big.Int).Uint64()
		if id == 0 || id > uint64(len(f.crops)) {
			return common.Hash{}, errors.New("VM Exception while processing transaction: revert crop does not exist")
		}
		c := f.crops[id-1]
		if c.sold {
			return common.Hash{}, errors.New("VM Exception while processing transaction: revert already sold")
		}
		if msg.Value == nil || msg.Value.Cmp(c.price) != 0 {
			status = types.ReceiptStatusFailed
			break
		}
		c.sold = true

	case "registerStorage":
		id := f.nextSlotID
		f.nextSlotID++
		capacity := args[0].(*big.Int)
		f.slots[id] = &fakeSlot{
			owner:     msg.From,
			capacity:  capacity,
			available: new(big.Int).Set(capacity),
			active:    true,
		}
		f.farmerSlots[msg.From] = append(f.farmerSlots[msg.From], id)

	case "updateAvailability":
		s, ok := f.slots[args[0].(*big.Int).Uint64()]
		if !ok || s.owner != msg.From {
			return common.Hash{}, errors.New("VM Exception while processing transaction: revert not slot owner")
		}
		available := args[1].(*big.Int)
		if available.Cmp(s.capacity) > 0 {
			return common.Hash{}, errors.New("VM Exception while processing transaction: revert exceeds capacity")
		}
		s.available = available

	case "deactivateSlot":
		s, ok := f.slots[args[0].(*big.Int).Uint64()]
		if !ok || s.owner != msg.From {
			return common.Hash{}, errors.New("VM Exception while processing transaction: revert not slot owner")
		}
		s.active = false

	default:
		return common.Hash{}, errors.Errorf("unsupported transaction %s", method.Name)
	}

	f.nonce++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], f.nonce)
	hash := crypto.Keccak256Hash(msg.From.Bytes(), buf[:])
	f.receipts[hash] = &types.Receipt{
		Status:      status,
		TxHash:      hash,
		GasUsed:     21000,
		BlockNumber: new(big.Int).SetUint64(f.nonce),
	}

	return hash, nil
}

func (f *fakeChain) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pendingPolls > 0 {
		f.pendingPolls--
		return nil, ethereum.NotFound
	}

	r, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (f *fakeChain) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

// countingAccounts records how often the signing context is consulted.
type countingAccounts struct {
	mu       sync.Mutex
	accounts []common.Address
	hits     int
}

func (c *countingAccounts) Accounts(_ context.Context) ([]common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
	return c.accounts, nil
}

func (c *countingAccounts) switchTo(a common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = []common.Address{a}
}
