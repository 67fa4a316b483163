package server

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/predict"
	"github.com/agrisync/agrisync/validate"
)

var (
	farmer = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	marketAddr = common.HexToAddress("0x00000000000000000000000000000000000000c1")
)

type stubLedger struct {
	mu      sync.Mutex
	crops   map[uint64]*chain.CropListing
	slots   map[uint64]*chain.StorageSlot
	nonce   int64
	paid    []*big.Int
	buyErr  error
	account error

	accountCalls int
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		crops: make(map[uint64]*chain.CropListing),
		slots: make(map[uint64]*chain.StorageSlot),
	}
}

func (l *stubLedger) receipt(method string, value *big.Int) *chain.Receipt {
	l.nonce++
	return &chain.Receipt{
		TxHash:  common.BigToHash(big.NewInt(l.nonce)),
		From:    farmer,
		To:      marketAddr,
		Method:  method,
		Value:   value,
		GasUsed: 21000,
		Block:   uint64(l.nonce),
	}
}

func (l *stubLedger) CurrentAccount(_ context.Context) (common.Address, error) {
	l.mu.Lock()
	l.accountCalls++
	l.mu.Unlock()
	if l.account != nil {
		return common.Address{}, &chain.LedgerError{Op: "accounts", Err: l.account}
	}
	return farmer, nil
}

func (l *stubLedger) ListCrop(
	_ context.Context,
	name string,
	quantity int64,
	priceWei *big.Int,
) (*chain.Receipt, error) {
	if quantity <= 0 {
		return nil, validate.Fail("quantity", "gt", quantity)
	}
	if priceWei == nil {
		return nil, validate.Fail("price_wei", "required", nil)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	id := uint64(len(l.crops) + 1)
	l.crops[id] = &chain.CropListing{
		ID:       id,
		Seller:   farmer,
		Name:     name,
		Quantity: uint64(quantity),
		PriceWei: new(big.Int).Set(priceWei),
	}
	return l.receipt("listCrop", nil), nil
}

func (l *stubLedger) BuyCrop(_ context.Context, cropID uint64, priceWei *big.Int) (*chain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buyErr != nil {
		return nil, &chain.LedgerError{
			Op:     "buyCrop",
			TxHash: common.HexToHash("0xdead"),
			Err:    l.buyErr,
		}
	}

	crop, ok := l.crops[cropID]
	if !ok || crop.IsSold {
		return nil, &chain.LedgerError{Op: "buyCrop", Err: chain.ErrReverted}
	}
	crop.IsSold = true
	l.paid = append(l.paid, new(big.Int).Set(priceWei))
	return l.receipt("buyCrop", priceWei), nil
}

func (l *stubLedger) GetCrop(_ context.Context, cropID uint64) (*chain.CropListing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	crop, ok := l.crops[cropID]
	if !ok {
		return nil, &chain.LedgerError{Op: "getCrop", Err: chain.ErrNotFound}
	}
	cp := *crop
	return &cp, nil
}

func (l *stubLedger) RegisterStorageSlot(_ context.Context, capacityGB int64) (*chain.Receipt, error) {
	if capacityGB <= 0 {
		return nil, validate.Fail("capacity_gb", "gt", capacityGB)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	id := uint64(len(l.slots))
	l.slots[id] = &chain.StorageSlot{
		ID:          id,
		Owner:       farmer,
		CapacityGB:  uint64(capacityGB),
		AvailableGB: uint64(capacityGB),
		IsActive:    true,
	}
	return l.receipt("registerStorage", nil), nil
}

func (l *stubLedger) UpdateAvailability(_ context.Context, slotID uint64, availableGB int64) (*chain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[slotID]
	if !ok || uint64(availableGB) > slot.CapacityGB {
		return nil, &chain.LedgerError{Op: "updateAvailability", Err: chain.ErrReverted}
	}
	slot.AvailableGB = uint64(availableGB)
	return l.receipt("updateAvailability", nil), nil
}

func (l *stubLedger) DeactivateSlot(_ context.Context, slotID uint64) (*chain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[slotID]
	if !ok {
		return nil, &chain.LedgerError{Op: "deactivateSlot", Err: chain.ErrReverted}
	}
	slot.IsActive = false
	return l.receipt("deactivateSlot", nil), nil
}

func (l *stubLedger) ListSlots(_ context.Context, owner common.Address) ([]uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]uint64, 0, len(l.slots))
	for i := uint64(0); i < uint64(len(l.slots)); i++ {
		if l.slots[i].Owner == owner {
			ids = append(ids, i)
		}
	}
	return ids, nil
}

func (l *stubLedger) GetSlot(_ context.Context, slotID uint64) (*chain.StorageSlot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[slotID]
	if !ok {
		return nil, &chain.LedgerError{Op: "storageSlots", Err: chain.ErrNotFound}
	}
	cp := *slot
	return &cp, nil
}

type stubPredictor struct {
	result    *predict.Result
	err       error
	forecasts []predict.Forecast
	marketErr error
	images    [][]byte
}

func (p *stubPredictor) MaxUploadSize() int64 {
	return 1 << 10
}

func (p *stubPredictor) classify(image []byte, filename string) (*predict.Result, error) {
	p.images = append(p.images, image)
	if p.err != nil {
		return nil, p.err
	}
	if int64(len(image)) > p.MaxUploadSize() {
		return nil, validate.Fail("image_size", "lte", len(image))
	}
	res := *p.result
	res.Message = fmt.Sprintf("analyzed %s", filename)
	return &res, nil
}

func (p *stubPredictor) ClassifyDisease(_ context.Context, image []byte, filename string) (*predict.Result, error) {
	return p.classify(image, filename)
}

func (p *stubPredictor) ClassifySoil(_ context.Context, image []byte, filename string) (*predict.Result, error) {
	return p.classify(image, filename)
}

func (p *stubPredictor) FetchMarketForecast(_ context.Context) ([]predict.Forecast, error) {
	return p.forecasts, p.marketErr
}

func (p *stubPredictor) Health(_ context.Context) (*predict.Health, error) {
	return &predict.Health{Status: "healthy"}, nil
}

func (p *stubPredictor) HealthDetailed(_ context.Context) (*predict.Health, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &predict.Health{Status: "healthy", Models: map[string]bool{"disease": true, "soil": true}}, nil
}
