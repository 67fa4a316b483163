package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/agrisync/agrisync/validate"
)

type registerSlotInput struct {
	CapacityGB int64 `json:"capacity_gb" validate:"gt=0"`
}

type updateSlotInput struct {
	AvailableGB int64 `json:"available_gb" validate:"gte=0"`
}

// RegisterStorageSlot registers a new slot owned by the current account.
func (l *Ledger) RegisterStorageSlot(ctx context.Context, capacityGB int64) (*Receipt, error) {
	if err := validate.Struct(&registerSlotInput{CapacityGB: capacityGB}); err != nil {
		return nil, err
	}

	return l.transact(ctx, l.storage, nil, "registerStorage", big.NewInt(capacityGB))
}

// UpdateAvailability sets the available capacity of a slot. Only the owner
// may update a slot and availableGB must not exceed the capacity; both rules
// are enforced by the contract.
func (l *Ledger) UpdateAvailability(ctx context.Context, slotID uint64, availableGB int64) (*Receipt, error) {
	if err := validate.Struct(&updateSlotInput{AvailableGB: availableGB}); err != nil {
		return nil, err
	}

	return l.transact(
		ctx,
		l.storage,
		nil,
		"updateAvailability",
		new(big.Int).SetUint64(slotID),
		big.NewInt(availableGB),
	)
}

// DeactivateSlot marks a slot inactive.
func (l *Ledger) DeactivateSlot(ctx context.Context, slotID uint64) (*Receipt, error) {
	return l.transact(ctx, l.storage, nil, "deactivateSlot", new(big.Int).SetUint64(slotID))
}

// ListSlotsForCurrentAccount returns the slot ids owned by the current
// account.
func (l *Ledger) ListSlotsForCurrentAccount(ctx context.Context) ([]uint64, error) {
	owner, err := l.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}

	return l.ListSlots(ctx, owner)
}

// ListSlots returns the slot ids owned by owner.
func (l *Ledger) ListSlots(ctx context.Context, owner common.Address) ([]uint64, error) {
	const method = "getFarmerSlots"
	var ids []*big.Int
	if err := l.callInto(ctx, l.storage, &ids, method, owner); err != nil {
		return nil, err
	}

	slots := make([]uint64, len(ids))
	for i, id := range ids {
		v, err := toUint64(id)
		if err != nil {
			return nil, &LedgerError{Op: method, Err: errors.Wrap(err, "decode slot id")}
		}
		slots[i] = v
	}

	return slots, nil
}

// GetSlot reads the details of a slot. The registry getter answers an
// unknown id with a zero record, which is reported as ErrNotFound.
func (l *Ledger) GetSlot(ctx context.Context, slotID uint64) (*StorageSlot, error) {
	const method = "storageSlots"
	t := &slotTuple{}
	if err := l.callInto(ctx, l.storage, t, method, new(big.Int).SetUint64(slotID)); err != nil {
		return nil, err
	}

	if t.Owner == (common.Address{}) {
		return nil, &LedgerError{Op: method, Err: ErrNotFound}
	}

	slot, err := decodeSlot(t)
	if err != nil {
		return nil, &LedgerError{Op: method, Err: err}
	}

	return slot, nil
}

func decodeSlot(t *slotTuple) (*StorageSlot, error) {
	id, err := toUint64(t.ID)
	if err != nil {
		return nil, errors.Wrap(err, "decode slot id")
	}

	capacity, err := toUint64(t.Capacity)
	if err != nil {
		return nil, errors.Wrap(err, "decode capacity")
	}

	available, err := toUint64(t.Available)
	if err != nil {
		return nil, errors.Wrap(err, "decode available capacity")
	}

	return &StorageSlot{
		ID:          id,
		Owner:       t.Owner,
		CapacityGB:  capacity,
		AvailableGB: available,
		IsActive:    t.IsActive,
	}, nil
}
