package chain

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/agrisync/agrisync/validate"
)

type listCropInput struct {
	Name     string   `json:"name" validate:"required"`
	Quantity int64    `json:"quantity" validate:"gt=0"`
	PriceWei *big.Int `json:"price_wei" validate:"required,gt=0"`
}

type buyCropInput struct {
	PriceWei *big.Int `json:"price_wei" validate:"required,gt=0"`
}

// ListCrop offers a new crop for sale. Invalid input is rejected with a
// *validate.ValidationError before anything is sent to the ledger.
func (l *Ledger) ListCrop(
	ctx context.Context,
	name string,
	quantity int64,
	priceWei *big.Int,
) (*Receipt, error) {
	in := &listCropInput{
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		PriceWei: priceWei,
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	return l.transact(
		ctx,
		l.market,
		nil,
		"listCrop",
		in.Name,
		big.NewInt(in.Quantity),
		new(big.Int).Set(in.PriceWei),
	)
}

// BuyCrop purchases a listing, sending exactly priceWei as the transaction
// value. The caller passes the price it fetched with GetCrop; a stale or
// sold listing surfaces as a *LedgerError and is not reconciled here.
func (l *Ledger) BuyCrop(ctx context.Context, cropID uint64, priceWei *big.Int) (*Receipt, error) {
	if err := validate.Struct(&buyCropInput{PriceWei: priceWei}); err != nil {
		return nil, err
	}

	return l.transact(
		ctx,
		l.market,
		new(big.Int).Set(priceWei),
		"buyCrop",
		new(big.Int).SetUint64(cropID),
	)
}

// GetCrop reads a listing. A missing id surfaces as a *LedgerError: either
// the contract's revert, or ErrNotFound when it answers with a zero record.
func (l *Ledger) GetCrop(ctx context.Context, cropID uint64) (*CropListing, error) {
	const method = "getCrop"
	res, err := l.call(ctx, l.market, method, new(big.Int).SetUint64(cropID))
	if err != nil {
		return nil, err
	}

	values, err := l.market.abi.Unpack(method, res)
	if err != nil {
		return nil, &LedgerError{Op: method, Err: errors.Wrap(err, "decode result")}
	}

	crop, err := decodeCrop(values)
	if err != nil {
		return nil, &LedgerError{Op: method, Err: err}
	}

	if crop.Seller == (common.Address{}) {
		return nil, &LedgerError{Op: method, Err: ErrNotFound}
	}

	return crop, nil
}

// decodeCrop turns the positional getCrop tuple into a CropListing.
func decodeCrop(values []interface{}) (*CropListing, error) {
	if len(values) != 6 {
		return nil, errors.Errorf("unexpected getCrop output length %d", len(values))
	}

	id, ok1 := values[0].(*big.Int)
	seller, ok2 := values[1].(common.Address)
	name, ok3 := values[2].(string)
	quantity, ok4 := values[3].(*big.Int)
	price, ok5 := values[4].(*big.Int)
	sold, ok6 := values[5].(bool)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return nil, errors.New("unexpected getCrop output types")
	}

	cropID, err := toUint64(id)
	if err != nil {
		return nil, errors.Wrap(err, "decode crop id")
	}

	qty, err := toUint64(quantity)
	if err != nil {
		return nil, errors.Wrap(err, "decode quantity")
	}

	return &CropListing{
		ID:       cropID,
		Seller:   seller,
		Name:     name,
		Quantity: qty,
		PriceWei: price,
		IsSold:   sold,
	}, nil
}
