package util

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const etherDecimals = 18

// WeiToEther formats a wei amount in ether with up to 18 decimals and no
// trailing zeros.
func WeiToEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}

// EtherToWei parses a decimal ether amount. Amounts finer than one wei are
// rejected.
func EtherToWei(ether string) (*big.Int, error) {
	d, err := decimal.NewFromString(ether)
	if err != nil {
		return nil, errors.Wrapf(err, "parse ether amount %q", ether)
	}

	wei := d.Shift(etherDecimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, errors.Errorf("ether amount %q is finer than one wei", ether)
	}

	return wei.BigInt(), nil
}

// ParseWei parses a base 10 wei amount.
func ParseWei(s string) (*big.Int, error) {
	wei, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid wei amount %q", s)
	}

	return wei, nil
}
