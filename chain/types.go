package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CropListing is a crop offered for sale on the marketplace contract.
type CropListing struct {
	ID       uint64         `json:"id"`
	Seller   common.Address `json:"seller"`
	Name     string         `json:"name"`
	Quantity uint64         `json:"quantity"`
	PriceWei *big.Int       `json:"price_wei"`
	IsSold   bool           `json:"is_sold"`
}

// StorageSlot is a unit of registered storage capacity tracked by the
// storage registry contract.
type StorageSlot struct {
	ID          uint64         `json:"id"`
	Owner       common.Address `json:"owner"`
	CapacityGB  uint64         `json:"capacity_gb"`
	AvailableGB uint64         `json:"available_gb"`
	IsActive    bool           `json:"is_active"`
}

// Receipt describes a mined state-changing transaction.
type Receipt struct {
	TxHash  common.Hash    `json:"tx_hash"`
	From    common.Address `json:"from"`
	To      common.Address `json:"to"`
	Method  string         `json:"method"`
	Value   *big.Int       `json:"value,omitempty"`
	GasUsed uint64         `json:"gas_used"`
	Block   uint64         `json:"block"`
}

// slotTuple mirrors the storageSlots getter outputs.
type slotTuple struct {
	ID        *big.Int       `abi:"id"`
	Owner     common.Address `abi:"owner"`
	Capacity  *big.Int       `abi:"capacity"`
	Available *big.Int       `abi:"available"`
	IsActive  bool           `abi:"isActive"`
}
