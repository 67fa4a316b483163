package service

import (
	"math/big"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agrisync/agrisync/api/util"
	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/database/orm"
	"github.com/agrisync/agrisync/validate"
)

type cropIDReq struct {
	ID uint64 `uri:"id" json:"-" form:"-"`
}

type listCropReq struct {
	Name     string `json:"name" form:"name"`
	Quantity int64  `json:"quantity" form:"quantity"`
	PriceWei string `json:"price_wei" form:"price_wei"`
	PriceEth string `json:"price_eth" form:"price_eth"`
}

type cropResp struct {
	ID       uint64 `json:"id"`
	Seller   string `json:"seller"`
	Name     string `json:"name"`
	Quantity uint64 `json:"quantity"`
	PriceWei string `json:"price_wei"`
	PriceEth string `json:"price_eth"`
	IsSold   bool   `json:"is_sold"`
}

type accountResp struct {
	Address string `json:"address"`
}

// Account handles the /account request.
func (s *Service) Account(c *gin.Context) (*accountResp, error) {
	account, err := s.ledger.CurrentAccount(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return &accountResp{Address: account.Hex()}, nil
}

// ListCrop handles the POST /crops request.
func (s *Service) ListCrop(c *gin.Context, req *listCropReq) (*receiptResp, error) {
	price, err := parsePrice(req.PriceWei, req.PriceEth)
	if err != nil {
		return nil, err
	}

	receipt, err := s.ledger.ListCrop(c.Request.Context(), req.Name, req.Quantity, price)
	s.journal(c, orm.ListCrop, receipt, err)
	if err != nil {
		return nil, err
	}

	return s.newReceiptResp(c, receipt), nil
}

// Crop handles the GET /crops/:id request.
func (s *Service) Crop(c *gin.Context, req *cropIDReq) (*cropResp, error) {
	crop, err := s.ledger.GetCrop(c.Request.Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return newCropResp(crop), nil
}

// BuyCrop handles the POST /crops/:id/buy request. The listing is read
// first and its exact price is sent as the payment.
func (s *Service) BuyCrop(c *gin.Context, req *cropIDReq) (*receiptResp, error) {
	ctx := c.Request.Context()
	crop, err := s.ledger.GetCrop(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if crop.IsSold {
		return nil, errCropSold
	}

	receipt, err := s.ledger.BuyCrop(ctx, crop.ID, crop.PriceWei)
	s.journal(c, orm.BuyCrop, receipt, err)
	if err != nil {
		return nil, err
	}

	return s.newReceiptResp(c, receipt), nil
}

func newCropResp(crop *chain.CropListing) *cropResp {
	return &cropResp{
		ID:       crop.ID,
		Seller:   crop.Seller.Hex(),
		Name:     crop.Name,
		Quantity: crop.Quantity,
		PriceWei: crop.PriceWei.String(),
		PriceEth: util.WeiToEther(crop.PriceWei),
		IsSold:   crop.IsSold,
	}
}

// parsePrice accepts either a wei or an ether amount. A missing price is
// left nil for the ledger to reject.
func parsePrice(wei, eth string) (*big.Int, error) {
	wei = strings.TrimSpace(wei)
	eth = strings.TrimSpace(eth)
	switch {
	case wei != "":
		price, err := util.ParseWei(wei)
		if err != nil {
			return nil, validate.Fail("price_wei", "numeric", wei)
		}
		return price, nil

	case eth != "":
		price, err := util.EtherToWei(eth)
		if err != nil {
			return nil, validate.Fail("price_eth", "numeric", eth)
		}
		return price, nil
	}

	return nil, nil
}
