package service

import (
	"github.com/gin-gonic/gin"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/database/orm"
)

type slotIDReq struct {
	ID uint64 `uri:"id" json:"-" form:"-"`
}

type registerSlotReq struct {
	CapacityGB int64 `json:"capacity_gb" form:"capacity_gb"`
}

type updateSlotReq struct {
	ID          uint64 `uri:"id" json:"-" form:"-"`
	AvailableGB int64  `json:"available_gb" form:"available_gb"`
}

type slotsResp struct {
	Owner string               `json:"owner"`
	Slots []*chain.StorageSlot `json:"slots"`
}

// RegisterSlot handles the POST /storage/slots request.
func (s *Service) RegisterSlot(c *gin.Context, req *registerSlotReq) (*receiptResp, error) {
	receipt, err := s.ledger.RegisterStorageSlot(c.Request.Context(), req.CapacityGB)
	s.journal(c, orm.RegisterStorage, receipt, err)
	if err != nil {
		return nil, err
	}

	return s.newReceiptResp(c, receipt), nil
}

// Slots handles the GET /storage/slots request. It lists the slots of the
// current account with their details.
func (s *Service) Slots(c *gin.Context) (*slotsResp, error) {
	ctx := c.Request.Context()
	owner, err := s.ledger.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.ledger.ListSlots(ctx, owner)
	if err != nil {
		return nil, err
	}

	slots := make([]*chain.StorageSlot, len(ids))
	for i, id := range ids {
		slot, err := s.ledger.GetSlot(ctx, id)
		if err != nil {
			return nil, err
		}
		slots[i] = slot
	}

	return &slotsResp{
		Owner: owner.Hex(),
		Slots: slots,
	}, nil
}

// Slot handles the GET /storage/slots/:id request.
func (s *Service) Slot(c *gin.Context, req *slotIDReq) (*chain.StorageSlot, error) {
	return s.ledger.GetSlot(c.Request.Context(), req.ID)
}

// UpdateSlot handles the PUT /storage/slots/:id request.
func (s *Service) UpdateSlot(c *gin.Context, req *updateSlotReq) (*receiptResp, error) {
	receipt, err := s.ledger.UpdateAvailability(c.Request.Context(), req.ID, req.AvailableGB)
	s.journal(c, orm.UpdateAvailability, receipt, err)
	if err != nil {
		return nil, err
	}

	return s.newReceiptResp(c, receipt), nil
}

// DeactivateSlot handles the DELETE /storage/slots/:id request.
func (s *Service) DeactivateSlot(c *gin.Context, req *slotIDReq) (*receiptResp, error) {
	receipt, err := s.ledger.DeactivateSlot(c.Request.Context(), req.ID)
	s.journal(c, orm.DeactivateSlot, receipt, err)
	if err != nil {
		return nil, err
	}

	return s.newReceiptResp(c, receipt), nil
}
