package service

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/api/pagination"
	"github.com/agrisync/agrisync/api/util"
	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/database/orm"
	"github.com/agrisync/agrisync/validate"
)

type receiptResp struct {
	RequestID string `json:"request_id"`
	TxHash    string `json:"tx_hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Method    string `json:"method"`
	ValueWei  string `json:"value_wei,omitempty"`
	ValueEth  string `json:"value_eth,omitempty"`
	GasUsed   uint64 `json:"gas_used"`
	Block     uint64 `json:"block"`
}

func (s *Service) newReceiptResp(c *gin.Context, r *chain.Receipt) *receiptResp {
	resp := &receiptResp{
		RequestID: requestID(c),
		TxHash:    r.TxHash.Hex(),
		From:      r.From.Hex(),
		To:        r.To.Hex(),
		Method:    r.Method,
		GasUsed:   r.GasUsed,
		Block:     r.Block,
	}
	if r.Value != nil && r.Value.Sign() > 0 {
		resp.ValueWei = r.Value.String()
		resp.ValueEth = util.WeiToEther(r.Value)
	}

	return resp
}

// journal records the outcome of a ledger mutation. Requests rejected by
// validation never reached the ledger and are not recorded. A failed write
// is logged and does not fail the request, the transaction is already
// final.
func (s *Service) journal(c *gin.Context, op orm.LedgerOp, r *chain.Receipt, err error) {
	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		return
	}

	row := &orm.LedgerTransaction{
		RequestID: requestID(c),
		Op:        op,
		Status:    orm.TxSucceeded,
	}
	if r != nil {
		row.Hash = r.TxHash.Hex()
		row.From = r.From.Hex()
		row.To = r.To.Hex()
		row.GasUsed = r.GasUsed
		row.Block = r.Block
		if r.Value != nil {
			row.Value = r.Value.String()
		}
	}

	if err != nil {
		row.Status = orm.TxFailed
		row.Error = err.Error()

		var le *chain.LedgerError
		if errors.As(err, &le) && le.TxHash != (common.Hash{}) {
			row.Hash = le.TxHash.Hex()
		}
	}

	if err := s.db.Create(row).Error; err != nil {
		log.Error("journal ledger transaction failed",
			"request_id", row.RequestID,
			"op", op.String(),
			"hash", row.Hash,
			"error", err,
		)
	}
}

type transactionsReq struct {
	From   string `form:"from"`
	Op     string `form:"op"`
	Status string `form:"status"`
}

type transaction struct {
	RequestID string `json:"request_id"`
	Op        string `json:"op"`
	Status    string `json:"status"`
	Hash      string `json:"hash,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	ValueWei  string `json:"value_wei,omitempty"`
	GasUsed   uint64 `json:"gas_used"`
	Block     uint64 `json:"block"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Transactions handles the /transactions request.
func (s *Service) Transactions(
	_ *gin.Context,
	req *transactionsReq,
	page *pagination.Query,
) (*pagination.Result, error) {
	query := s.db.Model(&orm.LedgerTransaction{})
	if req.From != "" {
		if !common.IsHexAddress(req.From) {
			return nil, validate.Fail("from", "eth_addr", req.From)
		}
		query = query.Where("from_address = ?", common.HexToAddress(req.From).Hex())
	}

	if req.Op != "" {
		op := orm.StrToOp(req.Op)
		if op == orm.InvalidOp {
			return nil, validate.Fail("op", "oneof", req.Op)
		}
		query = query.Where("op = ?", op)
	}

	switch req.Status {
	case "":
	case orm.TxSucceeded.String():
		query = query.Where("status = ?", orm.TxSucceeded)
	case orm.TxFailed.String():
		query = query.Where("status = ?", orm.TxFailed)
	default:
		return nil, validate.Fail("status", "oneof", req.Status)
	}

	count := int64(0)
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	rows := make([]*orm.LedgerTransaction, 0)
	if err := query.Offset(page.Start).
		Limit(page.Limit).
		Order("id desc").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	txs := make([]*transaction, len(rows))
	for i, row := range rows {
		txs[i] = &transaction{
			RequestID: row.RequestID,
			Op:        row.Op.String(),
			Status:    row.Status.String(),
			Hash:      row.Hash,
			From:      row.From,
			To:        row.To,
			ValueWei:  row.Value,
			GasUsed:   row.GasUsed,
			Block:     row.Block,
			Error:     row.Error,
			Timestamp: row.CreatedAt.Unix(),
		}
	}

	return &pagination.Result{
		Data:  txs,
		Total: count,
	}, nil
}
