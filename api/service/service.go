package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/predict"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Ledger is the chain client used by the service.
type Ledger interface {
	CurrentAccount(ctx context.Context) (common.Address, error)
	ListCrop(ctx context.Context, name string, quantity int64, priceWei *big.Int) (*chain.Receipt, error)
	BuyCrop(ctx context.Context, cropID uint64, priceWei *big.Int) (*chain.Receipt, error)
	GetCrop(ctx context.Context, cropID uint64) (*chain.CropListing, error)
	RegisterStorageSlot(ctx context.Context, capacityGB int64) (*chain.Receipt, error)
	UpdateAvailability(ctx context.Context, slotID uint64, availableGB int64) (*chain.Receipt, error)
	DeactivateSlot(ctx context.Context, slotID uint64) (*chain.Receipt, error)
	ListSlots(ctx context.Context, owner common.Address) ([]uint64, error)
	GetSlot(ctx context.Context, slotID uint64) (*chain.StorageSlot, error)
}

// Predictor is the prediction service client used by the service.
type Predictor interface {
	MaxUploadSize() int64
	ClassifyDisease(ctx context.Context, image []byte, filename string) (*predict.Result, error)
	ClassifySoil(ctx context.Context, image []byte, filename string) (*predict.Result, error)
	FetchMarketForecast(ctx context.Context) ([]predict.Forecast, error)
	Health(ctx context.Context) (*predict.Health, error)
	HealthDetailed(ctx context.Context) (*predict.Health, error)
}

// Service defines an instance of service that handles third-party requests.
type Service struct {
	db        *gorm.DB
	ledger    Ledger
	predictor Predictor
}

// New creates a new service instance.
func New(db *gorm.DB, ledger Ledger, predictor Predictor) *Service {
	return &Service{
		db:        db,
		ledger:    ledger,
		predictor: predictor,
	}
}

type pingResp struct {
	Pong string `json:"pong"`
}

func (s *Service) Ping(_ *gin.Context) (*pingResp, error) {
	return &pingResp{Pong: "pong"}, nil
}

func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

var (
	_ Ledger    = (*chain.Ledger)(nil)
	_ Predictor = (*predict.Client)(nil)
)
