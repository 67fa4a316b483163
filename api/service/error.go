package service

import (
	"net/http"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/predict"
	"github.com/agrisync/agrisync/validate"
)

var (
	errSystem = errors.New("system error")
	// ErrInvalidRequest is reported when a request cannot be bound.
	ErrInvalidRequest = errors.New("invalid request")
	errNotFound       = errors.New("record not found")
	errCropSold       = errors.New("crop already sold")
	errLedger         = errors.New("ledger error")
	errPredictNetwork = errors.New("prediction service unreachable")
	errPredictServer  = errors.New("prediction service error")
	errPredictFormat  = errors.New("malformed prediction response")
)

var ErrorCode = map[error]int{
	errSystem:         1000,
	ErrInvalidRequest: 1001,
	errLedger:         1002,
	errPredictNetwork: 1003,
	errPredictServer:  1004,
	errPredictFormat:  1005,
	errNotFound:       1006,
	errCropSold:       1007,
}

var errorStatus = map[int]int{
	1000: http.StatusInternalServerError,
	1001: http.StatusBadRequest,
	1002: http.StatusBadGateway,
	1003: http.StatusGatewayTimeout,
	1004: http.StatusBadGateway,
	1005: http.StatusBadGateway,
	1006: http.StatusNotFound,
	1007: http.StatusConflict,
}

// ErrorStatus maps err to its http status and error code.
func ErrorStatus(err error) (int, int) {
	code := ErrorCode[classify(err)]
	return errorStatus[code], code
}

func classify(err error) error {
	var (
		ve *validate.ValidationError
		le *chain.LedgerError
		pe *predict.Error
	)
	switch {
	case errors.As(err, &ve):
		return ErrInvalidRequest
	case errors.Is(err, chain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return errNotFound
	case errors.As(err, &le):
		return errLedger
	case errors.As(err, &pe):
		switch pe.Kind {
		case predict.KindTransport:
			return errPredictNetwork
		case predict.KindServer:
			return errPredictServer
		default:
			return errPredictFormat
		}
	}

	for known := range ErrorCode {
		if errors.Is(err, known) {
			return known
		}
	}

	return errSystem
}
