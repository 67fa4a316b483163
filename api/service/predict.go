package service

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/agrisync/agrisync/predict"
	"github.com/agrisync/agrisync/validate"
)

const imageFormField = "file"

type classifyFunc func(ctx context.Context, image []byte, filename string) (*predict.Result, error)

// PredictDisease handles the POST /predict/disease request.
func (s *Service) PredictDisease(c *gin.Context) (*predict.Result, error) {
	return s.classify(c, s.predictor.ClassifyDisease)
}

// PredictSoil handles the POST /predict/soil request.
func (s *Service) PredictSoil(c *gin.Context) (*predict.Result, error) {
	return s.classify(c, s.predictor.ClassifySoil)
}

func (s *Service) classify(c *gin.Context, fn classifyFunc) (*predict.Result, error) {
	file, err := c.FormFile(imageFormField)
	if err != nil {
		return nil, validate.Fail("image", "required", nil)
	}

	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	// One byte past the limit is enough for the client to reject it.
	image, err := io.ReadAll(io.LimitReader(src, s.predictor.MaxUploadSize()+1))
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}

	return fn(c.Request.Context(), image, file.Filename)
}

// Health handles the /health request.
func (s *Service) Health(c *gin.Context) (*predict.Health, error) {
	return s.predictor.Health(c.Request.Context())
}

// HealthDetailed handles the /healthz request.
func (s *Service) HealthDetailed(c *gin.Context) (*predict.Health, error) {
	return s.predictor.HealthDetailed(c.Request.Context())
}
