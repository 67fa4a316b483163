package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/agrisync/agrisync/validate"
)

// DegradedLabel is reported instead of a prediction when the service says it
// failed internally.
const DegradedLabel = "Service Update In Progress"

const degradedNotes = "The analysis model is being updated. Please try again in a few minutes."

// Result is a normalized classification. It only lives for one request.
type Result struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Status     string   `json:"status,omitempty"`
	Treatment  string   `json:"treatment,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Crops      []string `json:"crops,omitempty"`
	Care       []string `json:"care,omitempty"`
	Warning    string   `json:"warning,omitempty"`
	Degraded   bool     `json:"degraded"`
	Message    string   `json:"message,omitempty"`
}

type rawResult struct {
	Class      string   `json:"class"`
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
	Status     string   `json:"status"`
	Treatment  string   `json:"treatment"`
	Notes      string   `json:"notes"`
	Crops      []string `json:"crops"`
	Care       []string `json:"care"`
	Warning    string   `json:"warning"`
	Error      string   `json:"error"`
	Message    string   `json:"message"`
}

// ClassifyDisease uploads a plant leaf image to the disease classifier.
func (c *Client) ClassifyDisease(ctx context.Context, image []byte, filename string) (*Result, error) {
	return c.classify(ctx, predictDiseasePath, image, filename)
}

// ClassifySoil uploads a soil image to the soil type classifier.
func (c *Client) ClassifySoil(ctx context.Context, image []byte, filename string) (*Result, error) {
	return c.classify(ctx, predictSoilPath, image, filename)
}

func (c *Client) classify(ctx context.Context, path string, image []byte, filename string) (*Result, error) {
	contentType, err := c.checkImage(image)
	if err != nil {
		return nil, err
	}

	body, formType, err := multipartImage(image, filename, contentType)
	if err != nil {
		return nil, errors.Wrap(err, "build upload")
	}

	status, data, err := c.do(ctx, http.MethodPost, path, formType, body)
	if err != nil {
		return nil, err
	}

	return decodeResult(status, data)
}

// checkImage rejects empty, oversized and non-image payloads before upload
// and returns the sniffed content type.
func (c *Client) checkImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", validate.Fail("image", "required", 0)
	}

	if err := validate.Var("image_size", int64(len(image)), fmt.Sprintf("lte=%d", c.maxUploadSize)); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(image)
	if err := validate.Var("content_type", contentType, "startswith=image/"); err != nil {
		return "", err
	}

	return contentType, nil
}

func multipartImage(image []byte, filename, contentType string) (*bytes.Buffer, string, error) {
	if filename == "" {
		filename = "upload"
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

// decodeResult normalizes a classifier response. An analysis failure
// reported by the service as a JSON error body yields a degraded Result
// and no error. Any other non-2xx response is a KindServer error.
func decodeResult(status int, data []byte) (*Result, error) {
	raw := &rawResult{}
	decodeErr := json.Unmarshal(data, raw)

	if status >= http.StatusInternalServerError && decodeErr == nil && raw.Error != "" {
		return degraded(raw.Error), nil
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		msg := raw.Error
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &Error{Kind: KindServer, Status: status, Err: errors.New(msg)}
	}

	if decodeErr != nil {
		return nil, &Error{Kind: KindFormat, Status: status, Err: errors.Wrap(decodeErr, "decode classification")}
	}

	if raw.Error != "" || raw.Status == "error" || raw.Message == "Error analyzing image" {
		msg := raw.Error
		if msg == "" {
			msg = firstNonEmpty(raw.Warning, raw.Message, "analysis failed")
		}
		return degraded(msg), nil
	}

	label := firstNonEmpty(raw.Class, raw.Prediction)
	if label == "" {
		return nil, &Error{Kind: KindFormat, Status: status, Err: errors.New("response carries no class or prediction")}
	}

	return &Result{
		Label:      label,
		Confidence: normalizeConfidence(raw.Confidence),
		Status:     raw.Status,
		Treatment:  raw.Treatment,
		Notes:      raw.Notes,
		Crops:      raw.Crops,
		Care:       raw.Care,
		Warning:    raw.Warning,
	}, nil
}

func degraded(msg string) *Result {
	return &Result{
		Label:    DegradedLabel,
		Notes:    degradedNotes,
		Crops:    []string{},
		Care:     []string{},
		Degraded: true,
		Message:  msg,
	}
}

// normalizeConfidence maps the service confidence to [0,1]. The soil model
// reports a percentage.
func normalizeConfidence(v *float64) float64 {
	if v == nil {
		return 0
	}

	c := *v
	if c > 1 {
		c /= 100
	}

	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
