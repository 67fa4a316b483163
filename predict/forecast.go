package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Category groups crops on the market dashboard.
type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
	CategoryGrain     Category = "grain"
)

var cropCategories = map[string]Category{
	"banana": CategoryFruit,
	"mango":  CategoryFruit,
	"apple":  CategoryFruit,
	"wheat":  CategoryGrain,
	"rice":   CategoryGrain,
	"maize":  CategoryGrain,
	"barley": CategoryGrain,
}

// CategoryOf returns the dashboard category of crop. Unknown crops are
// vegetables.
func CategoryOf(crop string) Category {
	if c, ok := cropCategories[strings.ToLower(crop)]; ok {
		return c
	}

	return CategoryVegetable
}

// Date is a calendar day encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate parses a YYYY-MM-DD string.
func NewDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}

	return Date{Time: t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

// PricePoint is a forecast price for one day.
type PricePoint struct {
	Date  Date            `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// Forecast is the price outlook of one crop, ordered by date ascending.
type Forecast struct {
	Crop     string       `json:"crop"`
	Unit     string       `json:"unit"`
	Category Category     `json:"category"`
	Points   []PricePoint `json:"predictions"`
	GraphURL string       `json:"graph_url,omitempty"`
}

type marketResp struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data"`
}

type rawForecast struct {
	Crop        string       `json:"crop"`
	Unit        string       `json:"unit"`
	Category    Category     `json:"category"`
	Predictions []PricePoint `json:"predictions"`
	GraphURL    string       `json:"graph_url"`
	Error       string       `json:"error"`
}

// FetchMarketForecast loads the live forecasts. It only distinguishes a
// well-formed success from failure; choosing a fallback is up to the caller.
func (c *Client) FetchMarketForecast(ctx context.Context) ([]Forecast, error) {
	status, data, err := c.do(ctx, http.MethodGet, marketPath, "", nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &Error{Kind: KindServer, Status: status, Err: errors.New(http.StatusText(status))}
	}

	resp := &marketResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, &Error{Kind: KindFormat, Status: status, Err: errors.Wrap(err, "decode market predictions")}
	}

	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = "unexpected status " + resp.Status
		}
		return nil, &Error{Kind: KindServer, Status: status, Err: errors.New(msg)}
	}

	if resp.Data == nil {
		return nil, &Error{Kind: KindFormat, Status: status, Err: errors.New("missing data")}
	}

	forecasts := make([]Forecast, 0, len(resp.Data))
	for _, item := range resp.Data {
		f, err := decodeForecast(item)
		if err != nil {
			return nil, &Error{Kind: KindFormat, Status: status, Err: err}
		}

		// Crops the service could not forecast carry an error and are left out.
		if f != nil {
			forecasts = append(forecasts, *f)
		}
	}

	return forecasts, nil
}

func decodeForecast(item json.RawMessage) (*Forecast, error) {
	raw := &rawForecast{}
	if err := json.Unmarshal(item, raw); err != nil {
		return nil, errors.Wrap(err, "decode forecast")
	}

	if raw.Error != "" {
		return nil, nil
	}

	if raw.Crop == "" {
		return nil, errors.New("forecast without crop")
	}

	category := raw.Category
	if category == "" {
		category = CategoryOf(raw.Crop)
	}

	points := raw.Predictions
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})

	return &Forecast{
		Crop:     raw.Crop,
		Unit:     raw.Unit,
		Category: category,
		Points:   points,
		GraphURL: raw.GraphURL,
	}, nil
}
