// Package market selects and shapes price forecasts for the dashboard.
package market

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agrisync/agrisync/predict"
)

// Source tells which dataset a Selection came from.
type Source string

const (
	SourceLive   Source = "live"
	SourceStatic Source = "static"
)

// Trend is the direction of a forecast.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// stableBand is the relative change under which a forecast is stable.
var stableBand = decimal.RequireFromString("0.01")

// Entry is a forecast with its derived trend.
type Entry struct {
	predict.Forecast
	Trend          Trend           `json:"trend"`
	ChangePct      decimal.Decimal `json:"change_pct"`
	Recommendation string          `json:"recommendation,omitempty"`
}

// Selection is the dataset chosen for one load. Live and static data are
// never merged.
type Selection struct {
	Source  Source  `json:"source"`
	Entries []Entry `json:"entries"`
	// Reason explains a static fallback.
	Reason string `json:"reason,omitempty"`
}

// Select picks the live forecasts when they were fetched without error and
// are non-empty, and the static table otherwise.
func Select(live []predict.Forecast, err error) Selection {
	if err != nil {
		return Selection{Source: SourceStatic, Entries: Static(), Reason: err.Error()}
	}

	if len(live) == 0 {
		return Selection{Source: SourceStatic, Entries: Static(), Reason: "no live forecasts"}
	}

	entries := make([]Entry, len(live))
	for i, f := range live {
		entries[i] = newEntry(f)
	}

	return Selection{Source: SourceLive, Entries: entries}
}

func newEntry(f predict.Forecast) Entry {
	change := ChangePct(f.Points)
	return Entry{
		Forecast:  f,
		Trend:     TrendOf(change),
		ChangePct: change.Mul(decimal.NewFromInt(100)).Round(2),
	}
}

// ChangePct returns the relative change from the first to the last point.
func ChangePct(points []predict.PricePoint) decimal.Decimal {
	if len(points) < 2 || points[0].Price.IsZero() {
		return decimal.Zero
	}

	first := points[0].Price
	last := points[len(points)-1].Price
	return last.Sub(first).Div(first)
}

// TrendOf classifies a relative change.
func TrendOf(change decimal.Decimal) Trend {
	switch {
	case change.Abs().LessThan(stableBand):
		return TrendStable
	case change.IsPositive():
		return TrendUp
	default:
		return TrendDown
	}
}

// Filter keeps entries of category (empty or "all" keeps every category)
// whose crop name contains search, case-insensitively.
func Filter(entries []Entry, category, search string) []Entry {
	category = strings.ToLower(strings.TrimSpace(category))
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if category != "" && category != "all" && string(e.Category) != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Crop), search) {
			continue
		}
		out = append(out, e)
	}

	return out
}
