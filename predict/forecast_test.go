package predict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestFetchMarketForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/market-predictions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"status":"success","data":[
			{"crop":"banana","unit":"Rs./Dozen","predictions":[
				{"date":"2025-03-23","price":15.01},{"date":"2025-03-16","price":15.01},{"date":"2025-03-30","price":18.0}],
			 "graph_url":"http://localhost:8000/graphs/banana.png"},
			{"crop":"onion","error":"model file missing"},
			{"crop":"wheat","unit":"Rs./Kg","predictions":[{"date":"2025-03-16","price":44.13}]}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, Config{})
	forecasts, err := client.FetchMarketForecast(context.Background())
	if err != nil {
		t.Fatalf("fetch market forecast: %v", err)
	}
	if len(forecasts) != 2 {
		t.Fatalf("forecasts = %d, want 2 (failed crop skipped)", len(forecasts))
	}

	banana := forecasts[0]
	if banana.Crop != "banana" || banana.Category != CategoryFruit || banana.Unit != "Rs./Dozen" {
		t.Errorf("unexpected forecast %+v", banana)
	}
	for i := 1; i < len(banana.Points); i++ {
		if !banana.Points[i-1].Date.Before(banana.Points[i].Date.Time) {
			t.Errorf("points not ascending at %d", i)
		}
	}
	if !banana.Points[2].Price.Equal(decimal.RequireFromString("18")) {
		t.Errorf("last price = %s, want 18", banana.Points[2].Price)
	}

	if forecasts[1].Category != CategoryGrain {
		t.Errorf("wheat category = %s, want grain", forecasts[1].Category)
	}
}

func TestFetchMarketForecastFailures(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{
			name:     "service reports error",
			status:   http.StatusOK,
			body:     `{"status":"error","message":"Market prediction failed","data":[]}`,
			wantKind: KindServer,
		},
		{
			name:     "non-2xx",
			status:   http.StatusInternalServerError,
			body:     `{}`,
			wantKind: KindServer,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html></html>`,
			wantKind: KindFormat,
		},
		{
			name:     "missing data",
			status:   http.StatusOK,
			body:     `{"status":"success"}`,
			wantKind: KindFormat,
		},
		{
			name:     "bad date",
			status:   http.StatusOK,
			body:     `{"status":"success","data":[{"crop":"rice","predictions":[{"date":"16/03/2025","price":1}]}]}`,
			wantKind: KindFormat,
		},
	}
	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL, Config{})
			_, err := client.FetchMarketForecast(context.Background())
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("want *Error, got %v", err)
			}
			if perr.Kind != c.wantKind {
				t.Errorf("kind = %s, want %s", perr.Kind, c.wantKind)
			}
		})
	}
}

func TestFetchMarketForecastTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	timeout := 50 * time.Millisecond
	client := newTestClient(t, srv.URL, Config{Timeout: timeout})

	start := time.Now()
	_, err := client.FetchMarketForecast(context.Background())
	elapsed := time.Since(start)

	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindTransport {
		t.Fatalf("want transport error, got %v", err)
	}
	if elapsed > timeout+time.Second {
		t.Errorf("fetch took %v, timeout was %v", elapsed, timeout)
	}
}

func TestCategoryOf(t *testing.T) {
	testCases := []struct {
		crop string
		want Category
	}{
		{"banana", CategoryFruit},
		{"Rice", CategoryGrain},
		{"wheat", CategoryGrain},
		{"carrot", CategoryVegetable},
		{"okra", CategoryVegetable},
	}
	for _, c := range testCases {
		if got := CategoryOf(c.crop); got != c.want {
			t.Errorf("CategoryOf(%s) = %s, want %s", c.crop, got, c.want)
		}
	}
}
