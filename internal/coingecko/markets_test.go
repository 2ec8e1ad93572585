package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

const bitcoinResponse = `[
	{
		"id": "bitcoin",
		"symbol": "btc",
		"name": "Bitcoin",
		"current_price": 65000,
		"market_cap": 1.2e12,
		"total_volume": 3.0e10,
		"last_updated": "2025-05-20T12:00:00.000Z"
	}
]`

func TestGetCoinMarkets(t *testing.T) {
	t.Run("query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			if r.URL.Path != "/coins/markets" {
				t.Errorf("path = %q, want %q", r.URL.Path, "/coins/markets")
			}
			if got := r.URL.Query().Get("ids"); got != "bitcoin,ethereum" {
				t.Errorf("ids = %q, want %q", got, "bitcoin,ethereum")
			}
			if got := r.URL.Query().Get("vs_currency"); got != "usd" {
				t.Errorf("vs_currency = %q, want %q", got, "usd")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(bitcoinResponse))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		markets, err := c.GetCoinMarkets(context.Background(), MarketsOptions{
			IDs: []string{"bitcoin", "ethereum"},
		})
		if err != nil {
			t.Fatalf("GetCoinMarkets() error = %v", err)
		}
		if len(markets) != 1 {
			t.Fatalf("len(markets) = %d, want 1", len(markets))
		}

		m := markets[0]
		if m.Name != "Bitcoin" || m.Symbol != "btc" {
			t.Errorf("name/symbol = %q/%q, want Bitcoin/btc", m.Name, m.Symbol)
		}
		if !m.CurrentPrice.Valid || !m.CurrentPrice.Decimal.Equal(decimal.NewFromInt(65000)) {
			t.Errorf("CurrentPrice = %v, want 65000", m.CurrentPrice)
		}
		if !m.MarketCap.Decimal.Equal(decimal.RequireFromString("1200000000000")) {
			t.Errorf("MarketCap = %v, want 1.2e12", m.MarketCap.Decimal)
		}
		if !m.TotalVolume.Decimal.Equal(decimal.RequireFromString("30000000000")) {
			t.Errorf("TotalVolume = %v, want 3.0e10", m.TotalVolume.Decimal)
		}
	})

	t.Run("null values", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":"x","symbol":"x","name":"X","current_price":1.5,"market_cap":null,"total_volume":null}]`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		markets, err := c.GetCoinMarkets(context.Background(), MarketsOptions{IDs: []string{"x"}})
		if err != nil {
			t.Fatalf("GetCoinMarkets() error = %v", err)
		}
		if markets[0].MarketCap.Valid {
			t.Error("MarketCap should be invalid for null")
		}
		if !markets[0].CurrentPrice.Valid {
			t.Error("CurrentPrice should be valid")
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"status":{"error_code":429,"error_message":"You've exceeded the Rate Limit. Please visit https://www.coingecko.com/en/api/pricing to subscribe to our API plans for higher rate limits."}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetCoinMarkets(context.Background(), MarketsOptions{IDs: []string{"bitcoin"}})

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError in chain, got %v", err)
		}
		if apiErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
		}
		if !strings.HasPrefix(apiErr.Message, "You've exceeded the Rate Limit.") {
			t.Errorf("Message = %q, want the provider's rate limit text", apiErr.Message)
		}
		if !strings.Contains(err.Error(), "exceeded the Rate Limit") {
			t.Errorf("error = %q, want it to carry the provider message", err)
		}
	})

	t.Run("empty id list", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.Write([]byte(bitcoinResponse))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetCoinMarkets(context.Background(), MarketsOptions{})
		if !errors.Is(err, ErrNoCoins) {
			t.Fatalf("GetCoinMarkets() error = %v, want ErrNoCoins", err)
		}
		if got := requests.Load(); got != 0 {
			t.Errorf("requests = %d, want 0", got)
		}
	})

	t.Run("non-array body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":{"error_code":1}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetCoinMarkets(context.Background(), MarketsOptions{IDs: []string{"bitcoin"}})
		if err == nil || !strings.Contains(err.Error(), "unmarshal") {
			t.Fatalf("GetCoinMarkets() error = %v, want unmarshal error", err)
		}
	})
}
