package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCoinSet(t *testing.T) {
	t.Run("join preserves order", func(t *testing.T) {
		s := NewCoinSet("bitcoin", "ethereum", "solana")
		if got := s.Join(); got != "bitcoin,ethereum,solana" {
			t.Errorf("Join() = %q, want %q", got, "bitcoin,ethereum,solana")
		}
		if s.Len() != 3 {
			t.Errorf("Len() = %d, want 3", s.Len())
		}
	})

	t.Run("immutable after construction", func(t *testing.T) {
		ids := []string{"bitcoin", "ethereum"}
		s := NewCoinSet(ids...)
		ids[0] = "dogecoin"

		got := s.IDs()
		got[1] = "tron"

		if s.Join() != "bitcoin,ethereum" {
			t.Errorf("Join() = %q, want %q", s.Join(), "bitcoin,ethereum")
		}
	})

	t.Run("default set", func(t *testing.T) {
		s := DefaultCoinSet()
		if s.Len() != 15 {
			t.Errorf("Len() = %d, want 15", s.Len())
		}
		if s.IDs()[0] != "bitcoin" {
			t.Errorf("first id = %q, want bitcoin", s.IDs()[0])
		}
	})

	t.Run("default set cannot be changed by callers", func(t *testing.T) {
		ids := DefaultCoinSet().IDs()
		ids[0] = "dogecoin"

		if got := DefaultCoinSet().IDs()[0]; got != "bitcoin" {
			t.Errorf("first id = %q after caller mutation, want bitcoin", got)
		}
	})

	t.Run("empty set", func(t *testing.T) {
		s := NewCoinSet()
		if s.Join() != "" {
			t.Errorf("Join() = %q, want empty", s.Join())
		}
	})
}

func TestSnapshot(t *testing.T) {
	ts := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	s := Snapshot{
		Timestamp: ts,
		Records: []PriceRecord{
			{
				Name:      "Bitcoin",
				Symbol:    "BTC",
				Price:     decimal.NewNullDecimal(decimal.NewFromInt(65000)),
				Timestamp: ts,
			},
		},
	}

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if !s.Records[0].Timestamp.Equal(s.Timestamp) {
		t.Errorf("record timestamp = %v, want %v", s.Records[0].Timestamp, s.Timestamp)
	}
	if s.Records[0].MarketCap.Valid {
		t.Error("MarketCap should be NULL when unset")
	}
}
