package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDollarValue(t *testing.T) {
	tests := []struct {
		name  string
		side  string
		size  float64
		price float64
		want  string
	}{
		{"buy multiplies", "BUY", 1000000, 0.03, "30000"},
		{"sell uses size", "SELL", 60000, 0.03, "60000"},
		{"unknown side uses size", "UNKNOWN", 75000, 0.5, "75000"},
		{"empty side uses size", "", 75000, 0.5, "75000"},
		{"zero size buy", "BUY", 0, 0.9, "0"},
		{"zero price buy", "BUY", 500000, 0, "0"},
		{"zero size sell", "SELL", 0, 0.9, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DollarValue(tt.side, decimal.NewFromFloat(tt.size), decimal.NewFromFloat(tt.price))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("DollarValue(%q, %v, %v) = %s, want %s", tt.side, tt.size, tt.price, got, tt.want)
			}
		})
	}
}
