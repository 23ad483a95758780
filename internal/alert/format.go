package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TruncateAddress shortens a wallet address to its ends: 0x1234ab...cd5678ef.
func TruncateAddress(address string) string {
	const chars = 6
	if address == "" {
		return "Unknown"
	}
	if len(address) < chars*2 {
		return address
	}
	return address[:chars] + "..." + address[len(address)-chars:]
}

// FormatCurrency renders a dollar amount with thousands separators: $1,234.56.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a probability in [0,1] as a percentage: 3.00%.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

func FormatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "Unknown"
	}
	return ts.UTC().Format("2006-01-02 15:04:05 UTC")
}

func marketURL(slug string) string {
	if slug == "" {
		return ""
	}
	return "https://polymarket.com/event/" + slug
}

func transactionURL(txHash string) string {
	if txHash == "" {
		return ""
	}
	return "https://polygonscan.com/tx/" + txHash
}
