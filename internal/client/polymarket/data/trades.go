package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Trade is a Data API trade record. Numeric fields arrive as JSON numbers or
// as strings depending on the endpoint version, so they decode through
// Float64. The record keeps its raw JSON so callers can persist the original
// upstream form.
type Trade struct {
	ID              string  `json:"id"`
	ConditionID     string  `json:"conditionId"`
	Market          string  `json:"market"`
	TransactionHash string  `json:"transactionHash"`
	Side            string  `json:"side"`
	Size            Float64 `json:"size"`
	Price           Float64 `json:"price"`
	Outcome         string  `json:"outcome"`
	ProxyWallet     string  `json:"proxyWallet"`
	Maker           string  `json:"maker"`
	Timestamp       Float64 `json:"timestamp"`
	Title           string  `json:"title"`

	Raw json.RawMessage `json:"-"`
}

// ResolveConditionID returns the market identifier, preferring conditionId
// and falling back to the market field. The two fields have been observed to
// carry the identifier in different upstream schema versions; the ordered
// fallback is deliberate and should not grow without confirming upstream
// semantics.
func (t Trade) ResolveConditionID() string {
	if strings.TrimSpace(t.ConditionID) != "" {
		return strings.TrimSpace(t.ConditionID)
	}
	return strings.TrimSpace(t.Market)
}

// ResolveTransactionHash returns the dedup identifier, preferring the on-chain
// transaction hash and falling back to the record id. Same caveat as
// ResolveConditionID.
func (t Trade) ResolveTransactionHash() string {
	if strings.TrimSpace(t.TransactionHash) != "" {
		return strings.TrimSpace(t.TransactionHash)
	}
	return strings.TrimSpace(t.ID)
}

// WalletAddress prefers the proxy wallet over the raw maker address.
func (t Trade) WalletAddress() string {
	if strings.TrimSpace(t.ProxyWallet) != "" {
		return strings.TrimSpace(t.ProxyWallet)
	}
	return strings.TrimSpace(t.Maker)
}

// Float64 decodes from a JSON number or a numeric string. A null or empty
// value decodes as zero.
type Float64 float64

func (f *Float64) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(inner, 64)
		if err != nil {
			return err
		}
		*f = Float64(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float64(v)
	return nil
}

type ListTradesQuery struct {
	Limit int
	// MinCashAmount asks the server to pre-filter by cash value. This is an
	// optimization only; callers re-validate against their own bounds.
	MinCashAmount float64
}

// ListTrades fetches one page of recent trades, newest first.
func (c *Client) ListTrades(ctx context.Context, q ListTradesQuery) ([]Trade, error) {
	query := url.Values{}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.MinCashAmount > 0 {
		query.Set("filterType", "CASH")
		query.Set("filterAmount", strconv.FormatFloat(q.MinCashAmount, 'f', -1, 64))
	}
	body, err := c.doRequest(ctx, "/trades", query)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode trades: %w", err)
	}
	trades := make([]Trade, 0, len(raws))
	for _, raw := range raws {
		var t Trade
		if err := json.Unmarshal(raw, &t); err != nil {
			// Malformed record: skip it, not the page.
			if c.logger != nil {
				c.logger.Debug("skipping malformed trade record", zap.Error(err))
			}
			continue
		}
		t.Raw = raw
		trades = append(trades, t)
	}
	return trades, nil
}
