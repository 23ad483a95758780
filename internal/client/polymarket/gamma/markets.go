package gamma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Market is a Gamma market record. Gamma serializes outcomes and
// outcomePrices as JSON arrays encoded inside strings; StringList accepts
// both that form and a plain array.
type Market struct {
	ID            string     `json:"id"`
	ConditionID   string     `json:"conditionId"`
	Question      string     `json:"question"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Active        bool       `json:"active"`
	Closed        bool       `json:"closed"`
	Outcomes      StringList `json:"outcomes"`
	OutcomePrices StringList `json:"outcomePrices"`
}

// DisplayTitle prefers the question text, falling back to the title field the
// way older Gamma records populate it.
func (m Market) DisplayTitle() string {
	if m.Question != "" {
		return m.Question
	}
	if m.Title != "" {
		return m.Title
	}
	return "Unknown"
}

type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	// Plain array form.
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}
	// Array-in-a-string form: "[\"Yes\",\"No\"]".
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	if encoded == "" {
		*l = nil
		return nil
	}
	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err != nil {
		return err
	}
	*l = nested
	return nil
}

type ListMarketsQuery struct {
	Active bool
	Closed bool
	Limit  int
}

// ListMarkets fetches one page of markets.
func (c *Client) ListMarkets(ctx context.Context, q ListMarketsQuery) ([]Market, error) {
	query := url.Values{}
	query.Set("active", strconv.FormatBool(q.Active))
	query.Set("closed", strconv.FormatBool(q.Closed))
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	body, err := c.doRequest(ctx, "/markets", query)
	if err != nil {
		return nil, err
	}
	var markets []Market
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("failed to decode markets: %w", err)
	}
	return markets, nil
}
