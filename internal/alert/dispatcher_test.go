package alert

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"longshotwatch/internal/detector"
	"longshotwatch/internal/models"
)

type stubChannel struct {
	name  string
	err   error
	sent  int
	calls []string
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Send(ctx context.Context, trade detector.DetectedTrade) error {
	c.calls = append(c.calls, trade.TransactionHash)
	if c.err != nil {
		return c.err
	}
	c.sent++
	return nil
}

func sampleTrade(hash string) detector.DetectedTrade {
	return detector.DetectedTrade{
		Trade: models.Trade{
			ConditionID:     "0xA",
			MarketTitle:     "NFL Super Bowl Winner",
			Side:            "BUY",
			DollarValue:     decimal.NewFromInt(60000),
			TransactionHash: hash,
		},
		Probability: 0.03,
		Slug:        "nfl-super-bowl-winner",
	}
}

func TestDispatchCountsTradeWithOneSuccessfulChannel(t *testing.T) {
	failing := &stubChannel{name: "discord", err: errors.New("webhook 500")}
	working := &stubChannel{name: "email"}
	d := &Dispatcher{Channels: []Notifier{failing, working}}

	got := d.Dispatch(context.Background(), []detector.DetectedTrade{sampleTrade("0xT1")})
	if got != 1 {
		t.Fatalf("dispatch = %d, want 1", got)
	}
	if len(failing.calls) != 1 || len(working.calls) != 1 {
		t.Fatalf("both channels must be attempted, got discord=%d email=%d", len(failing.calls), len(working.calls))
	}
}

func TestDispatchAllChannelsFail(t *testing.T) {
	a := &stubChannel{name: "discord", err: errors.New("down")}
	b := &stubChannel{name: "email", err: errors.New("auth")}
	d := &Dispatcher{Channels: []Notifier{a, b}}

	if got := d.Dispatch(context.Background(), []detector.DetectedTrade{sampleTrade("0xT2")}); got != 0 {
		t.Fatalf("dispatch = %d, want 0", got)
	}
}

func TestDispatchFailureIsolatedPerTrade(t *testing.T) {
	// Channel fails on every trade; the working one still delivers all.
	flaky := &stubChannel{name: "discord", err: errors.New("down")}
	working := &stubChannel{name: "email"}
	d := &Dispatcher{Channels: []Notifier{flaky, working}}

	trades := []detector.DetectedTrade{sampleTrade("0xT3"), sampleTrade("0xT4"), sampleTrade("0xT5")}
	if got := d.Dispatch(context.Background(), trades); got != 3 {
		t.Fatalf("dispatch = %d, want 3", got)
	}
	if working.sent != 3 {
		t.Fatalf("email sent = %d, want 3", working.sent)
	}
}

func TestDispatchNoChannels(t *testing.T) {
	d := &Dispatcher{}
	if got := d.Dispatch(context.Background(), []detector.DetectedTrade{sampleTrade("0xT6")}); got != 0 {
		t.Fatalf("dispatch with no channels = %d, want 0", got)
	}
}
