// Package detector finds large buy-ins on watched longshot markets and claims
// each one exactly once in the trade ledger.
package detector

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"longshotwatch/internal/client/polymarket/data"
	"longshotwatch/internal/config"
	"longshotwatch/internal/models"
	"longshotwatch/internal/repository"
)

// TradeSource abstracts the Data API trade feed for tests.
type TradeSource interface {
	ListTrades(ctx context.Context, q data.ListTradesQuery) ([]data.Trade, error)
}

// DetectedTrade is a newly-claimed ledger entry enriched with the matched
// market's state at detection time, ready for alert formatting.
type DetectedTrade struct {
	models.Trade
	Probability float64
	Slug        string
}

type Detector struct {
	Source    TradeSource
	Watch     repository.MarketWatchRepository
	Ledger    repository.TradeLedgerRepository
	Config    config.DetectorConfig
	Threshold float64 // watch-set probability cutoff, shared with discovery
	Logger    *zap.Logger
}

// Detect runs one detection cycle. The watch set is snapshotted once at the
// start; markets added by a concurrent discovery pass become visible on the
// next cycle. Each qualifying trade is claimed with a single atomic ledger
// insert, so a replayed feed page, a second cycle, or another process
// instance can never alert the same transaction twice. Claims made before an
// error are durable even though the cycle aborts.
func (d *Detector) Detect(ctx context.Context) ([]DetectedTrade, error) {
	if d == nil || d.Source == nil || d.Watch == nil || d.Ledger == nil {
		return nil, nil
	}

	// Server-side pre-filter is an optimization; the bounds check below is
	// the correctness gate.
	page, err := d.Source.ListTrades(ctx, data.ListTradesQuery{
		Limit:         d.Config.PageLimit,
		MinCashAmount: d.Config.MinSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	watched, err := d.Watch.ListWatched(ctx, d.Threshold)
	if err != nil {
		return nil, fmt.Errorf("load watch set: %w", err)
	}
	watch := make(map[string]models.Market, len(watched))
	for _, m := range watched {
		watch[m.ConditionID] = m
	}

	minSize := decimal.NewFromFloat(d.Config.MinSize)
	maxSize := decimal.NewFromFloat(d.Config.MaxSize)

	var detected []DetectedTrade
	for _, trade := range page {
		size := decimal.NewFromFloat(float64(trade.Size))
		price := decimal.NewFromFloat(float64(trade.Price))
		value := models.DollarValue(trade.Side, size, price)
		if value.LessThan(minSize) || value.GreaterThan(maxSize) {
			continue
		}

		conditionID := trade.ResolveConditionID()
		market, ok := watch[conditionID]
		if !ok {
			continue
		}

		txHash := trade.ResolveTransactionHash()
		if txHash == "" {
			d.logDebug("trade without transaction hash or id, skipping")
			continue
		}

		side := trade.Side
		if side == "" {
			side = "UNKNOWN"
		}
		outcome := trade.Outcome
		if outcome == "" {
			outcome = market.Outcome
		}
		title := market.Title
		if title == "" {
			title = trade.Title
		}

		item := models.Trade{
			ConditionID:     conditionID,
			MarketTitle:     title,
			Side:            side,
			Size:            size,
			Price:           price,
			DollarValue:     value,
			Outcome:         outcome,
			WalletAddress:   trade.WalletAddress(),
			TransactionHash: txHash,
			Timestamp:       eventTime(float64(trade.Timestamp)),
			DetectedAt:      time.Now().UTC(),
			RawJSON:         datatypes.JSON(trade.Raw),
		}

		claimed, err := d.Ledger.InsertTradeIfAbsent(ctx, &item)
		if err != nil {
			return detected, fmt.Errorf("claim trade %s: %w", txHash, err)
		}
		if !claimed {
			// Already alerted, or another cycle got there first.
			continue
		}

		detected = append(detected, DetectedTrade{
			Trade:       item,
			Probability: market.Probability,
			Slug:        market.Slug,
		})
		d.logInfo("large trade detected",
			zap.String("market", title),
			zap.String("value", value.StringFixed(2)),
			zap.String("tx", txHash))
	}

	return detected, nil
}

// eventTime converts the feed's unix-seconds timestamp; zero means the source
// omitted it and ingestion time stands in.
func eventTime(ts float64) time.Time {
	if ts <= 0 {
		return time.Now().UTC()
	}
	return time.Unix(int64(ts), 0).UTC()
}

func (d *Detector) logInfo(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Info(msg, fields...)
	}
}

func (d *Detector) logDebug(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Debug(msg, fields...)
	}
}
