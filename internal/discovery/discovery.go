// Package discovery maintains the watch set: the low-probability outcomes of
// monitored-category markets that trade detection joins against.
package discovery

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"longshotwatch/internal/classifier"
	"longshotwatch/internal/client/polymarket/gamma"
	"longshotwatch/internal/config"
	"longshotwatch/internal/models"
	"longshotwatch/internal/repository"
)

// MarketSource abstracts the Gamma market listing for tests.
type MarketSource interface {
	ListMarkets(ctx context.Context, q gamma.ListMarketsQuery) ([]gamma.Market, error)
}

type Discovery struct {
	Source MarketSource
	Repo   repository.MarketWatchRepository
	Config config.DiscoveryConfig
	Logger *zap.Logger
}

// Refresh runs one discovery cycle: fetch a page of active markets, keep the
// ones in a monitored category with an outcome priced below the probability
// threshold, and upsert them into the watch store. The returned slice is the
// cycle's matches, for logging only; the store is the authoritative watch
// set. Rows are never removed: a market that stops appearing upstream keeps
// its last observed state until some later cycle overwrites it.
func (d *Discovery) Refresh(ctx context.Context) ([]models.Market, error) {
	if d == nil || d.Source == nil || d.Repo == nil {
		return nil, nil
	}

	page, err := d.Source.ListMarkets(ctx, gamma.ListMarketsQuery{
		Active: true,
		Closed: false,
		Limit:  d.Config.PageLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	if d.Config.PageLimit > 0 && len(page) == d.Config.PageLimit {
		d.logWarn("market page came back at the configured limit, listing may be truncated",
			zap.Int("limit", d.Config.PageLimit))
	}

	now := time.Now().UTC()
	var found []models.Market
	for _, mkt := range page {
		if mkt.ConditionID == "" {
			continue
		}
		title := mkt.DisplayTitle()
		if !classifier.IsMonitored(title, mkt.Slug, d.Config.Categories) {
			continue
		}
		if len(mkt.OutcomePrices) == 0 {
			continue
		}
		category := classifier.Classify(title, mkt.Slug)
		for i, priceStr := range mkt.OutcomePrices {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				// One bad price string drops that outcome, not the market.
				d.logDebug("unparseable outcome price",
					zap.String("condition_id", mkt.ConditionID),
					zap.String("price", priceStr))
				continue
			}
			if price >= d.Config.ProbabilityThreshold {
				continue
			}
			outcome := fmt.Sprintf("Outcome %d", i)
			if i < len(mkt.Outcomes) {
				outcome = mkt.Outcomes[i]
			}
			item := models.Market{
				ConditionID: mkt.ConditionID,
				Title:       title,
				Slug:        mkt.Slug,
				Outcome:     outcome,
				Probability: price,
				Category:    string(category),
				Active:      true,
				LastUpdated: now,
			}
			if err := d.Repo.UpsertMarket(ctx, &item); err != nil {
				return found, fmt.Errorf("upsert market %s: %w", mkt.ConditionID, err)
			}
			found = append(found, item)
		}
	}

	d.logInfo("market discovery cycle complete",
		zap.Int("fetched", len(page)),
		zap.Int("watched", len(found)),
		zap.Float64("threshold", d.Config.ProbabilityThreshold))
	return found, nil
}

func (d *Discovery) logInfo(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Info(msg, fields...)
	}
}

func (d *Discovery) logWarn(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Warn(msg, fields...)
	}
}

func (d *Discovery) logDebug(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Debug(msg, fields...)
	}
}
