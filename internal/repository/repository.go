package repository

import (
	"context"

	"longshotwatch/internal/models"
)

// MarketWatchRepository owns the watch-set table. UpsertMarket is
// overwrite-by-key: the last discovery cycle to observe a condition id wins.
type MarketWatchRepository interface {
	UpsertMarket(ctx context.Context, item *models.Market) error
	// ListWatched returns all active markets whose tracked probability is
	// strictly below the given threshold.
	ListWatched(ctx context.Context, probabilityBelow float64) ([]models.Market, error)
}

// TradeLedgerRepository owns the append-only alert ledger.
type TradeLedgerRepository interface {
	TradeExists(ctx context.Context, transactionHash string) (bool, error)
	// InsertTradeIfAbsent atomically claims a transaction hash. It returns
	// true when this call inserted the row and false when the hash was
	// already present. Callers must not pre-check with TradeExists; the
	// insert itself is the dedup gate.
	InsertTradeIfAbsent(ctx context.Context, item *models.Trade) (bool, error)
}

type Repository interface {
	MarketWatchRepository
	TradeLedgerRepository
}
