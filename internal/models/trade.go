package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Trade is a ledger entry for an alerted transaction. The unique index on
// TransactionHash is the dedup authority: inserting a row is the atomic
// "claim" that prevents the same transaction from being alerted twice, even
// across process restarts or concurrent detection cycles. Rows are immutable
// once written.
type Trade struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	ConditionID     string          `gorm:"type:text;index;not null"`
	MarketTitle     string          `gorm:"type:text"`
	Side            string          `gorm:"type:text"`
	Size            decimal.Decimal `gorm:"type:numeric(30,10)"`
	Price           decimal.Decimal `gorm:"type:numeric(20,10)"`
	DollarValue     decimal.Decimal `gorm:"type:numeric(30,10)"`
	Outcome         string          `gorm:"type:text"`
	WalletAddress   string          `gorm:"type:text"`
	TransactionHash string          `gorm:"type:text;uniqueIndex;not null"`
	Timestamp       time.Time
	DetectedAt      time.Time
	RawJSON         datatypes.JSON `gorm:"type:json"`
}

func (Trade) TableName() string {
	return "large_trades"
}

// DollarValue converts a trade's size and price into the cash amount used for
// threshold checks. BUY trades spend size*price; for everything else the
// upstream size field is already the cash amount.
func DollarValue(side string, size, price decimal.Decimal) decimal.Decimal {
	if side == "BUY" {
		return size.Mul(price)
	}
	return size
}
