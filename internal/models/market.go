package models

import (
	"time"
)

// Market is a watch-set entry: one low-probability outcome of a Polymarket
// market that trade detection joins against. At most one row per condition id;
// a later discovery cycle overwrites the row in place, so probability and
// category always reflect the latest observation.
type Market struct {
	ConditionID string  `gorm:"primaryKey;type:text"`
	Title       string  `gorm:"type:text;not null"`
	Slug        string  `gorm:"type:text"`
	Outcome     string  `gorm:"type:text"`
	Probability float64 `gorm:"not null;index"`
	Category    string  `gorm:"type:text;not null;default:other"`
	Active      bool    `gorm:"not null;default:true"`
	LastUpdated time.Time
}

func (Market) TableName() string {
	return "markets"
}
