package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"longshotwatch/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertMarket(ctx context.Context, item *models.Market) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ConditionID) == "" {
		return nil
	}
	if item.LastUpdated.IsZero() {
		item.LastUpdated = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "condition_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"slug",
			"outcome",
			"probability",
			"category",
			"active",
			"last_updated",
		}),
	}).Create(item).Error
}

func (s *Store) ListWatched(ctx context.Context, probabilityBelow float64) ([]models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Market
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("probability < ?", probabilityBelow).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) TradeExists(ctx context.Context, transactionHash string) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	transactionHash = strings.TrimSpace(transactionHash)
	if transactionHash == "" {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Trade{}).
		Where("transaction_hash = ?", transactionHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) InsertTradeIfAbsent(ctx context.Context, item *models.Trade) (bool, error) {
	if s == nil || s.db == nil || item == nil {
		return false, nil
	}
	if strings.TrimSpace(item.TransactionHash) == "" {
		return false, nil
	}
	if item.DetectedAt.IsZero() {
		item.DetectedAt = time.Now().UTC()
	}
	// Uniqueness is enforced by the index on transaction_hash; a conflicting
	// insert affects zero rows, which is the "already claimed" answer.
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_hash"}},
		DoNothing: true,
	}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
