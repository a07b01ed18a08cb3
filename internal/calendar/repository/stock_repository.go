package repository

import (
	"context"
	"strings"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository defines the interface for stock directory data operations.
type StockRepository interface {
	FindAll(ctx context.Context) ([]entity.Stock, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Stock, error)
	Upsert(ctx context.Context, stocks []entity.Stock) error
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

// FindAll returns every stock in catalog order.
func (r *stockRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Order("created_at ASC, ticker ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByTicker looks a stock up case-insensitively.
func (r *stockRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error) {
	var stock entity.Stock
	if err := r.db.WithContext(ctx).Where("UPPER(ticker) = ?", strings.ToUpper(ticker)).First(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// Search matches the query against ticker or name.
func (r *stockRepository) Search(ctx context.Context, query string, limit int) ([]entity.Stock, error) {
	var stocks []entity.Stock
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("ticker ILIKE ? OR name ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// Upsert inserts seed stocks keyed on ticker.
func (r *stockRepository) Upsert(ctx context.Context, stocks []entity.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "type", "sector"}),
	}).Create(&stocks).Error
}
