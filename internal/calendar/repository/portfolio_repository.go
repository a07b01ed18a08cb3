package repository

import (
	"context"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
)

// PortfolioRepository defines the interface for portfolio data operations.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *entity.Portfolio) error
	FindByUser(ctx context.Context, userID string) ([]entity.Portfolio, error)
	FindByID(ctx context.Context, userID, id string) (*entity.Portfolio, error)
	FindByBroker(ctx context.Context, userID string, broker entity.BrokerName) (*entity.Portfolio, error)
	Update(ctx context.Context, portfolio *entity.Portfolio) error
	ReplaceHoldings(ctx context.Context, portfolio *entity.Portfolio, holdings []entity.PortfolioHolding) error
	Delete(ctx context.Context, portfolio *entity.Portfolio) error
}

// NewPortfolioRepository creates a new GORM-based portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRepository struct {
	db *gorm.DB
}

// Create creates a new portfolio in the database.
func (r *portfolioRepository) Create(ctx context.Context, portfolio *entity.Portfolio) error {
	return r.db.WithContext(ctx).Omit("Holdings").Create(portfolio).Error
}

// FindByUser lists the user's portfolios with their holdings.
func (r *portfolioRepository) FindByUser(ctx context.Context, userID string) ([]entity.Portfolio, error) {
	var portfolios []entity.Portfolio
	err := r.db.WithContext(ctx).
		Preload("Holdings", func(db *gorm.DB) *gorm.DB { return db.Order("ticker ASC") }).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&portfolios).Error
	if err != nil {
		return nil, err
	}
	return portfolios, nil
}

// FindByID retrieves a portfolio owned by userID.
func (r *portfolioRepository) FindByID(ctx context.Context, userID, id string) (*entity.Portfolio, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var portfolio entity.Portfolio
	if err := r.db.WithContext(ctx).Preload("Holdings").Where("id = ? AND user_id = ?", id, userID).First(&portfolio).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// FindByBroker retrieves the user's portfolio for one broker.
func (r *portfolioRepository) FindByBroker(ctx context.Context, userID string, broker entity.BrokerName) (*entity.Portfolio, error) {
	var portfolio entity.Portfolio
	if err := r.db.WithContext(ctx).Preload("Holdings").Where("user_id = ? AND broker_name = ?", userID, broker).First(&portfolio).Error; err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// Update saves the portfolio columns without touching holdings.
func (r *portfolioRepository) Update(ctx context.Context, portfolio *entity.Portfolio) error {
	return r.db.WithContext(ctx).Omit("Holdings").Save(portfolio).Error
}

// ReplaceHoldings swaps every holding of the portfolio within a transaction.
func (r *portfolioRepository) ReplaceHoldings(ctx context.Context, portfolio *entity.Portfolio, holdings []entity.PortfolioHolding) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&entity.PortfolioHolding{}).Error; err != nil {
			return err
		}
		for i := range holdings {
			holdings[i].PortfolioID = portfolio.ID
		}
		if len(holdings) > 0 {
			if err := tx.Create(&holdings).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit("Holdings").Save(portfolio).Error; err != nil {
			return err
		}
		portfolio.Holdings = holdings
		return nil
	})
}

// Delete removes a portfolio and its holdings.
func (r *portfolioRepository) Delete(ctx context.Context, portfolio *entity.Portfolio) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&entity.PortfolioHolding{}).Error; err != nil {
			return err
		}
		return tx.Delete(portfolio).Error
	})
}
