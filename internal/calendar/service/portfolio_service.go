package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/ratelimit"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxManualTickers = 50

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

const (
	SyncStatusSynced = "synced"
	SyncStatusError  = "error"
)

// PortfolioService manages broker-linked and manual portfolios.
type PortfolioService interface {
	Holdings(ctx context.Context, userID string) (*dto.HoldingsResponse, error)
	SaveManual(ctx context.Context, userID string, tickers []string) (*dto.ManualPortfolioResponse, error)
	Manual(ctx context.Context, userID string) (*entity.Portfolio, error)
	Sync(ctx context.Context, userID, portfolioID string) (*dto.SyncResponse, error)
	Disconnect(ctx context.Context, userID, portfolioID string) error
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(
	repo repository.PortfolioRepository,
	broker BrokerClient,
	limiter ratelimit.Limiter,
	log *logger.Logger,
) PortfolioService {
	return &portfolioService{repo: repo, broker: broker, limiter: limiter, logger: log, now: time.Now}
}

type portfolioService struct {
	repo    repository.PortfolioRepository
	broker  BrokerClient
	limiter ratelimit.Limiter
	logger  *logger.Logger
	now     func() time.Time
}

// Holdings returns every portfolio of the user with a summary.
func (s *portfolioService) Holdings(ctx context.Context, userID string) (*dto.HoldingsResponse, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	portfolios, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.HoldingsResponse{Portfolios: portfolios, Summary: summarize(portfolios)}, nil
}

func summarize(portfolios []entity.Portfolio) dto.HoldingsSummary {
	summary := dto.HoldingsSummary{
		TotalPortfolios:  len(portfolios),
		UniqueTickers:    []string{},
		ConnectedBrokers: []string{},
	}
	tickers := map[string]bool{}
	brokers := map[string]bool{}
	for _, p := range portfolios {
		summary.TotalHoldings += len(p.Holdings)
		for _, h := range p.Holdings {
			tickers[h.Ticker] = true
		}
		if p.ConnectionStatus == entity.ConnectionConnected && !brokers[string(p.BrokerName)] {
			brokers[string(p.BrokerName)] = true
			summary.ConnectedBrokers = append(summary.ConnectedBrokers, string(p.BrokerName))
		}
	}
	for t := range tickers {
		summary.UniqueTickers = append(summary.UniqueTickers, t)
	}
	sort.Strings(summary.UniqueTickers)
	return summary
}

// NormalizeTickers upper-cases, validates and de-duplicates manual tickers,
// dropping entries that are not 1-5 letters.
func NormalizeTickers(tickers []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if !tickerPattern.MatchString(t) || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SaveManual replaces the user's manual portfolio with tickers.
func (s *portfolioService) SaveManual(ctx context.Context, userID string, tickers []string) (*dto.ManualPortfolioResponse, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	if len(tickers) == 0 {
		return nil, newValidationError("tickers", "Tickers array is required and must not be empty")
	}
	valid := NormalizeTickers(tickers)
	if len(valid) == 0 {
		return nil, newValidationError("tickers", "No valid tickers provided. Tickers must be 1-5 uppercase letters.")
	}
	if len(valid) > maxManualTickers {
		return nil, newValidationError("tickers", "Maximum %d tickers allowed for manual portfolio", maxManualTickers)
	}

	created := false
	portfolio, err := s.repo.FindByBroker(ctx, userID, entity.BrokerManual)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		portfolio = &entity.Portfolio{
			UserID:           userID,
			BrokerName:       entity.BrokerManual,
			ConnectionStatus: entity.ConnectionConnected,
		}
		if err = s.repo.Create(ctx, portfolio); err == nil {
			created = true
		}
	}
	if err != nil {
		s.logger.Error("Failed to load manual portfolio", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, err
	}

	now := s.now()
	holdings := make([]entity.PortfolioHolding, 0, len(valid))
	for _, t := range valid {
		holdings = append(holdings, entity.PortfolioHolding{
			Ticker:      t,
			Quantity:    decimal.NewFromInt(1),
			LastUpdated: now,
		})
	}
	if err := s.repo.ReplaceHoldings(ctx, portfolio, holdings); err != nil {
		s.logger.Error("Failed to save manual holdings", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, err
	}

	return &dto.ManualPortfolioResponse{
		PortfolioID:  portfolio.ID,
		Holdings:     portfolio.Holdings,
		TickersAdded: len(valid),
		Created:      created,
	}, nil
}

// Manual returns the user's manual portfolio.
func (s *portfolioService) Manual(ctx context.Context, userID string) (*entity.Portfolio, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	portfolio, err := s.repo.FindByBroker(ctx, userID, entity.BrokerManual)
	if err != nil {
		return nil, translateNotFound(err, "No manual portfolio found")
	}
	return portfolio, nil
}

// Sync refreshes holdings of connected broker portfolios. One call per user
// per limiter window is allowed.
func (s *portfolioService) Sync(ctx context.Context, userID, portfolioID string) (*dto.SyncResponse, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	allowed, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	var portfolios []entity.Portfolio
	if portfolioID != "" {
		p, err := s.repo.FindByID(ctx, userID, portfolioID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if p != nil {
			portfolios = append(portfolios, *p)
		}
	} else {
		portfolios, err = s.repo.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	if len(portfolios) == 0 {
		return nil, notFound("No portfolios found to sync")
	}

	syncedAt := s.now()
	resp := &dto.SyncResponse{
		Holdings:   []entity.PortfolioHolding{},
		LastSyncAt: syncedAt,
		Results:    []dto.SyncResult{},
	}
	for i := range portfolios {
		p := &portfolios[i]
		if p.BrokerName == entity.BrokerManual || p.ConnectionStatus != entity.ConnectionConnected {
			continue
		}

		result := dto.SyncResult{PortfolioID: p.ID, BrokerName: string(p.BrokerName)}
		holdings, err := s.syncOne(ctx, p, syncedAt)
		if err != nil {
			s.logger.Warn("Portfolio sync failed",
				logger.ErrorField(err),
				logger.StringField("portfolio_id", p.ID),
				logger.StringField("broker", string(p.BrokerName)),
			)
			p.ConnectionStatus = entity.ConnectionError
			if updErr := s.repo.Update(ctx, p); updErr != nil {
				s.logger.Error("Failed to mark portfolio as errored", logger.ErrorField(updErr), logger.StringField("portfolio_id", p.ID))
			}
			result.Status = SyncStatusError
			result.Error = err.Error()
		} else {
			result.Status = SyncStatusSynced
			result.HoldingsCount = len(holdings)
			resp.Holdings = append(resp.Holdings, holdings...)
			resp.PortfoliosSynced++
		}
		resp.Results = append(resp.Results, result)
	}

	s.logger.Info("Portfolio sync finished",
		logger.StringField("user_id", userID),
		logger.IntField("portfolios_synced", resp.PortfoliosSynced),
	)
	return resp, nil
}

func (s *portfolioService) syncOne(ctx context.Context, p *entity.Portfolio, syncedAt time.Time) ([]entity.PortfolioHolding, error) {
	positions, err := s.broker.Positions(ctx, p.BrokerName)
	if err != nil {
		return nil, err
	}

	holdings := make([]entity.PortfolioHolding, 0, len(positions))
	for _, pos := range positions {
		raw, err := json.Marshal(pos)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, entity.PortfolioHolding{
			Ticker:       pos.Ticker,
			Quantity:     pos.Quantity,
			CostBasis:    decimal.NewNullDecimal(pos.CostBasis),
			CurrentValue: decimal.NewNullDecimal(pos.CurrentValue),
			Raw:          datatypes.JSON(raw),
			LastUpdated:  syncedAt,
		})
	}

	p.LastSyncAt = &syncedAt
	if err := s.repo.ReplaceHoldings(ctx, p, holdings); err != nil {
		return nil, err
	}
	return p.Holdings, nil
}

// Disconnect removes a portfolio the user owns.
func (s *portfolioService) Disconnect(ctx context.Context, userID, portfolioID string) error {
	if userID == "" {
		return ErrMissingIdentity
	}
	portfolio, err := s.repo.FindByID(ctx, userID, portfolioID)
	if err != nil {
		return translateNotFound(err, "Portfolio not found or unauthorized")
	}
	if err := s.repo.Delete(ctx, portfolio); err != nil {
		s.logger.Error("Failed to disconnect portfolio", logger.ErrorField(err), logger.StringField("portfolio_id", portfolioID))
		return err
	}
	s.logger.Info("Portfolio disconnected", logger.StringField("portfolio_id", portfolioID))
	return nil
}
