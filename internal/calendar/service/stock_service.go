package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/common"
	"stock-event-calendar/pkg/kvstore"
	"stock-event-calendar/pkg/logger"
)

const (
	stockSearchFetchLimit  = 20
	stockSearchResultLimit = 10
)

// StockService serves the stock directory and per-user recent searches.
type StockService interface {
	Search(ctx context.Context, query string) ([]entity.Stock, error)
	Get(ctx context.Context, ticker string) (*entity.Stock, error)
	RecentSearches(ctx context.Context, userID string) ([]string, error)
	AddRecentSearch(ctx context.Context, userID, ticker string) ([]string, error)
	ClearRecentSearches(ctx context.Context, userID string) error
}

// NewStockService creates a new stock service.
func NewStockService(repo repository.StockRepository, kv kvstore.Store, recentLimit int, log *logger.Logger) StockService {
	if recentLimit < 1 {
		recentLimit = 5
	}
	return &stockService{repo: repo, kv: kv, recentLimit: recentLimit, logger: log}
}

type stockService struct {
	mu          sync.Mutex
	repo        repository.StockRepository
	kv          kvstore.Store
	recentLimit int
	logger      *logger.Logger
}

// Search returns up to ten stocks whose ticker or name contains query,
// best matches first. A blank query returns nothing.
func (s *stockService) Search(ctx context.Context, query string) ([]entity.Stock, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []entity.Stock{}, nil
	}

	stocks, err := s.repo.Search(ctx, q, stockSearchFetchLimit)
	if err != nil {
		s.logger.Error("Stock search failed", logger.ErrorField(err), logger.StringField("query", q))
		return nil, err
	}
	return RankStocks(stocks, q, stockSearchResultLimit), nil
}

// searchRank orders exact ticker, ticker prefix, ticker substring and name
// prefix matches ahead of everything else.
func searchRank(stock entity.Stock, q string) int {
	ticker := strings.ToLower(stock.Ticker)
	name := strings.ToLower(stock.Name)
	switch {
	case ticker == q:
		return 0
	case strings.HasPrefix(ticker, q):
		return 1
	case strings.Contains(ticker, q):
		return 2
	case strings.HasPrefix(name, q):
		return 3
	}
	return 4
}

// RankStocks sorts stocks by match quality for the lower-cased query q,
// ticker alphabetical within a rank, and keeps the first limit.
func RankStocks(stocks []entity.Stock, q string, limit int) []entity.Stock {
	ranked := make([]entity.Stock, len(stocks))
	copy(ranked, stocks)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := searchRank(ranked[i], q), searchRank(ranked[j], q)
		if ri != rj {
			return ri < rj
		}
		return ranked[i].Ticker < ranked[j].Ticker
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Get looks a stock up by ticker, case-insensitively.
func (s *stockService) Get(ctx context.Context, ticker string) (*entity.Stock, error) {
	ticker = strings.TrimSpace(ticker)
	stock, err := s.repo.FindByTicker(ctx, ticker)
	if err != nil {
		return nil, translateNotFound(err, "Stock with ticker %q not found", ticker)
	}
	return stock, nil
}

func recentKey(userID string) string {
	return fmt.Sprintf(common.KVKeyRecentSearches, userID)
}

func (s *stockService) RecentSearches(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	return s.loadRecent(ctx, userID)
}

// AddRecentSearch moves ticker to the front of the user's recent list.
func (s *stockService) AddRecentSearch(ctx context.Context, userID, ticker string) ([]string, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, newValidationError("ticker", "Missing ticker")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent, err := s.loadRecent(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := []string{ticker}
	for _, t := range recent {
		if t != ticker && len(updated) < s.recentLimit {
			updated = append(updated, t)
		}
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, recentKey(userID), raw); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *stockService) ClearRecentSearches(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingIdentity
	}
	return s.kv.Delete(ctx, recentKey(userID))
}

func (s *stockService) loadRecent(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.kv.Get(ctx, recentKey(userID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var recent []string
	if err := json.Unmarshal(raw, &recent); err != nil {
		return nil, fmt.Errorf("decode recent searches: %w", err)
	}
	return recent, nil
}
