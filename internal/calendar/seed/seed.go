// Package seed loads the default stock directory and event catalog from YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// EventDateLayout is the wall-clock layout of event_date in seed files,
// interpreted in the configured calendar time zone.
const EventDateLayout = "2006-01-02T15:04:05"

// DemoUserID owns the demo broker portfolio.
const DemoUserID = "demo_user"

type eventFile struct {
	Events []eventRecord `yaml:"events"`
}

type eventRecord struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	EventDate       string   `yaml:"event_date"`
	EventTime       *string  `yaml:"event_time"`
	Category        string   `yaml:"category"`
	ImpactScope     string   `yaml:"impact_scope"`
	PrimaryTicker   *string  `yaml:"primary_ticker"`
	AffectedTickers []string `yaml:"affected_tickers"`
	CertaintyLevel  string   `yaml:"certainty_level"`
	SourceURL       *string  `yaml:"source_url"`
	IsFixedDate     bool     `yaml:"is_fixed_date"`
}

type stockFile struct {
	Stocks []stockRecord `yaml:"stocks"`
}

type stockRecord struct {
	Ticker string `yaml:"ticker"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Sector string `yaml:"sector"`
}

// ParseEvents decodes an events document. Entries sharing a title and
// event_date collapse into the last one.
func ParseEvents(r io.Reader, loc *time.Location) ([]entity.Event, error) {
	var f eventFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	events := make([]entity.Event, 0, len(f.Events))
	seen := make(map[string]int, len(f.Events))
	for i, rec := range f.Events {
		if strings.TrimSpace(rec.Title) == "" {
			return nil, fmt.Errorf("event %d: title is required", i)
		}
		date, err := time.ParseInLocation(EventDateLayout, rec.EventDate, loc)
		if err != nil {
			return nil, fmt.Errorf("event %q: invalid event_date %q", rec.Title, rec.EventDate)
		}
		category := entity.EventCategory(rec.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("event %q: unknown category %q", rec.Title, rec.Category)
		}
		scope := entity.ImpactScope(rec.ImpactScope)
		if !scope.IsValid() {
			return nil, fmt.Errorf("event %q: unknown impact_scope %q", rec.Title, rec.ImpactScope)
		}

		certainty := rec.CertaintyLevel
		if certainty == "" {
			certainty = "confirmed"
		}
		affected := make([]string, 0, len(rec.AffectedTickers))
		for _, t := range rec.AffectedTickers {
			affected = append(affected, strings.ToUpper(strings.TrimSpace(t)))
		}
		var primary *string
		if rec.PrimaryTicker != nil && strings.TrimSpace(*rec.PrimaryTicker) != "" {
			p := strings.ToUpper(strings.TrimSpace(*rec.PrimaryTicker))
			primary = &p
		}

		event := entity.Event{
			Title:           rec.Title,
			Description:     rec.Description,
			EventDate:       date,
			EventTime:       rec.EventTime,
			Category:        category,
			ImpactScope:     scope,
			PrimaryTicker:   primary,
			AffectedTickers: affected,
			CertaintyLevel:  certainty,
			SourceURL:       rec.SourceURL,
			IsDefault:       true,
			IsFixedDate:     rec.IsFixedDate,
		}

		key := rec.Title + "|" + date.UTC().Format(time.RFC3339)
		if idx, ok := seen[key]; ok {
			events[idx] = event
			continue
		}
		seen[key] = len(events)
		events = append(events, event)
	}
	return events, nil
}

// ParseStocks decodes a stocks document.
func ParseStocks(r io.Reader) ([]entity.Stock, error) {
	var f stockFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode stocks: %w", err)
	}

	stocks := make([]entity.Stock, 0, len(f.Stocks))
	for i, rec := range f.Stocks {
		ticker := strings.ToUpper(strings.TrimSpace(rec.Ticker))
		if ticker == "" {
			return nil, fmt.Errorf("stock %d: ticker is required", i)
		}
		typ := entity.StockType(rec.Type)
		switch typ {
		case entity.StockTypeStock, entity.StockTypeCrypto, entity.StockTypeETF, entity.StockTypeIndex:
		case "":
			typ = entity.StockTypeStock
		default:
			return nil, fmt.Errorf("stock %q: unknown type %q", ticker, rec.Type)
		}
		stocks = append(stocks, entity.Stock{Ticker: ticker, Name: rec.Name, Type: typ, Sector: rec.Sector})
	}
	return stocks, nil
}

// Options selects what a seed run writes.
type Options struct {
	EventsPath    string
	StocksPath    string
	DemoPortfolio bool
}

// Seeder writes seed data through the repositories.
type Seeder struct {
	events     repository.EventRepository
	stocks     repository.StockRepository
	portfolios repository.PortfolioRepository
	portfolio  service.PortfolioService
	loc        *time.Location
	logger     *logger.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	events repository.EventRepository,
	stocks repository.StockRepository,
	portfolios repository.PortfolioRepository,
	portfolio service.PortfolioService,
	loc *time.Location,
	log *logger.Logger,
) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	return &Seeder{events: events, stocks: stocks, portfolios: portfolios, portfolio: portfolio, loc: loc, logger: log}
}

// Run upserts stocks and events, then optionally creates the demo portfolio.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.StocksPath != "" {
		stocks, err := readFile(opts.StocksPath, ParseStocks)
		if err != nil {
			return err
		}
		if err := s.stocks.Upsert(ctx, stocks); err != nil {
			return fmt.Errorf("failed to upsert stocks: %w", err)
		}
		s.logger.Info("Seeded stocks", logger.IntField("count", len(stocks)))
	}

	if opts.EventsPath != "" {
		events, err := readFile(opts.EventsPath, func(r io.Reader) ([]entity.Event, error) { return ParseEvents(r, s.loc) })
		if err != nil {
			return err
		}
		if err := s.events.Upsert(ctx, events); err != nil {
			return fmt.Errorf("failed to upsert events: %w", err)
		}
		s.logger.Info("Seeded events", logger.IntField("count", len(events)))
	}

	if opts.DemoPortfolio {
		return s.seedDemoPortfolio(ctx)
	}
	return nil
}

func (s *Seeder) seedDemoPortfolio(ctx context.Context) error {
	existing, err := s.portfolios.FindByBroker(ctx, DemoUserID, entity.BrokerRobinhood)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		s.logger.Info("Demo portfolio already exists, skipping", logger.StringField("portfolio_id", existing.ID))
		return nil
	}

	p := &entity.Portfolio{
		UserID:           DemoUserID,
		BrokerName:       entity.BrokerRobinhood,
		ConnectionStatus: entity.ConnectionConnected,
	}
	if err := s.portfolios.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create demo portfolio: %w", err)
	}

	resp, err := s.portfolio.Sync(ctx, DemoUserID, p.ID)
	if err != nil {
		return fmt.Errorf("failed to sync demo portfolio: %w", err)
	}
	s.logger.Info("Seeded demo portfolio",
		logger.StringField("portfolio_id", p.ID),
		logger.IntField("holdings", len(resp.Holdings)),
	)
	return nil
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	items, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
