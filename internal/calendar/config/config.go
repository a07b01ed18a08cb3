package config

import (
	"fmt"
	"time"

	"stock-event-calendar/pkg/config"

	"github.com/robfig/cron/v3"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Identity holds the anonymous per-browser identity cookie settings.
type Identity struct {
	CookieName string        `mapstructure:"cookie_name"`
	MaxAge     time.Duration `mapstructure:"max_age"`
	Secure     bool          `mapstructure:"secure"`
}

// Storage selects the drivers behind per-user calendar state and rate limits.
type Storage struct {
	KVDriver        string `mapstructure:"kv_driver"`
	RateLimitDriver string `mapstructure:"rate_limit_driver"`
}

// Calendar holds month-grid rendering settings.
type Calendar struct {
	TimeZone          string        `mapstructure:"time_zone"`
	VisibleEventsDay  int           `mapstructure:"visible_events_per_day"`
	NoticeDuration    time.Duration `mapstructure:"notice_duration"`
	RecentSearchLimit int           `mapstructure:"recent_search_limit"`
}

// Catalog holds event catalog cache settings.
type Catalog struct {
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

// Digest holds the upcoming-events notification job settings.
type Digest struct {
	Enabled   bool   `mapstructure:"enabled"`
	Schedule  string `mapstructure:"schedule"`
	DaysAhead int    `mapstructure:"days_ahead"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Portfolio holds portfolio sync settings.
type Portfolio struct {
	SyncWindow time.Duration `mapstructure:"sync_window"`
}

// Recommendation holds the stock categorisation tables used for scoring.
// Empty lists fall back to the built-in defaults.
type Recommendation struct {
	AllSectorsChoice   string              `mapstructure:"all_sectors_choice"`
	ConservativeStocks []string            `mapstructure:"conservative_stocks"`
	ModerateStocks     []string            `mapstructure:"moderate_stocks"`
	AggressiveStocks   []string            `mapstructure:"aggressive_stocks"`
	DayTradingStocks   []string            `mapstructure:"day_trading_stocks"`
	LongTermStocks     []string            `mapstructure:"long_term_stocks"`
	TrendingStocks     []string            `mapstructure:"trending_stocks"`
	SectorMapping      map[string][]string `mapstructure:"sector_mapping"`
	MaxResults         int                 `mapstructure:"max_results"`
	MinResults         int                 `mapstructure:"min_results"`
}

// Config holds the full configuration for the calendar service.
type Config struct {
	App            config.App      `mapstructure:"app"`
	Logger         config.Logger   `mapstructure:"logger"`
	Database       config.Database `mapstructure:"database"`
	Redis          config.Redis    `mapstructure:"redis"`
	API            config.API      `mapstructure:"api"`
	Identity       Identity        `mapstructure:"identity"`
	Storage        Storage         `mapstructure:"storage"`
	Calendar       Calendar        `mapstructure:"calendar"`
	Catalog        Catalog         `mapstructure:"catalog"`
	Digest         Digest          `mapstructure:"digest"`
	Telegram       Telegram        `mapstructure:"telegram"`
	Portfolio      Portfolio       `mapstructure:"portfolio"`
	Recommendation Recommendation  `mapstructure:"recommendation"`
}

var defaults = map[string]interface{}{
	"app.name":                        "stock-event-calendar",
	"app.env":                         "development",
	"logger.level":                    "info",
	"logger.encoding":                 "json",
	"database.port":                   5432,
	"database.ssl_mode":               "disable",
	"database.time_zone":              "UTC",
	"redis.port":                      6379,
	"redis.pool_size":                 10,
	"redis.key_prefix":                "calendar:",
	"api.port":                        8080,
	"identity.cookie_name":            "userId",
	"identity.max_age":                "8760h",
	"storage.kv_driver":               DriverMemory,
	"storage.rate_limit_driver":       DriverMemory,
	"calendar.time_zone":              "UTC",
	"calendar.visible_events_per_day": 3,
	"calendar.notice_duration":        "2s",
	"calendar.recent_search_limit":    5,
	"catalog.refresh_schedule":        "@every 5m",
	"digest.enabled":                  false,
	"digest.schedule":                 "0 7 * * 1-5",
	"digest.days_ahead":               7,
	"portfolio.sync_window":           "60s",
	"recommendation.max_results":      12,
	"recommendation.min_results":      8,
}

// Load loads the calendar configuration from the given path and validates it.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	for name, driver := range map[string]string{
		"storage.kv_driver":         c.Storage.KVDriver,
		"storage.rate_limit_driver": c.Storage.RateLimitDriver,
	} {
		if driver != DriverMemory && driver != DriverRedis {
			return fmt.Errorf("%s must be one of: %s, %s", name, DriverMemory, DriverRedis)
		}
	}

	if _, err := time.LoadLocation(c.Calendar.TimeZone); err != nil {
		return fmt.Errorf("calendar.time_zone is invalid: %w", err)
	}
	if c.Calendar.VisibleEventsDay < 1 {
		return fmt.Errorf("calendar.visible_events_per_day must be at least 1")
	}
	if c.Identity.CookieName == "" {
		return fmt.Errorf("identity.cookie_name is required")
	}
	if c.Portfolio.SyncWindow <= 0 {
		return fmt.Errorf("portfolio.sync_window must be positive")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Catalog.RefreshSchedule); err != nil {
		return fmt.Errorf("catalog.refresh_schedule is invalid: %w", err)
	}
	if c.Digest.Enabled {
		if _, err := parser.Parse(c.Digest.Schedule); err != nil {
			return fmt.Errorf("digest.schedule is invalid: %w", err)
		}
		if c.Digest.DaysAhead < 1 {
			return fmt.Errorf("digest.days_ahead must be at least 1")
		}
		if c.Telegram.BotToken == "" || c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.bot_token and telegram.chat_id are required when digest is enabled")
		}
	}
	if c.Recommendation.MinResults > c.Recommendation.MaxResults {
		return fmt.Errorf("recommendation.min_results must not exceed recommendation.max_results")
	}

	return nil
}

// Location returns the calendar time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Calendar.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
