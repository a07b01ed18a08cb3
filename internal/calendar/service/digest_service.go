package service

import (
	"context"
	"time"

	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/telegram"
	"stock-event-calendar/pkg/utils"
)

// DigestService sends upcoming catalog events to a chat.
type DigestService interface {
	SendUpcoming(ctx context.Context) error
}

// NewDigestService creates a new digest service.
func NewDigestService(catalog EventCatalog, notifier telegram.Notifier, daysAhead int, loc *time.Location, log *logger.Logger) DigestService {
	return &digestService{
		catalog:   catalog,
		notifier:  notifier,
		daysAhead: daysAhead,
		loc:       loc,
		logger:    log,
		now:       time.Now,
	}
}

type digestService struct {
	catalog   EventCatalog
	notifier  telegram.Notifier
	daysAhead int
	loc       *time.Location
	logger    *logger.Logger
	now       func() time.Time
}

// SendUpcoming posts every event from today through daysAhead days ahead.
func (s *digestService) SendUpcoming(ctx context.Context) error {
	from := utils.StartOfDay(s.now(), s.loc)
	to := from.AddDate(0, 0, s.daysAhead)

	events, err := s.catalog.Query(ctx, EventQuery{
		StartDate: utils.DateKey(from, s.loc),
		EndDate:   utils.DateKey(to, s.loc),
	})
	if err != nil {
		return err
	}

	for _, msg := range telegram.FormatUpcomingEvents(events, from, to, s.loc) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send digest", logger.ErrorField(err))
			return err
		}
	}
	s.logger.Info("Digest sent", logger.IntField("events", len(events)))
	return nil
}
