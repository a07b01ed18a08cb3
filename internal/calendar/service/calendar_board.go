package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/common"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/utils"
)

const (
	NoticeEventRemoved        = "Event removed from calendar"
	NoticeCannotRemoveDefault = "Cannot remove default events"
)

// Drag step types accepted by ApplyDrop.
const (
	StepEnterDay   = "enter_day"
	StepLeaveDay   = "leave_day"
	StepEnterTrash = "enter_trash"
	StepLeaveTrash = "leave_trash"
	StepCancel     = "cancel"
)

// BoardOptions configures month-grid rendering.
type BoardOptions struct {
	Location       *time.Location
	VisiblePerDay  int
	NoticeDuration time.Duration
	Now            func() time.Time
}

// CalendarBoard composes the month grid from the catalog, the placement store
// and the caller's votes, and applies drag gestures to the store.
type CalendarBoard interface {
	MonthView(ctx context.Context, scope PlacementScope, month time.Time, filters EventFilters, search string) (*dto.MonthView, error)
	ApplyDrop(ctx context.Context, scope PlacementScope, req dto.DropRequest) (*dto.DropResult, error)
}

// NewCalendarBoard creates a new calendar board.
func NewCalendarBoard(catalog EventCatalog, store PlacementStore, votes VoteService, opts BoardOptions, log *logger.Logger) CalendarBoard {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.VisiblePerDay < 1 {
		opts.VisiblePerDay = 3
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &calendarBoard{catalog: catalog, store: store, votes: votes, opts: opts, logger: log}
}

type calendarBoard struct {
	catalog EventCatalog
	store   PlacementStore
	votes   VoteService
	opts    BoardOptions
	logger  *logger.Logger
}

func placementKey(eventID, date string) string {
	return eventID + "|" + date
}

// MonthView renders the Sunday-first grid for month. A ticker-scoped calendar
// applies its ticker as the ticker filter when none is given.
func (b *calendarBoard) MonthView(ctx context.Context, scope PlacementScope, month time.Time, filters EventFilters, search string) (*dto.MonthView, error) {
	loc := b.opts.Location
	if scope.StockTicker != "" && filters.Ticker == "" {
		filters.Ticker = scope.StockTicker
	}

	events, err := b.catalog.Events(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterEvents(events, filters, search)

	placements, err := b.store.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	userVotes := map[string]entity.VoteValue{}
	votes, err := b.votes.ListUserVotes(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	for _, v := range votes {
		userVotes[v.EventID] = v.Vote
	}

	byID := make(map[string]entity.Event, len(filtered))
	native := make(map[string][]entity.Event)
	for _, e := range filtered {
		byID[e.ID] = e
		day := utils.DateKey(e.EventDate, loc)
		native[day] = append(native[day], e)
	}

	placed := make(map[string]bool, len(placements))
	placedByDay := make(map[string][]string)
	for _, p := range placements {
		if placed[placementKey(p.EventID, p.Date)] {
			continue
		}
		placed[placementKey(p.EventID, p.Date)] = true
		placedByDay[p.Date] = append(placedByDay[p.Date], p.EventID)
	}

	monthKey := month.In(loc).Format(common.MonthLayout)
	today := utils.DateKey(b.opts.Now(), loc)
	view := &dto.MonthView{
		Month:       monthKey,
		StockTicker: scope.StockTicker,
		EventCount:  len(filtered),
	}

	var week []dto.Day
	for _, d := range utils.MonthGridDays(month, loc) {
		date := d.Format(common.DateLayout)
		day := dto.Day{
			Date:    date,
			InMonth: d.Format(common.MonthLayout) == monthKey,
			IsToday: date == today,
		}

		seen := map[string]bool{}
		var blocks []dto.DayEvent
		for _, e := range native[date] {
			seen[e.ID] = true
			blocks = append(blocks, b.dayEvent(e, placed[placementKey(e.ID, date)], userVotes))
		}
		for _, id := range placedByDay[date] {
			e, ok := byID[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			blocks = append(blocks, b.dayEvent(e, true, userVotes))
		}

		if len(blocks) > b.opts.VisiblePerDay {
			day.Remaining = len(blocks) - b.opts.VisiblePerDay
			blocks = blocks[:b.opts.VisiblePerDay]
		}
		day.Events = blocks
		if day.Events == nil {
			day.Events = []dto.DayEvent{}
		}

		week = append(week, day)
		if len(week) == 7 {
			view.Weeks = append(view.Weeks, week)
			week = nil
		}
	}
	return view, nil
}

func (b *calendarBoard) dayEvent(e entity.Event, isPlaced bool, votes map[string]entity.VoteValue) dto.DayEvent {
	return dto.DayEvent{
		ID:            e.ID,
		Title:         e.Title,
		Category:      string(e.Category),
		ImpactScope:   string(e.ImpactScope),
		PrimaryTicker: e.PrimaryTicker,
		IsFixedDate:   e.IsFixedDate,
		IsPlaced:      isPlaced,
		Draggable:     !e.IsFixedDate,
		UserVote:      string(votes[e.ID]),
	}
}

// ApplyDrop replays the gesture through a DragSession and applies the
// outcome to the placement store.
func (b *calendarBoard) ApplyDrop(ctx context.Context, scope PlacementScope, req dto.DropRequest) (*dto.DropResult, error) {
	if scope.UserID == "" {
		return nil, ErrMissingIdentity
	}
	if req.EventID == "" || req.SourceDate == "" {
		return nil, newValidationError("eventId", "Missing eventId or sourceDate")
	}
	if _, err := utils.ParseDate(req.SourceDate, b.opts.Location); err != nil {
		return nil, newValidationError("sourceDate", "%s", err.Error())
	}

	event, err := b.catalog.Get(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	isPlaced, err := b.store.IsPlaced(ctx, scope, event.ID, req.SourceDate)
	if err != nil {
		return nil, err
	}

	var session DragSession
	if err := session.Start(*event, req.SourceDate, isPlaced); err != nil {
		return nil, err
	}
	for i, step := range req.Steps {
		switch step.Type {
		case StepEnterDay:
			if _, err := utils.ParseDate(step.Date, b.opts.Location); err != nil {
				return nil, newValidationError(fmt.Sprintf("steps[%d].date", i), "%s", err.Error())
			}
			session.EnterDay(step.Date)
		case StepLeaveDay:
			session.LeaveDay()
		case StepEnterTrash:
			session.EnterTrash()
		case StepLeaveTrash:
			session.LeaveTrash()
		case StepCancel:
			session.Cancel()
			return &dto.DropResult{}, nil
		default:
			return nil, newValidationError(fmt.Sprintf("steps[%d].type", i), "Unknown drag step %q", step.Type)
		}
	}

	outcome, err := session.Drop()
	if err != nil {
		return nil, err
	}

	result := &dto.DropResult{}
	switch outcome.Action {
	case DropPlace:
		if _, err := b.store.Place(ctx, scope, outcome.EventID, outcome.TargetDate); err != nil {
			return nil, err
		}
		result.Placed = true
		result.Date = outcome.TargetDate
	case DropRemove:
		removed, err := b.store.Remove(ctx, scope, outcome.EventID, outcome.TargetDate)
		if err != nil {
			return nil, err
		}
		result.Removed = removed
		result.Date = outcome.TargetDate
		result.Notice = b.notice(NoticeEventRemoved)
	case DropRejectDefault:
		result.Notice = b.notice(NoticeCannotRemoveDefault)
	}

	b.logger.Debug("Drop applied",
		logger.StringField("user_id", scope.UserID),
		logger.StringField("event_id", outcome.EventID),
		logger.IntField("action", int(outcome.Action)),
	)
	return result, nil
}

func (b *calendarBoard) notice(text string) *dto.Notice {
	return &dto.Notice{Text: text, ExpiresAt: b.opts.Now().Add(b.opts.NoticeDuration)}
}

// IsDragRejection reports whether err came from an invalid gesture.
func IsDragRejection(err error) bool {
	return errors.Is(err, ErrFixedDateEvent) || errors.Is(err, ErrDragInProgress) || errors.Is(err, ErrNoDragInProgress)
}
