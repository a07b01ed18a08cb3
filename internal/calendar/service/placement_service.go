package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/utils"

	"gorm.io/gorm"
)

// globalTickerParam selects the global calendar in list and delete queries.
const globalTickerParam = "null"

// PlacementService manages durable, multi-device placements.
type PlacementService interface {
	Create(ctx context.Context, userID string, req dto.CreatePlacementRequest) (*entity.Placement, bool, error)
	List(ctx context.Context, userID string, q dto.PlacementListQuery) ([]entity.Placement, error)
	Delete(ctx context.Context, userID string, q dto.DeletePlacementQuery) (*entity.Placement, error)
}

// NewPlacementService creates a new placement service.
func NewPlacementService(repo repository.PlacementRepository, catalog EventCatalog, loc *time.Location, log *logger.Logger) PlacementService {
	return &placementService{repo: repo, catalog: catalog, loc: loc, logger: log}
}

type placementService struct {
	repo    repository.PlacementRepository
	catalog EventCatalog
	loc     *time.Location
	logger  *logger.Logger
}

// normalizeTicker maps "", "null" and whitespace to the global calendar.
func normalizeTicker(t *string) *string {
	if t == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*t))
	if v == "" || strings.EqualFold(v, globalTickerParam) {
		return nil
	}
	return &v
}

// Create stores the placement, returning the existing row when one already
// matches (user, event, date, ticker scope). The bool reports creation.
func (s *placementService) Create(ctx context.Context, userID string, req dto.CreatePlacementRequest) (*entity.Placement, bool, error) {
	if userID == "" {
		return nil, false, ErrMissingIdentity
	}
	if req.EventID == "" || req.Date == "" {
		return nil, false, newValidationError("eventId", "Missing eventId or date")
	}
	if _, err := utils.ParseDate(req.Date, s.loc); err != nil {
		return nil, false, newValidationError("date", "%s", err.Error())
	}

	event, err := s.catalog.Get(ctx, req.EventID)
	if err != nil {
		return nil, false, err
	}
	if event.IsFixedDate {
		return nil, false, ErrFixedDateEvent
	}

	ticker := normalizeTicker(req.StockTicker)
	existing, err := s.repo.FindByKey(ctx, userID, req.EventID, req.Date, ticker)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	placement := &entity.Placement{
		UserID:      userID,
		EventID:     req.EventID,
		Date:        req.Date,
		StockTicker: ticker,
	}
	if err := s.repo.Create(ctx, placement); err != nil {
		// A concurrent insert may have won the unique index.
		if existing, findErr := s.repo.FindByKey(ctx, userID, req.EventID, req.Date, ticker); findErr == nil {
			return existing, false, nil
		}
		s.logger.Error("Failed to create placement", logger.ErrorField(err), logger.StringField("event_id", req.EventID))
		return nil, false, err
	}

	s.logger.Info("Placement created",
		logger.StringField("user_id", userID),
		logger.StringField("event_id", req.EventID),
		logger.StringField("date", req.Date),
	)
	return placement, true, nil
}

// List returns the user's placements. An empty ticker returns every scope.
func (s *placementService) List(ctx context.Context, userID string, q dto.PlacementListQuery) ([]entity.Placement, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}
	for field, v := range map[string]string{"startDate": q.StartDate, "endDate": q.EndDate} {
		if v == "" {
			continue
		}
		if _, err := utils.ParseDate(v, s.loc); err != nil {
			return nil, newValidationError(field, "%s", err.Error())
		}
	}

	filter := repository.PlacementFilter{StartDate: q.StartDate, EndDate: q.EndDate}
	if q.StockTicker != "" {
		if ticker := normalizeTicker(&q.StockTicker); ticker == nil {
			filter.GlobalOnly = true
		} else {
			filter.StockTicker = ticker
		}
	}
	return s.repo.FindByUser(ctx, userID, filter)
}

// Delete removes a placement by ID or by (event, date, ticker scope).
func (s *placementService) Delete(ctx context.Context, userID string, q dto.DeletePlacementQuery) (*entity.Placement, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}

	var (
		placement *entity.Placement
		err       error
	)
	switch {
	case q.PlacementID != "":
		placement, err = s.repo.FindByID(ctx, userID, q.PlacementID)
	case q.EventID != "" && q.Date != "":
		placement, err = s.repo.FindByKey(ctx, userID, q.EventID, q.Date, normalizeTicker(&q.StockTicker))
	default:
		return nil, newValidationError("placementId", "Must provide placementId or eventId+date")
	}
	if err != nil {
		return nil, translateNotFound(err, "Placement not found")
	}

	if err := s.repo.Delete(ctx, placement); err != nil {
		s.logger.Error("Failed to delete placement", logger.ErrorField(err), logger.StringField("placement_id", placement.ID))
		return nil, err
	}
	return placement, nil
}
