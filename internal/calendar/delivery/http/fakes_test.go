package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock-event-calendar/internal/calendar/config"
	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/service"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"

	"github.com/labstack/echo/v4"
)

const testUser = "user_test"

var testLogger = logger.NewNop()

type fakeCatalog struct {
	events    []entity.Event
	err       error
	lastQuery service.EventQuery
}

func (f *fakeCatalog) Events(context.Context) ([]entity.Event, error) { return f.events, f.err }

func (f *fakeCatalog) Get(_ context.Context, id string) (*entity.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, &service.NotFoundError{Message: "Event not found"}
}

func (f *fakeCatalog) Query(_ context.Context, q service.EventQuery) ([]entity.Event, error) {
	f.lastQuery = q
	return f.events, f.err
}

func (f *fakeCatalog) Refresh(context.Context) error { return f.err }

type fakeBoard struct {
	view      *dto.MonthView
	result    *dto.DropResult
	err       error
	lastScope service.PlacementScope
	lastMonth time.Time
	lastDrop  dto.DropRequest
}

func (f *fakeBoard) MonthView(_ context.Context, scope service.PlacementScope, month time.Time, _ service.EventFilters, _ string) (*dto.MonthView, error) {
	f.lastScope = scope
	f.lastMonth = month
	return f.view, f.err
}

func (f *fakeBoard) ApplyDrop(_ context.Context, scope service.PlacementScope, req dto.DropRequest) (*dto.DropResult, error) {
	f.lastScope = scope
	f.lastDrop = req
	return f.result, f.err
}

type fakePlacements struct {
	placement *entity.Placement
	created   bool
	list      []entity.Placement
	err       error
	lastUser  string
}

func (f *fakePlacements) Create(_ context.Context, userID string, _ dto.CreatePlacementRequest) (*entity.Placement, bool, error) {
	f.lastUser = userID
	return f.placement, f.created, f.err
}

func (f *fakePlacements) List(_ context.Context, userID string, _ dto.PlacementListQuery) ([]entity.Placement, error) {
	f.lastUser = userID
	return f.list, f.err
}

func (f *fakePlacements) Delete(_ context.Context, userID string, _ dto.DeletePlacementQuery) (*entity.Placement, error) {
	f.lastUser = userID
	return f.placement, f.err
}

type fakeVotes struct {
	submit *dto.SubmitVoteResponse
	event  *dto.EventVotesResponse
	votes  []entity.Vote
	err    error
}

func (f *fakeVotes) SubmitVote(context.Context, string, dto.SubmitVoteRequest) (*dto.SubmitVoteResponse, error) {
	return f.submit, f.err
}

func (f *fakeVotes) GetAggregate(context.Context, string) (dto.VoteAggregate, error) {
	return dto.VoteAggregate{}, f.err
}

func (f *fakeVotes) GetEventVotes(context.Context, string, string) (*dto.EventVotesResponse, error) {
	return f.event, f.err
}

func (f *fakeVotes) ListUserVotes(context.Context, string) ([]entity.Vote, error) {
	return f.votes, f.err
}

type fakeOnboarding struct {
	pref     *entity.UserPreference
	recs     []dto.StockRecommendation
	err      error
	lastUser string
}

func (f *fakeOnboarding) SavePreferences(_ context.Context, userID string, _ dto.Questionnaire) (*entity.UserPreference, error) {
	f.lastUser = userID
	return f.pref, f.err
}

func (f *fakeOnboarding) LatestPreferences(_ context.Context, userID string) (*entity.UserPreference, error) {
	f.lastUser = userID
	return f.pref, f.err
}

func (f *fakeOnboarding) Recommend(context.Context, dto.Questionnaire) ([]dto.StockRecommendation, error) {
	return f.recs, f.err
}

func (f *fakeOnboarding) RecommendForUser(_ context.Context, userID string) ([]dto.StockRecommendation, error) {
	f.lastUser = userID
	return f.recs, f.err
}

type fakeStocks struct {
	stocks    []entity.Stock
	recent    []string
	err       error
	lastQuery string
	cleared   bool
}

func (f *fakeStocks) Search(_ context.Context, q string) ([]entity.Stock, error) {
	f.lastQuery = q
	return f.stocks, f.err
}

func (f *fakeStocks) Get(_ context.Context, ticker string) (*entity.Stock, error) {
	for i := range f.stocks {
		if strings.EqualFold(f.stocks[i].Ticker, ticker) {
			return &f.stocks[i], nil
		}
	}
	return nil, &service.NotFoundError{Message: "Stock not found"}
}

func (f *fakeStocks) RecentSearches(context.Context, string) ([]string, error) { return f.recent, f.err }

func (f *fakeStocks) AddRecentSearch(_ context.Context, _ string, ticker string) ([]string, error) {
	f.recent = append([]string{strings.ToUpper(ticker)}, f.recent...)
	return f.recent, f.err
}

func (f *fakeStocks) ClearRecentSearches(context.Context, string) error {
	f.cleared = true
	return f.err
}

type fakePortfolio struct {
	holdings *dto.HoldingsResponse
	manual   *dto.ManualPortfolioResponse
	sync     *dto.SyncResponse
	err      error
	lastID   string
}

func (f *fakePortfolio) Holdings(context.Context, string) (*dto.HoldingsResponse, error) {
	return f.holdings, f.err
}

func (f *fakePortfolio) SaveManual(context.Context, string, []string) (*dto.ManualPortfolioResponse, error) {
	return f.manual, f.err
}

func (f *fakePortfolio) Manual(context.Context, string) (*entity.Portfolio, error) {
	return nil, f.err
}

func (f *fakePortfolio) Sync(_ context.Context, _ string, portfolioID string) (*dto.SyncResponse, error) {
	f.lastID = portfolioID
	return f.sync, f.err
}

func (f *fakePortfolio) Disconnect(_ context.Context, _ string, portfolioID string) error {
	f.lastID = portfolioID
	return f.err
}

type fakeScheduler struct {
	jobs       []dto.JobStatus
	ran        []string
	executions []entity.JobExecution
	lastLimit  int
}

func (f *fakeScheduler) Executions(_ context.Context, name string, limit int) ([]entity.JobExecution, error) {
	f.lastLimit = limit
	for _, j := range f.jobs {
		if j.Name == name {
			return f.executions, nil
		}
	}
	return nil, &service.NotFoundError{Message: "Job not found"}
}

func (f *fakeScheduler) Register(service.Job) error { return nil }
func (f *fakeScheduler) Start(context.Context) {}
func (f *fakeScheduler) Jobs() []dto.JobStatus { return f.jobs }

func (f *fakeScheduler) RunNow(_ context.Context, name string) error {
	for _, j := range f.jobs {
		if j.Name == name {
			f.ran = append(f.ran, name)
			return nil
		}
	}
	return &service.NotFoundError{Message: "Job not found"}
}

type testServer struct {
	e          *echo.Echo
	catalog    *fakeCatalog
	board      *fakeBoard
	placements *fakePlacements
	votes      *fakeVotes
	onboarding *fakeOnboarding
	stocks     *fakeStocks
	portfolio  *fakePortfolio
	scheduler  *fakeScheduler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		e:          echo.New(),
		catalog:    &fakeCatalog{},
		board:      &fakeBoard{},
		placements: &fakePlacements{},
		votes:      &fakeVotes{},
		onboarding: &fakeOnboarding{},
		stocks:     &fakeStocks{},
		portfolio:  &fakePortfolio{},
		scheduler:  &fakeScheduler{},
	}
	identity := NewIdentity(config.Identity{CookieName: "userId", MaxAge: 24 * time.Hour})
	calendar := NewCalendarHandler(s.board, s.placements, time.UTC, testLogger)
	calendar.now = func() time.Time { return time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC) }

	Register(s.e, identity, Handlers{
		System:     NewSystemHandler("stock-event-calendar", identity, s.scheduler, testLogger),
		Event:      NewEventHandler(s.catalog, testLogger),
		Calendar:   calendar,
		Vote:       NewVoteHandler(s.votes, testLogger),
		Onboarding: NewOnboardingHandler(s.onboarding, identity, testLogger),
		Stock:      NewStockHandler(s.stocks, identity, testLogger),
		Portfolio:  NewPortfolioHandler(s.portfolio, testLogger),
	}, testLogger)
	return s
}

// do sends a request; a non-empty user attaches the identity cookie.
func (s *testServer) do(method, target, body, user string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != "" {
		req.AddCookie(&http.Cookie{Name: "userId", Value: user})
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}
