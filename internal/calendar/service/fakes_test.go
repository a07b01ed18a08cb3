package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testLogger = logger.NewNop()

type fakeEventRepo struct {
	events []entity.Event
	calls  int
	err    error
}

func (r *fakeEventRepo) FindAll(_ context.Context) ([]entity.Event, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id string) (*entity.Event, error) {
	for _, e := range r.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEventRepo) Upsert(_ context.Context, events []entity.Event) error {
	r.events = append(r.events, events...)
	return nil
}

type fakePlacementRepo struct {
	mu         sync.Mutex
	placements []entity.Placement
	createErr  error
}

func sameTicker(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakePlacementRepo) Create(_ context.Context, p *entity.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.placements = append(r.placements, *p)
	return nil
}

func (r *fakePlacementRepo) FindByID(_ context.Context, userID, id string) (*entity.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.placements {
		if p.ID == id && p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePlacementRepo) FindByKey(_ context.Context, userID, eventID, date string, ticker *string) (*entity.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.placements {
		if p.UserID == userID && p.EventID == eventID && p.Date == date && sameTicker(p.StockTicker, ticker) {
			p := p
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePlacementRepo) FindByUser(_ context.Context, userID string, f repository.PlacementFilter) ([]entity.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Placement{}
	for _, p := range r.placements {
		if p.UserID != userID {
			continue
		}
		if f.StartDate != "" && p.Date < f.StartDate || f.EndDate != "" && p.Date > f.EndDate {
			continue
		}
		if f.GlobalOnly && p.StockTicker != nil {
			continue
		}
		if f.StockTicker != nil && !sameTicker(p.StockTicker, f.StockTicker) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakePlacementRepo) Delete(_ context.Context, p *entity.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.placements {
		if existing.ID == p.ID {
			r.placements = append(r.placements[:i], r.placements[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeVoteRepo struct {
	votes []entity.Vote
}

func (r *fakeVoteRepo) FindByUserAndEvent(_ context.Context, userID, eventID string) (*entity.Vote, error) {
	for i := range r.votes {
		if r.votes[i].UserID == userID && r.votes[i].EventID == eventID {
			v := r.votes[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVoteRepo) FindByUser(_ context.Context, userID string) ([]entity.Vote, error) {
	out := []entity.Vote{}
	for _, v := range r.votes {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) Create(_ context.Context, v *entity.Vote) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	r.votes = append(r.votes, *v)
	return nil
}

func (r *fakeVoteRepo) Update(_ context.Context, v *entity.Vote) error {
	for i := range r.votes {
		if r.votes[i].ID == v.ID {
			r.votes[i].Vote = v.Vote
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeVoteRepo) CountByEvent(_ context.Context, eventID string) ([]repository.VoteCount, error) {
	counts := map[entity.VoteValue]int{}
	for _, v := range r.votes {
		if v.EventID == eventID {
			counts[v.Vote]++
		}
	}
	out := []repository.VoteCount{}
	for value, n := range counts {
		out = append(out, repository.VoteCount{Vote: value, Count: n})
	}
	return out, nil
}

type fakePreferenceRepo struct {
	prefs []entity.UserPreference
}

func (r *fakePreferenceRepo) Create(_ context.Context, p *entity.UserPreference) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().Add(time.Duration(len(r.prefs)) * time.Second)
	r.prefs = append(r.prefs, *p)
	return nil
}

func (r *fakePreferenceRepo) FindLatestByUser(_ context.Context, userID string) (*entity.UserPreference, error) {
	var latest *entity.UserPreference
	for i := range r.prefs {
		p := r.prefs[i]
		if p.UserID == userID && (latest == nil || p.CreatedAt.After(latest.CreatedAt)) {
			latest = &p
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

type fakeStockRepo struct {
	stocks []entity.Stock
	limit  int
}

func (r *fakeStockRepo) FindAll(_ context.Context) ([]entity.Stock, error) {
	return r.stocks, nil
}

func (r *fakeStockRepo) FindByTicker(_ context.Context, ticker string) (*entity.Stock, error) {
	for _, s := range r.stocks {
		if strings.EqualFold(s.Ticker, ticker) {
			s := s
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStockRepo) Search(_ context.Context, q string, limit int) ([]entity.Stock, error) {
	r.limit = limit
	out := []entity.Stock{}
	for _, s := range r.stocks {
		if strings.Contains(strings.ToLower(s.Ticker), q) || strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeStockRepo) Upsert(_ context.Context, stocks []entity.Stock) error {
	r.stocks = append(r.stocks, stocks...)
	return nil
}

type fakePortfolioRepo struct {
	portfolios  []entity.Portfolio
	replaceErrs map[string]error
}

func (r *fakePortfolioRepo) index(id string) int {
	for i := range r.portfolios {
		if r.portfolios[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *fakePortfolioRepo) Create(_ context.Context, p *entity.Portfolio) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.portfolios = append(r.portfolios, *p)
	return nil
}

func (r *fakePortfolioRepo) FindByUser(_ context.Context, userID string) ([]entity.Portfolio, error) {
	out := []entity.Portfolio{}
	for _, p := range r.portfolios {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePortfolioRepo) FindByID(_ context.Context, userID, id string) (*entity.Portfolio, error) {
	if i := r.index(id); i >= 0 && r.portfolios[i].UserID == userID {
		p := r.portfolios[i]
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePortfolioRepo) FindByBroker(_ context.Context, userID string, broker entity.BrokerName) (*entity.Portfolio, error) {
	for _, p := range r.portfolios {
		if p.UserID == userID && p.BrokerName == broker {
			p := p
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePortfolioRepo) Update(_ context.Context, p *entity.Portfolio) error {
	i := r.index(p.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	holdings := r.portfolios[i].Holdings
	r.portfolios[i] = *p
	r.portfolios[i].Holdings = holdings
	return nil
}

func (r *fakePortfolioRepo) ReplaceHoldings(_ context.Context, p *entity.Portfolio, holdings []entity.PortfolioHolding) error {
	if err := r.replaceErrs[p.ID]; err != nil {
		return err
	}
	i := r.index(p.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	for h := range holdings {
		holdings[h].PortfolioID = p.ID
		if holdings[h].ID == "" {
			holdings[h].ID = uuid.NewString()
		}
	}
	p.Holdings = holdings
	r.portfolios[i] = *p
	return nil
}

func (r *fakePortfolioRepo) Delete(_ context.Context, p *entity.Portfolio) error {
	i := r.index(p.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.portfolios = append(r.portfolios[:i], r.portfolios[i+1:]...)
	return nil
}

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) SendMessage(text string) error {
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, text)
	return nil
}

type failingBroker struct{}

func (failingBroker) Positions(context.Context, entity.BrokerName) ([]BrokerPosition, error) {
	return nil, errors.New("broker unavailable")
}
