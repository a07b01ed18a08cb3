package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"stock-event-calendar/pkg/common"
	"stock-event-calendar/pkg/kvstore"
)

// PlacementScope identifies one calendar: a user's global calendar, or the
// per-ticker calendar when StockTicker is set.
type PlacementScope struct {
	UserID      string
	StockTicker string
}

// Key returns the storage namespace for the scope.
func (s PlacementScope) Key() string {
	if s.StockTicker == "" {
		return fmt.Sprintf(common.KVKeyPlacements, s.UserID)
	}
	return fmt.Sprintf(common.KVKeyPlacementsTick, s.UserID, strings.ToUpper(s.StockTicker))
}

// LocalPlacement is one (event, date) pair on a calendar.
type LocalPlacement struct {
	EventID string `json:"eventId"`
	Date    string `json:"date"`
}

// PlacementStore keeps per-calendar placements in a key-value store. Every
// mutation persists the full set.
type PlacementStore interface {
	List(ctx context.Context, scope PlacementScope) ([]LocalPlacement, error)
	Place(ctx context.Context, scope PlacementScope, eventID, date string) (bool, error)
	Remove(ctx context.Context, scope PlacementScope, eventID, date string) (bool, error)
	IsPlaced(ctx context.Context, scope PlacementScope, eventID, date string) (bool, error)
}

// NewPlacementStore creates a new placement store over kv.
func NewPlacementStore(kv kvstore.Store) PlacementStore {
	return &placementStore{kv: kv}
}

type placementStore struct {
	mu sync.Mutex
	kv kvstore.Store
}

func (s *placementStore) List(ctx context.Context, scope PlacementScope) ([]LocalPlacement, error) {
	if scope.UserID == "" {
		return nil, ErrMissingIdentity
	}
	return s.load(ctx, scope)
}

// Place adds the placement and reports whether it was new.
func (s *placementStore) Place(ctx context.Context, scope PlacementScope, eventID, date string) (bool, error) {
	if scope.UserID == "" {
		return false, ErrMissingIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placements, err := s.load(ctx, scope)
	if err != nil {
		return false, err
	}
	for _, p := range placements {
		if p.EventID == eventID && p.Date == date {
			return false, nil
		}
	}
	placements = append(placements, LocalPlacement{EventID: eventID, Date: date})
	return true, s.save(ctx, scope, placements)
}

// Remove drops every matching placement and reports whether one existed.
func (s *placementStore) Remove(ctx context.Context, scope PlacementScope, eventID, date string) (bool, error) {
	if scope.UserID == "" {
		return false, ErrMissingIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placements, err := s.load(ctx, scope)
	if err != nil {
		return false, err
	}
	kept := placements[:0]
	for _, p := range placements {
		if p.EventID == eventID && p.Date == date {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == len(placements) {
		return false, nil
	}
	return true, s.save(ctx, scope, kept)
}

func (s *placementStore) IsPlaced(ctx context.Context, scope PlacementScope, eventID, date string) (bool, error) {
	placements, err := s.List(ctx, scope)
	if err != nil {
		return false, err
	}
	for _, p := range placements {
		if p.EventID == eventID && p.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *placementStore) load(ctx context.Context, scope PlacementScope) ([]LocalPlacement, error) {
	raw, err := s.kv.Get(ctx, scope.Key())
	if errors.Is(err, kvstore.ErrNotFound) {
		return []LocalPlacement{}, nil
	}
	if err != nil {
		return nil, err
	}
	var placements []LocalPlacement
	if err := json.Unmarshal(raw, &placements); err != nil {
		return nil, fmt.Errorf("decode placements %s: %w", scope.Key(), err)
	}
	return placements, nil
}

func (s *placementStore) save(ctx context.Context, scope PlacementScope, placements []LocalPlacement) error {
	raw, err := json.Marshal(placements)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, scope.Key(), raw)
}
