// Package budget implements the monthly-budgeting domain: month
// lifecycle, the aggregated summary, child-record operations, stats
// and the export/import snapshot.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

var (
	// ErrAlreadyClosed reports a close attempt on a closed month.
	ErrAlreadyClosed = errors.New("month is already closed")
	// ErrNotLastDay reports a close attempt before the month's final
	// calendar day, or on a month other than the current one.
	ErrNotLastDay = errors.New("month can only be closed on its last day")
	// ErrInvalidSnapshot reports an import payload that is not a
	// version-1 snapshot.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService wires the service over a store. The clock defaults to
// time.Now and is swappable for the date-rule tests.
func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ownedMonth loads a month and verifies ownership in one lookup.
// Months owned by someone else surface as store.ErrNotFound.
func (s *Service) ownedMonth(ctx context.Context, monthID, userID int64) (core.Month, error) {
	m, err := s.store.Month(ctx, monthID, userID)
	if err != nil {
		return core.Month{}, err
	}
	return m, nil
}

// ownedCategory checks that a category belongs to the user before it
// is referenced from a budget or item.
func (s *Service) ownedCategory(ctx context.Context, categoryID, userID int64) error {
	return s.ownedResource(ctx, store.KindCategory, categoryID, userID)
}

// Savings updates the user's liquid savings figure.
func (s *Service) UpdateSavings(ctx context.Context, userID int64, amount float64) error {
	if err := s.store.UpdateSavings(ctx, userID, amount); err != nil {
		return fmt.Errorf("update savings: %w", err)
	}
	return nil
}

func (s *Service) UpdateRetirementSavings(ctx context.Context, userID int64, amount float64) error {
	if err := s.store.UpdateRetirementSavings(ctx, userID, amount); err != nil {
		return fmt.Errorf("update retirement savings: %w", err)
	}
	return nil
}

// Settings returns the user's display settings, falling back to the
// defaults when none were saved yet.
func (s *Service) Settings(ctx context.Context, userID int64) (core.Settings, error) {
	st, ok, err := s.store.Settings(ctx, userID)
	if err != nil {
		return core.Settings{}, err
	}
	if !ok {
		return core.Settings{BaseCurrency: "EUR", CurrencySymbol: "€"}, nil
	}
	return st, nil
}

func (s *Service) SaveSettings(ctx context.Context, userID int64, st core.Settings) error {
	return s.store.UpsertSettings(ctx, userID, st)
}
