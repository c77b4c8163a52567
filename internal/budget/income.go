package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

func (s *Service) AddIncome(ctx context.Context, userID int64, e core.IncomeEntry) (core.IncomeEntry, error) {
	if strings.TrimSpace(e.Label) == "" {
		return core.IncomeEntry{}, core.ErrEmptyLabel
	}
	if _, err := s.ownedMonth(ctx, e.MonthID, userID); err != nil {
		return core.IncomeEntry{}, err
	}
	return s.store.CreateIncomeEntry(ctx, e)
}

func (s *Service) UpdateIncome(ctx context.Context, userID int64, e core.IncomeEntry) (core.IncomeEntry, error) {
	if strings.TrimSpace(e.Label) == "" {
		return core.IncomeEntry{}, core.ErrEmptyLabel
	}
	if _, err := s.ownedMonth(ctx, e.MonthID, userID); err != nil {
		return core.IncomeEntry{}, err
	}
	if _, err := s.store.IncomeEntry(ctx, e.ID, e.MonthID); err != nil {
		return core.IncomeEntry{}, err
	}
	if err := s.store.UpdateIncomeEntry(ctx, e); err != nil {
		return core.IncomeEntry{}, err
	}
	return s.store.IncomeEntry(ctx, e.ID, e.MonthID)
}

func (s *Service) DeleteIncome(ctx context.Context, userID, monthID, entryID int64) error {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return err
	}
	if _, err := s.store.IncomeEntry(ctx, entryID, monthID); err != nil {
		return err
	}
	return s.store.DeleteIncomeEntry(ctx, entryID)
}

func (s *Service) ReorderIncome(ctx context.Context, userID, monthID int64, orderedIDs []int64) error {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return err
	}
	return s.store.ReorderIncomeEntries(ctx, monthID, orderedIDs)
}

// CopyIncomeFromPrevious copies the previous period's income entries
// into this month and returns how many were copied. A missing or
// empty previous month copies nothing and is not an error.
func (s *Service) CopyIncomeFromPrevious(ctx context.Context, userID, monthID int64) (int, error) {
	m, err := s.ownedMonth(ctx, monthID, userID)
	if err != nil {
		return 0, err
	}

	prevYear, prevMonth := core.PreviousPeriod(m.Year, m.Month)
	prev, err := s.store.FindMonth(ctx, userID, prevYear, prevMonth)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find previous month: %w", err)
	}

	entries, err := s.store.IncomeEntries(ctx, prev.ID)
	if err != nil {
		return 0, fmt.Errorf("load previous income: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	copies := make([]core.IncomeEntry, 0, len(entries))
	for _, e := range entries {
		copies = append(copies, core.IncomeEntry{
			MonthID:      m.ID,
			Label:        e.Label,
			Amount:       e.Amount,
			DisplayOrder: e.DisplayOrder,
		})
	}
	if err := s.store.CreateIncomeEntries(ctx, copies); err != nil {
		return 0, fmt.Errorf("copy income entries: %w", err)
	}
	return len(copies), nil
}
