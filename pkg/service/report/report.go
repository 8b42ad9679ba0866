// Package report implements the read-side aggregations: totals,
// grouped sums, profit/loss classification, monthly series, recent
// entries and the CSV export. It never mutates ledger data.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/storebook/storebook/pkg/repository"
)

// Service computes aggregates over already-validated ledger data.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a report service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// Sum totals the kind's monetary column over the scope; 0 when no rows
// match.
func (s *Service) Sum(ctx context.Context, kind ledger.Kind, scope ledger.Scope) (float64, error) {
	var total float64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		total, err = uow.Entries().Sum(ctx, kind, scope)
		return err
	})
	if err != nil {
		s.logger.Error("sum failed", "kind", kind, "error", err)
		return 0, err
	}
	return total, nil
}

// GroupSum totals the kind per category, omitting groups whose sum is
// not positive: the result feeds a part-to-whole chart where a zero or
// negative slice is meaningless.
func (s *Service) GroupSum(ctx context.Context, kind ledger.Kind, scope ledger.Scope) ([]ledger.CategoryTotal, error) {
	var groups []ledger.CategoryTotal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		groups, err = uow.Entries().GroupSum(ctx, kind, scope)
		return err
	})
	if err != nil {
		s.logger.Error("group sum failed", "kind", kind, "error", err)
		return nil, err
	}
	positive := groups[:0]
	for _, g := range groups {
		if g.Total > 0 {
			positive = append(positive, g)
		}
	}
	return positive, nil
}

// ProfitLoss computes income minus expenses for one store, classified
// as Profit, Loss or Break-even, alongside the other section totals the
// report view prints.
func (s *Service) ProfitLoss(ctx context.Context, storeID uint) (*ledger.ProfitLossReport, error) {
	scope := ledger.OneStore(storeID)
	r := &ledger.ProfitLossReport{}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		entries := uow.Entries()
		for _, item := range []struct {
			kind ledger.Kind
			dst  *float64
		}{
			{ledger.KindCapital, &r.TotalCapital},
			{ledger.KindIncome, &r.TotalIncome},
			{ledger.KindExpense, &r.TotalExpenses},
			{ledger.KindLiability, &r.TotalLiabilities},
			{ledger.KindAsset, &r.TotalAssets},
		} {
			total, err := entries.Sum(ctx, item.kind, scope)
			if err != nil {
				return err
			}
			*item.dst = total
		}
		return nil
	})
	if err != nil {
		s.logger.Error("profit/loss failed", "store_id", storeID, "error", err)
		return nil, err
	}
	r.Net = r.TotalIncome - r.TotalExpenses
	r.Classification = ledger.Classify(r.Net)
	return r, nil
}

// MonthlySeries returns one total per trailing calendar month,
// including the current month, oldest first. Empty months contribute 0.
func (s *Service) MonthlySeries(
	ctx context.Context,
	storeID uint,
	kind ledger.Kind,
	monthsBack int,
) ([]ledger.MonthTotal, error) {
	if monthsBack <= 0 {
		return nil, nil
	}
	now := s.now()
	series := make([]ledger.MonthTotal, 0, monthsBack)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		for i := monthsBack - 1; i >= 0; i-- {
			monthStart := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			nextMonthStart := monthStart.AddDate(0, 1, 0)
			total, err := uow.Entries().SumDateRange(ctx, kind, storeID,
				monthStart.Format("2006-01-02"), nextMonthStart.Format("2006-01-02"))
			if err != nil {
				return err
			}
			series = append(series, ledger.MonthTotal{
				Month: monthStart.Format("2006-01"),
				Total: total,
			})
		}
		return nil
	})
	if err != nil {
		s.logger.Error("monthly series failed", "kind", kind, "store_id", storeID, "error", err)
		return nil, err
	}
	return series, nil
}

// RecentEntries returns the limit most recent rows across all five
// kinds combined, newest date first.
func (s *Service) RecentEntries(ctx context.Context, scope ledger.Scope, limit int) ([]dto.RecentEntry, error) {
	var rows []dto.RecentEntry
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rows, err = uow.Entries().Recent(ctx, scope, limit)
		return err
	})
	if err != nil {
		s.logger.Error("recent entries failed", "error", err)
		return nil, err
	}
	return rows, nil
}
