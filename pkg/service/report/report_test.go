package report

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/storebook/storebook/config"
	"github.com/storebook/storebook/infra"
	"github.com/storebook/storebook/infra/migration"
	infrarepo "github.com/storebook/storebook/infra/repository"
	"github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService wires the service to a migrated throwaway database.
// Store 1 exists from the seed.
func newTestService(t *testing.T) (*Service, *infrarepo.UoW) {
	t.Helper()
	db, err := infra.NewDBConnection(config.DBConfig{
		Path: filepath.Join(t.TempDir(), "storebook.db"),
	}, "test")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.Run(db, logger))
	uow := infrarepo.NewUoW(db)
	return New(uow, logger), uow
}

func insertEntry(t *testing.T, uow *infrarepo.UoW, kind ledger.Kind, storeID uint, create dto.EntryCreate) {
	t.Helper()
	_, err := uow.Entries().Insert(context.Background(), kind, storeID, create)
	require.NoError(t, err)
}

func TestProfitLoss(t *testing.T) {
	svc, uow := newTestService(t)
	ctx := context.Background()

	insertEntry(t, uow, ledger.KindCapital, 1, dto.EntryCreate{Date: "2024-01-01", Amount: 1000, Description: "Opening"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-01-02", Amount: 100, Description: "Sales"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-01-03", Amount: 200, Description: "Sales"})
	insertEntry(t, uow, ledger.KindExpense, 1, dto.EntryCreate{Date: "2024-01-04", Amount: 50, Category: "Rent"})
	insertEntry(t, uow, ledger.KindAsset, 1, dto.EntryCreate{Date: "2024-01-05", Amount: 900, Name: "Printer"})

	r, err := svc.ProfitLoss(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, r.TotalCapital)
	assert.Equal(t, 300.0, r.TotalIncome)
	assert.Equal(t, 50.0, r.TotalExpenses)
	assert.Equal(t, 0.0, r.TotalLiabilities)
	assert.Equal(t, 900.0, r.TotalAssets)
	assert.Equal(t, 250.0, r.Net)
	assert.Equal(t, ledger.Profit, r.Classification)
}

func TestProfitLoss_EmptyStoreBreaksEven(t *testing.T) {
	svc, _ := newTestService(t)

	r, err := svc.ProfitLoss(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Net)
	assert.Equal(t, ledger.BreakEven, r.Classification)
}

func TestProfitLoss_Loss(t *testing.T) {
	svc, uow := newTestService(t)

	insertEntry(t, uow, ledger.KindExpense, 1, dto.EntryCreate{Date: "2024-01-01", Amount: 80, Category: "Rent"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-01-02", Amount: 30, Description: "Sales"})

	r, err := svc.ProfitLoss(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, -50.0, r.Net)
	assert.Equal(t, ledger.Loss, r.Classification)
}

func TestMonthlySeries(t *testing.T) {
	svc, uow := newTestService(t)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2023-12-31", Amount: 1, Description: "before window"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-01-15", Amount: 10, Description: "jan"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-02-01", Amount: 20, Description: "feb start"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-02-29", Amount: 30, Description: "feb end"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-03-15", Amount: 40, Description: "mar"})

	series, err := svc.MonthlySeries(context.Background(), 1, ledger.KindIncome, 3)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, ledger.MonthTotal{Month: "2024-01", Total: 10}, series[0])
	assert.Equal(t, ledger.MonthTotal{Month: "2024-02", Total: 50}, series[1])
	assert.Equal(t, ledger.MonthTotal{Month: "2024-03", Total: 40}, series[2])
}

func TestMonthlySeries_YearBoundary(t *testing.T) {
	svc, uow := newTestService(t)
	svc.now = func() time.Time {
		return time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	}

	insertEntry(t, uow, ledger.KindExpense, 1, dto.EntryCreate{Date: "2023-12-05", Amount: 7, Category: "Rent"})

	series, err := svc.MonthlySeries(context.Background(), 1, ledger.KindExpense, 2)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, ledger.MonthTotal{Month: "2023-12", Total: 7}, series[0])
	assert.Equal(t, ledger.MonthTotal{Month: "2024-01", Total: 0}, series[1])
}

func TestMonthlySeries_NoMonths(t *testing.T) {
	svc, _ := newTestService(t)
	series, err := svc.MonthlySeries(context.Background(), 1, ledger.KindIncome, 0)
	require.NoError(t, err)
	assert.Nil(t, series)
}

func TestGroupSum_DropsNonPositiveGroups(t *testing.T) {
	svc, uow := newTestService(t)

	insertEntry(t, uow, ledger.KindExpense, 1, dto.EntryCreate{Date: "2024-01-01", Amount: 30, Category: "Rent"})
	insertEntry(t, uow, ledger.KindExpense, 1, dto.EntryCreate{Date: "2024-01-02", Amount: 0, Category: "Samples"})

	groups, err := svc.GroupSum(context.Background(), ledger.KindExpense, ledger.OneStore(1))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, ledger.CategoryTotal{Category: "Rent", Total: 30}, groups[0])
}

func TestRecentEntries(t *testing.T) {
	svc, uow := newTestService(t)

	insertEntry(t, uow, ledger.KindCapital, 1, dto.EntryCreate{Date: "2024-05-01", Amount: 100, Description: "Opening"})
	insertEntry(t, uow, ledger.KindIncome, 1, dto.EntryCreate{Date: "2024-05-03", Amount: 20, Description: "Sales"})
	insertEntry(t, uow, ledger.KindExpense, 1, dto.EntryCreate{Date: "2024-05-02", Amount: 5, Category: "Coffee"})

	rows, err := svc.RecentEntries(context.Background(), ledger.OneStore(1), 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Income", rows[0].Kind)
	assert.Equal(t, "Expenses", rows[1].Kind)
}
