package ledger

import (
	"context"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/storebook/storebook/config"
	"github.com/storebook/storebook/infra"
	"github.com/storebook/storebook/infra/migration"
	infrarepo "github.com/storebook/storebook/infra/repository"
	"github.com/storebook/storebook/pkg/domain"
	domledger "github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService wires the service to a migrated throwaway database.
// Store 1 exists from the seed.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := infra.NewDBConnection(config.DBConfig{
		Path: filepath.Join(t.TempDir(), "storebook.db"),
	}, "test")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.Run(db, logger))
	return New(infrarepo.NewUoW(db), logger)
}

func TestInsert_RejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		kind   domledger.Kind
		create dto.EntryCreate
	}{
		{"missing date", domledger.KindIncome, dto.EntryCreate{Amount: 10}},
		{"non-iso date", domledger.KindIncome, dto.EntryCreate{Date: "31-01-2024", Amount: 10}},
		{"impossible date", domledger.KindIncome, dto.EntryCreate{Date: "2024-13-41", Amount: 10}},
		{"negative amount", domledger.KindIncome, dto.EntryCreate{Date: "2024-01-31", Amount: -0.01}},
		{"NaN amount", domledger.KindIncome, dto.EntryCreate{Date: "2024-01-31", Amount: math.NaN()}},
		{"infinite amount", domledger.KindIncome, dto.EntryCreate{Date: "2024-01-31", Amount: math.Inf(1)}},
		{"asset without name", domledger.KindAsset, dto.EntryCreate{Date: "2024-01-31", Amount: 10}},
		{"liability without name", domledger.KindLiability, dto.EntryCreate{Date: "2024-01-31", Amount: 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Insert(ctx, c.kind, 1, c.create)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// a validation failure must not write anything
	rows, err := svc.List(ctx, domledger.KindIncome, 1, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInsert_ZeroAmountIsValid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Insert(ctx, domledger.KindExpense, 1,
		dto.EntryCreate{Date: "2024-01-01", Amount: 0, Category: "Free sample"})
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestCRUDRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Insert(ctx, domledger.KindLiability, 1, dto.EntryCreate{
		Date: "2024-02-01", Amount: 500, Name: "Loan", Category: "Bank", Description: "Startup loan",
	})
	require.NoError(t, err)

	rows, err := svc.List(ctx, domledger.KindLiability, 1, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Loan", rows[0].Name)

	amount := 450.0
	require.NoError(t, svc.Update(ctx, domledger.KindLiability, 1, id, dto.EntryUpdate{Amount: &amount}))

	rows, err = svc.List(ctx, domledger.KindLiability, 1, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 450.0, rows[0].Amount)

	require.NoError(t, svc.Delete(ctx, domledger.KindLiability, 1, id))
	rows, err = svc.List(ctx, domledger.KindLiability, 1, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUpdate_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Insert(ctx, domledger.KindIncome, 1,
		dto.EntryCreate{Date: "2024-02-01", Amount: 10, Description: "x"})
	require.NoError(t, err)

	bad := "not-a-date"
	err = svc.Update(ctx, domledger.KindIncome, 1, id, dto.EntryUpdate{Date: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	negative := -5.0
	err = svc.Update(ctx, domledger.KindIncome, 1, id, dto.EntryUpdate{Amount: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.Update(ctx, domledger.KindIncome, 1, id, dto.EntryUpdate{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateDelete_UnknownID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	amount := 1.0
	err := svc.Update(ctx, domledger.KindCapital, 1, 12345, dto.EntryUpdate{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, domledger.KindCapital, 1, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
