package registry

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/storebook/storebook/config"
	"github.com/storebook/storebook/infra"
	"github.com/storebook/storebook/infra/migration"
	infrarepo "github.com/storebook/storebook/infra/repository"
	"github.com/storebook/storebook/pkg/domain"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := infra.NewDBConnection(config.DBConfig{
		Path: filepath.Join(t.TempDir(), "storebook.db"),
	}, "test")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.Run(db, logger))
	return New(infrarepo.NewUoW(db), logger), db
}

func TestCreateStore_RequiresAllDetails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, 1, dto.StoreCreate{
		Username: "admin", StoreName: "Shop", StoreType: "Retail",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// nothing may be written when validation fails
	stores, err := svc.ListStores(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stores, 1) // only the seeded store
}

func TestCreateStore_WritesStoreAndAudit(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateStore(ctx, 1, dto.StoreCreate{
		Username: "admin", StoreName: "Corner Shop", StoreType: "Retail", OwnerName: "Ada",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	stores, err := svc.ListStores(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Corner Shop", stores[1].StoreName)

	var details infrarepo.StoreDetails
	require.NoError(t, db.First(&details, "storename = ?", "Corner Shop").Error)
	assert.Equal(t, "Retail", details.StoreType)
	assert.Equal(t, "Ada", details.OwnerName)
}

func TestResolveActiveStore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	second, err := svc.CreateStore(ctx, 1, dto.StoreCreate{
		Username: "admin", StoreName: "Branch", StoreType: "Retail", OwnerName: "Ada",
	})
	require.NoError(t, err)

	// preferred store owned by the user wins
	id, err := svc.ResolveActiveStore(ctx, 1, second)
	require.NoError(t, err)
	assert.Equal(t, second, id)

	// stale or foreign preference falls back to the first store
	id, err = svc.ResolveActiveStore(ctx, 1, 9999)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	id, err = svc.ResolveActiveStore(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	// a user without stores cannot resolve one
	_, err = svc.ResolveActiveStore(ctx, 42, 0)
	assert.ErrorIs(t, err, domain.ErrNoStore)
}

func TestUserScope(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	second, err := svc.CreateStore(ctx, 1, dto.StoreCreate{
		Username: "admin", StoreName: "Branch", StoreType: "Retail", OwnerName: "Ada",
	})
	require.NoError(t, err)

	scope, err := svc.UserScope(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, second}, scope.StoreIDs())

	scope, err = svc.UserScope(ctx, 42)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
}
