package migration

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/storebook/storebook/config"
	"github.com/storebook/storebook/infra"
	infrarepo "github.com/storebook/storebook/infra/repository"
	"github.com/storebook/storebook/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDBConnection(config.DBConfig{
		Path: filepath.Join(t.TempDir(), "storebook.db"),
	}, "test")
	require.NoError(t, err)
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Run(db, testLogger()))

	for _, model := range []any{
		&infrarepo.User{}, &infrarepo.Store{}, &infrarepo.StoreDetails{},
		&infrarepo.Capital{}, &infrarepo.Income{}, &infrarepo.Expense{},
		&infrarepo.Asset{}, &infrarepo.Liability{},
	} {
		assert.True(t, db.Migrator().HasTable(model))
	}

	var admin infrarepo.User
	require.NoError(t, db.First(&admin, "username = ?", DefaultUsername).Error)
	assert.True(t, utils.CheckPasswordHash(DefaultPassword, admin.Password))
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.Equal(t, "1990-01-01", admin.BirthDate)

	var store infrarepo.Store
	require.NoError(t, db.First(&store, "user_id = ?", admin.ID).Error)
	assert.Equal(t, "Test Store", store.StoreName)
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Run(db, testLogger()))
	require.NoError(t, Run(db, testLogger()))

	var users, stores int64
	require.NoError(t, db.Model(&infrarepo.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&infrarepo.Store{}).Count(&stores).Error)
	assert.Equal(t, int64(1), users, "seed must not run twice")
	assert.Equal(t, int64(1), stores)
}

// A database created before store scoping and the late text columns
// must come out of Run with the full schema, its rows intact and
// adopted by the first store.
func TestRun_LegacySchema(t *testing.T) {
	db := openTestDB(t)

	stmts := []string{
		`CREATE TABLE users (id integer primary key autoincrement,
			username text not null unique, password text not null, email text)`,
		`CREATE TABLE stores (id integer primary key autoincrement,
			user_id integer not null, store_name text)`,
		`CREATE TABLE capital (id integer primary key autoincrement,
			date text not null, amount real)`,
		`CREATE TABLE assets (id integer primary key autoincrement,
			date text not null, asset_name text not null, value real)`,
		`INSERT INTO users (username, password, email) VALUES ('olduser', 'hash', 'old@example.com')`,
		`INSERT INTO stores (user_id, store_name) VALUES (1, 'Legacy Store')`,
		`INSERT INTO capital (date, amount) VALUES ('2020-05-01', 1500)`,
		`INSERT INTO assets (date, asset_name, value) VALUES ('2020-06-01', 'Van', 8000)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}

	require.NoError(t, Run(db, testLogger()))

	assert.True(t, db.Migrator().HasColumn(&infrarepo.User{}, "birth_date"))
	assert.True(t, db.Migrator().HasColumn(&infrarepo.Capital{}, "description"))
	assert.True(t, db.Migrator().HasColumn(&infrarepo.Capital{}, "store_id"))
	assert.True(t, db.Migrator().HasColumn(&infrarepo.Asset{}, "category"))
	assert.True(t, db.Migrator().HasColumn(&infrarepo.Asset{}, "description"))
	assert.True(t, db.Migrator().HasColumn(&infrarepo.Asset{}, "store_id"))

	var capital infrarepo.Capital
	require.NoError(t, db.First(&capital).Error)
	assert.Equal(t, 1500.0, capital.Amount)
	require.NotNil(t, capital.StoreID, "legacy row must be backfilled")
	assert.Equal(t, uint(1), *capital.StoreID)

	var asset infrarepo.Asset
	require.NoError(t, db.First(&asset).Error)
	require.NotNil(t, asset.StoreID)
	assert.Equal(t, uint(1), *asset.StoreID)

	// an existing user suppresses the seed
	var users int64
	require.NoError(t, db.Model(&infrarepo.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestRun_BackfillWithoutStoresIsNoop(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE capital (id integer primary key autoincrement,
		date text not null, amount real)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO capital (date, amount) VALUES ('2020-01-01', 10)`).Error)

	// seeding creates a store afterwards, so the orphan row ends up
	// owned by it on the next run
	require.NoError(t, Run(db, testLogger()))
	require.NoError(t, Run(db, testLogger()))

	var capital infrarepo.Capital
	require.NoError(t, db.First(&capital).Error)
	require.NotNil(t, capital.StoreID)
}
