// Package migration guarantees the full target schema on every start
// without destroying existing data. It replaces the ad-hoc scripts the
// schema historically accumulated with one ordered, idempotent list
// executed unconditionally before any CRUD runs: table creation first,
// then late-added columns, then backfills, then seeding.
package migration

import (
	"errors"
	"fmt"
	"log/slog"

	infrarepo "github.com/storebook/storebook/infra/repository"
	"github.com/storebook/storebook/pkg/utils"
	"gorm.io/gorm"
)

type migration struct {
	name string
	run  func(db *gorm.DB) error
}

// migrations is the ordered list. Column additions must follow table
// creation and precede backfills; CRUD statements reference columns
// that may not exist on a pre-migration database.
var migrations = []migration{
	{"create core tables", createCoreTables},
	{"create ledger tables", createLedgerTables},
	{"add users.birth_date", ensureColumn(&infrarepo.User{}, "birth_date")},
	{"add category columns", addCategoryColumns},
	{"add description columns", addDescriptionColumns},
	{"add store_id columns", addStoreIDColumns},
	{"backfill store_id on legacy rows", backfillStoreID},
	{"seed default user and store", seedDefaults},
}

// Run executes the migration list in order. Each step is safe to call
// repeatedly; running the list N times produces the same schema as
// running it once.
func Run(db *gorm.DB, logger *slog.Logger) error {
	for _, m := range migrations {
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %q: %w", m.name, err)
		}
		logger.Debug("migration applied", "name", m.name)
	}
	logger.Info("schema up to date", "migrations", len(migrations))
	return nil
}

func createCoreTables(db *gorm.DB) error {
	return createTables(db, &infrarepo.User{}, &infrarepo.Store{}, &infrarepo.StoreDetails{})
}

func createLedgerTables(db *gorm.DB) error {
	return createTables(db,
		&infrarepo.Capital{},
		&infrarepo.Income{},
		&infrarepo.Expense{},
		&infrarepo.Asset{},
		&infrarepo.Liability{},
	)
}

// createTables creates each table only when absent, so legacy tables
// keep their data and their (possibly incomplete) column set.
func createTables(db *gorm.DB, models ...any) error {
	for _, model := range models {
		if db.Migrator().HasTable(model) {
			continue
		}
		if err := db.Migrator().CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

// ensureColumn adds a nullable column when the live schema lacks it,
// detected by inspecting schema metadata rather than by trapping the
// "duplicate column" error.
func ensureColumn(model any, column string) func(db *gorm.DB) error {
	return func(db *gorm.DB) error {
		if db.Migrator().HasColumn(model, column) {
			return nil
		}
		return db.Migrator().AddColumn(model, column)
	}
}

func addCategoryColumns(db *gorm.DB) error {
	for _, step := range []func(*gorm.DB) error{
		ensureColumn(&infrarepo.Asset{}, "category"),
		ensureColumn(&infrarepo.Liability{}, "category"),
	} {
		if err := step(db); err != nil {
			return err
		}
	}
	return nil
}

func addDescriptionColumns(db *gorm.DB) error {
	for _, step := range []func(*gorm.DB) error{
		ensureColumn(&infrarepo.Capital{}, "description"),
		ensureColumn(&infrarepo.Income{}, "description"),
		ensureColumn(&infrarepo.Asset{}, "description"),
		ensureColumn(&infrarepo.Liability{}, "description"),
	} {
		if err := step(db); err != nil {
			return err
		}
	}
	return nil
}

func addStoreIDColumns(db *gorm.DB) error {
	for _, step := range []func(*gorm.DB) error{
		ensureColumn(&infrarepo.Capital{}, "store_id"),
		ensureColumn(&infrarepo.Income{}, "store_id"),
		ensureColumn(&infrarepo.Expense{}, "store_id"),
		ensureColumn(&infrarepo.Asset{}, "store_id"),
		ensureColumn(&infrarepo.Liability{}, "store_id"),
	} {
		if err := step(db); err != nil {
			return err
		}
	}
	return nil
}

// backfillStoreID assigns the first store to ledger rows that predate
// the store concept. When no store exists yet there is nothing to fix.
func backfillStoreID(db *gorm.DB) error {
	var firstStore infrarepo.Store
	err := db.Order("id").First(&firstStore).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, table := range []string{"capital", "income", "expenses", "assets", "liabilities"} {
		res := db.Table(table).
			Where("store_id IS NULL").
			Update("store_id", firstStore.ID)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

// Credentials of the account seeded on a pristine database.
const (
	DefaultUsername  = "admin"
	DefaultPassword  = "Pass12!@"
	defaultEmail     = "admin@example.com"
	defaultBirthDate = "1990-01-01"
	defaultStoreName = "Test Store"
)

// seedDefaults guarantees the application is usable on a pristine
// database: exactly one default user and store when the users table is
// empty.
func seedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&infrarepo.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := utils.HashPassword(DefaultPassword)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		admin := infrarepo.User{
			Username:  DefaultUsername,
			Password:  hash,
			Email:     defaultEmail,
			BirthDate: defaultBirthDate,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&infrarepo.Store{UserID: admin.ID, StoreName: defaultStoreName}).Error
	})
}
