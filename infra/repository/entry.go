package repository

import (
	"context"
	"strings"

	"github.com/storebook/storebook/pkg/domain"
	"github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	repo "github.com/storebook/storebook/pkg/repository"
	"gorm.io/gorm"
)

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates the ledger entry repository using the
// provided *gorm.DB.
func NewEntryRepository(db *gorm.DB) repo.EntryRepository {
	return &entryRepository{db: db}
}

// readColumns maps each kind to its fixed select list. Name and amount
// columns are aliased so every kind scans into the same read DTO.
func readColumns(kind ledger.Kind) string {
	switch kind {
	case ledger.KindCapital:
		return "id, date, amount, description, store_id"
	case ledger.KindIncome:
		return "id, date, amount, category, description, store_id"
	case ledger.KindExpense:
		return "id, date, amount, category, store_id"
	case ledger.KindAsset:
		return "id, date, asset_name AS name, value AS amount, category, description, store_id"
	case ledger.KindLiability:
		return "id, date, liability_name AS name, amount, category, description, store_id"
	}
	return ""
}

// Insert implements repository.EntryRepository.
func (r *entryRepository) Insert(
	ctx context.Context,
	kind ledger.Kind,
	storeID uint,
	create dto.EntryCreate,
) (uint, error) {
	sid := storeID
	var row any
	var id *uint
	switch kind {
	case ledger.KindCapital:
		m := &Capital{Date: create.Date, Amount: create.Amount, Description: create.Description, StoreID: &sid}
		row, id = m, &m.ID
	case ledger.KindIncome:
		m := &Income{Date: create.Date, Amount: create.Amount, Category: create.Category, Description: create.Description, StoreID: &sid}
		row, id = m, &m.ID
	case ledger.KindExpense:
		m := &Expense{Date: create.Date, Amount: create.Amount, Category: create.Category, StoreID: &sid}
		row, id = m, &m.ID
	case ledger.KindAsset:
		m := &Asset{Date: create.Date, AssetName: create.Name, Value: create.Amount, Category: create.Category, Description: create.Description, StoreID: &sid}
		row, id = m, &m.ID
	case ledger.KindLiability:
		m := &Liability{Date: create.Date, LiabilityName: create.Name, Amount: create.Amount, Category: create.Category, Description: create.Description, StoreID: &sid}
		row, id = m, &m.ID
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return 0, MapGormErrorToDomain("insert "+kind.Table(), err)
	}
	return *id, nil
}

// List implements repository.EntryRepository. Rows match the store
// exactly; a non-empty searchText additionally filters on the kind's
// designated text columns (substring, OR-combined, never the date).
// Ordering is insertion order.
func (r *entryRepository) List(
	ctx context.Context,
	kind ledger.Kind,
	storeID uint,
	searchText string,
) ([]dto.EntryRead, error) {
	q := r.db.WithContext(ctx).
		Table(kind.Table()).
		Select(readColumns(kind)).
		Where("store_id = ?", storeID)
	if searchText != "" {
		cols := kind.SearchColumns()
		conds := make([]string, 0, len(cols))
		args := make([]any, 0, len(cols))
		for _, col := range cols {
			conds = append(conds, col+" LIKE ?")
			args = append(args, "%"+searchText+"%")
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	var rows []dto.EntryRead
	if err := q.Order("id").Scan(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain("list "+kind.Table(), err)
	}
	return rows, nil
}

// Update implements repository.EntryRepository. The id AND store_id
// match is the tenant-isolation invariant: a record id valid in another
// store is never editable, and that case is indistinguishable from an
// unknown id.
func (r *entryRepository) Update(
	ctx context.Context,
	kind ledger.Kind,
	storeID, recordID uint,
	update dto.EntryUpdate,
) error {
	updates := make(map[string]any)
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.Amount != nil {
		updates[kind.AmountColumn()] = *update.Amount
	}
	if update.Name != nil && kind.NameColumn() != "" {
		updates[kind.NameColumn()] = *update.Name
	}
	if update.Category != nil && kind.HasCategory() {
		updates["category"] = *update.Category
	}
	if update.Description != nil && kind.HasDescription() {
		updates["description"] = *update.Description
	}
	if len(updates) == 0 {
		return domain.ValidationError("nothing to update")
	}
	res := r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("id = ? AND store_id = ?", recordID, storeID).
		Updates(updates)
	if res.Error != nil {
		return MapGormErrorToDomain("update "+kind.Table(), res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements repository.EntryRepository with the same matching
// rule and NotFound semantics as Update.
func (r *entryRepository) Delete(
	ctx context.Context,
	kind ledger.Kind,
	storeID, recordID uint,
) error {
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM "+kind.Table()+" WHERE id = ? AND store_id = ?", recordID, storeID)
	if res.Error != nil {
		return MapGormErrorToDomain("delete "+kind.Table(), res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Sum implements repository.EntryRepository. No matching rows sum to 0,
// never null.
func (r *entryRepository) Sum(
	ctx context.Context,
	kind ledger.Kind,
	scope ledger.Scope,
) (float64, error) {
	if scope.Empty() {
		return 0, nil
	}
	var total float64
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Select("COALESCE(SUM("+kind.AmountColumn()+"), 0)").
		Where("store_id IN ?", scope.StoreIDs()).
		Scan(&total).Error
	if err != nil {
		return 0, MapGormErrorToDomain("sum "+kind.Table(), err)
	}
	return total, nil
}

// GroupSum implements repository.EntryRepository, totaling the kind's
// monetary column per category.
func (r *entryRepository) GroupSum(
	ctx context.Context,
	kind ledger.Kind,
	scope ledger.Scope,
) ([]ledger.CategoryTotal, error) {
	if !kind.HasCategory() {
		return nil, domain.ValidationError("%s records have no category", kind)
	}
	if scope.Empty() {
		return nil, nil
	}
	var rows []ledger.CategoryTotal
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Select("category, COALESCE(SUM("+kind.AmountColumn()+"), 0) AS total").
		Where("store_id IN ?", scope.StoreIDs()).
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain("group sum "+kind.Table(), err)
	}
	return rows, nil
}

// SumDateRange implements repository.EntryRepository for one store and
// the half-open date window [from, to). ISO dates compare as strings.
func (r *entryRepository) SumDateRange(
	ctx context.Context,
	kind ledger.Kind,
	storeID uint,
	from, to string,
) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Select("COALESCE(SUM("+kind.AmountColumn()+"), 0)").
		Where("store_id = ? AND date >= ? AND date < ?", storeID, from, to).
		Scan(&total).Error
	if err != nil {
		return 0, MapGormErrorToDomain("sum "+kind.Table(), err)
	}
	return total, nil
}

const recentEntriesSQL = `
SELECT 'Income' AS kind, date, amount, description AS detail FROM income WHERE store_id IN ?
UNION ALL
SELECT 'Expenses' AS kind, date, amount, category AS detail FROM expenses WHERE store_id IN ?
UNION ALL
SELECT 'Capital' AS kind, date, amount, description AS detail FROM capital WHERE store_id IN ?
UNION ALL
SELECT 'Assets' AS kind, date, value AS amount, asset_name AS detail FROM assets WHERE store_id IN ?
UNION ALL
SELECT 'Liabilities' AS kind, date, amount, liability_name AS detail FROM liabilities WHERE store_id IN ?
ORDER BY date DESC
LIMIT ?`

// Recent implements repository.EntryRepository: the most recent rows
// across all five kinds combined, newest date first.
func (r *entryRepository) Recent(
	ctx context.Context,
	scope ledger.Scope,
	limit int,
) ([]dto.RecentEntry, error) {
	if scope.Empty() || limit <= 0 {
		return nil, nil
	}
	ids := scope.StoreIDs()
	var rows []dto.RecentEntry
	err := r.db.WithContext(ctx).
		Raw(recentEntriesSQL, ids, ids, ids, ids, ids, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain("recent entries", err)
	}
	return rows, nil
}
