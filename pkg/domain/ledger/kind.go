// Package ledger defines the five ledger record kinds and the common
// record shape they share. The kind is a closed set: each value maps to
// a fixed, statically-known table and column layout, so no identifier
// is ever interpolated from user input.
package ledger

import "fmt"

// Kind selects one of the five ledger tables.
type Kind string

const (
	KindCapital   Kind = "capital"
	KindIncome    Kind = "income"
	KindExpense   Kind = "expenses"
	KindAsset     Kind = "assets"
	KindLiability Kind = "liabilities"
)

// Kinds lists all ledger kinds in the order the original schema
// enumerates them.
func Kinds() []Kind {
	return []Kind{KindCapital, KindIncome, KindExpense, KindAsset, KindLiability}
}

// ParseKind converts a user-supplied kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCapital, KindIncome, KindExpense, KindAsset, KindLiability:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown ledger kind %q", s)
}

// Table returns the table backing the kind.
func (k Kind) Table() string { return string(k) }

// AmountColumn returns the column holding the monetary value. Assets
// store it as "value", the rest as "amount".
func (k Kind) AmountColumn() string {
	if k == KindAsset {
		return "value"
	}
	return "amount"
}

// NameColumn returns the column holding the record name, or "" for
// kinds without one.
func (k Kind) NameColumn() string {
	switch k {
	case KindAsset:
		return "asset_name"
	case KindLiability:
		return "liability_name"
	}
	return ""
}

// HasCategory reports whether the kind carries a category column.
func (k Kind) HasCategory() bool { return k != KindCapital }

// HasDescription reports whether the kind carries a description column.
func (k Kind) HasDescription() bool {
	return k == KindCapital || k == KindIncome || k == KindAsset || k == KindLiability
}

// SearchColumns returns the free-text columns a search filter applies
// to. The date is never searched.
func (k Kind) SearchColumns() []string {
	switch k {
	case KindExpense:
		return []string{"category"}
	case KindAsset:
		return []string{"asset_name", "category"}
	case KindLiability:
		return []string{"liability_name", "category"}
	default: // capital, income
		return []string{"description"}
	}
}

// RequiresName reports whether inserts of this kind must carry a name.
func (k Kind) RequiresName() bool {
	return k == KindAsset || k == KindLiability
}

// Title returns the display/section name used by reports and exports.
func (k Kind) Title() string {
	switch k {
	case KindCapital:
		return "Capital"
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expenses"
	case KindAsset:
		return "Assets"
	case KindLiability:
		return "Liabilities"
	}
	return string(k)
}
