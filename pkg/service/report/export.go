package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/storebook/storebook/pkg/repository"
)

// exportOrder fixes the section sequence of the report file.
var exportOrder = []ledger.Kind{
	ledger.KindCapital,
	ledger.KindIncome,
	ledger.KindExpense,
	ledger.KindLiability,
	ledger.KindAsset,
}

func exportHeader(kind ledger.Kind) []string {
	switch kind {
	case ledger.KindExpense:
		return []string{"Date", "Amount", "Category"}
	case ledger.KindAsset:
		return []string{"Date", "Value", "Description"}
	default:
		return []string{"Date", "Amount", "Description"}
	}
}

func exportRow(kind ledger.Kind, e dto.EntryRead) []string {
	amount := strconv.FormatFloat(e.Amount, 'g', -1, 64)
	switch kind {
	case ledger.KindExpense:
		return []string{e.Date, amount, e.Category}
	default:
		return []string{e.Date, amount, e.Description}
	}
}

// ExportCSV writes the store's profit/loss report: one section per
// ledger kind in fixed order, each a title row, a header row and the
// data rows in insertion order, with one blank line between sections.
// Two exports without intervening writes are byte-identical.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, storeID uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		for i, kind := range exportOrder {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			rows, err := uow.Entries().List(ctx, kind, storeID, "")
			if err != nil {
				return err
			}
			cw := csv.NewWriter(w)
			if err := cw.Write([]string{kind.Title()}); err != nil {
				return err
			}
			if err := cw.Write(exportHeader(kind)); err != nil {
				return err
			}
			for _, row := range rows {
				if err := cw.Write(exportRow(kind, row)); err != nil {
					return err
				}
			}
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
		}
		return nil
	})
}
