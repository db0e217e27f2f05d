// Package export renders the shopping list and the pantry freshness report as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/usecase"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the produced workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names
const (
	ShoppingSheet = "Shopping list"
	PantrySheet   = "Pantry"
)

var (
	shoppingHeader = []interface{}{"ingredient_id", "ingredient", "quantity", "unit", "done"}
	pantryHeader   = []interface{}{"ingredient_id", "ingredient", "quantity", "unit", "expires_at", "status", "days"}
)

// ShoppingList renders the shopping list, pending items first in their original order.
func ShoppingList(items []domain.ShoppingListItem) ([]byte, error) {
	ordered := make([]domain.ShoppingListItem, 0, len(items))
	for _, it := range items {
		if !it.IsDone {
			ordered = append(ordered, it)
		}
	}
	for _, it := range items {
		if it.IsDone {
			ordered = append(ordered, it)
		}
	}

	rows := make([][]interface{}, 0, len(ordered))
	for _, it := range ordered {
		done := "no"
		if it.IsDone {
			done = "yes"
		}
		rows = append(rows, []interface{}{it.IngredientID, it.IngredientName, it.Quantity, it.Unit, done})
	}
	return render(ShoppingSheet, shoppingHeader, rows)
}

// PantryReport renders the pantry with each item's freshness against today.
func PantryReport(items []domain.PantryItem, today time.Time) ([]byte, error) {
	views := usecase.AnnotatePantry(items, today)

	rows := make([][]interface{}, 0, len(views))
	for _, v := range views {
		expires := ""
		if v.ExpiresAt != nil {
			expires = v.ExpiresAt.In(today.Location()).Format(domain.DateLayout)
		}
		rows = append(rows, []interface{}{
			v.IngredientID,
			v.IngredientName,
			v.Quantity,
			v.Unit,
			expires,
			string(v.Freshness.Status),
			v.Freshness.Days,
		})
	}
	return render(PantrySheet, pantryHeader, rows)
}

func render(sheetName string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
