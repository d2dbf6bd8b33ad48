// internal/adapters/file/spreadsheet.go
package file

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/warehouse/internal/core/domain"
)

// SheetName is the worksheet holding the product rows
const SheetName = "Inventory"

var sheetHeaders = []string{"Product", "Quantity", "Price", "Value"}

// EncodeXLSX renders inv as a spreadsheet with a bold header, one row per
// product sorted by name and a closing total row
func EncodeXLSX(inv domain.Inventory) ([]byte, error) {
	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to encode invalid inventory: %w", err)
	}

	file := xlsx.NewFile()

	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range sheetHeaders {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	total := decimal.Zero
	for _, entry := range inv.List() {
		value := entry.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		total = total.Add(value)

		row := sheet.AddRow()
		row.AddCell().SetString(entry.Name)
		row.AddCell().SetInt(entry.Quantity)
		row.AddCell().SetString(domain.FormatPrice(entry.Price))
		row.AddCell().SetFloat(value.InexactFloat64())
	}

	totalRow := sheet.AddRow()
	label := totalRow.AddCell()
	label.SetString("Total")
	label.GetStyle().Font.Bold = true
	totalRow.AddCell()
	totalRow.AddCell()
	totalRow.AddCell().SetFloat(total.InexactFloat64())

	sheet.SetColWidth(1, len(sheetHeaders), 15)

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("%w: failed to write spreadsheet: %w", domain.ErrIO, err)
	}

	return buffer.Bytes(), nil
}

// DecodeXLSX reads a spreadsheet in the EncodeXLSX layout from its first
// sheet. Product rows end at the first row whose Quantity and Price cells are
// both empty, which is the total row or a blank line. Product names are kept
// exactly as written. A product listed twice is merged the way Receive merges
// stock.
func DecodeXLSX(data []byte) (domain.Inventory, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open spreadsheet: %v", domain.ErrCorrupt, err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets found in spreadsheet", domain.ErrCorrupt)
	}

	inv := domain.NewInventory()
	sheet := file.Sheets[0]
	rowIdx := 0
	done := false

	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		// Skip header
		if rowIdx == 1 || done {
			return nil
		}

		raw := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return c.String()
		}

		quantityText := strings.TrimSpace(raw(1))
		priceText := strings.TrimSpace(raw(2))
		if quantityText == "" && priceText == "" {
			done = true
			return nil
		}

		quantity, err := domain.ParseQuantity(quantityText)
		if err != nil {
			return fmt.Errorf("row %d: %v", rowIdx, err)
		}
		price, err := domain.ParsePrice(priceText)
		if err != nil {
			return fmt.Errorf("row %d: %v", rowIdx, err)
		}

		if err := inv.Receive(raw(0), quantity, price); err != nil {
			return fmt.Errorf("row %d: %v", rowIdx, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	return inv, nil
}
