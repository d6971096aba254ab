// Package excel renders the contracts register as an XLSX workbook.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/handyzentrum/shopdocs/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

var columns = []string{
	"ID", "Contract Code",
	"Seller First Name", "Seller Last Name", "Seller Street", "Seller PLZ / Ort",
	"Seller Phone", "Seller Email", "Seller ID No",
	"Buyer First Name", "Buyer Last Name", "Buyer Street", "Buyer PLZ / Ort",
	"Buyer Phone", "Buyer Email", "Buyer ID No",
	"Manufacturer", "Model", "Serial Number", "Features", "Condition", "Accessories",
	"Price (EUR)", "Price (Words)", "Delivery Date", "Terms", "Created At",
}

// Generate builds a single-sheet workbook with one row per register entry.
func (g *Generator) Generate(records []model.ContractRecord, exportedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Contracts"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contracts Register")
	set("A2", "Exported")
	set("B2", exportedAt.Format("2006-01-02 15:04"))
	set("A3", "Entries")
	set("B3", len(records))

	headerRow := 5
	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		set(cell, column)
	}

	for i, record := range records {
		row := headerRow + 1 + i
		values := []interface{}{
			record.ID, record.ContractCode,
			record.SellerFirstName, record.SellerLastName, record.SellerStreet, record.SellerPostal,
			record.SellerPhone, record.SellerEmail, record.SellerIDNumber,
			record.BuyerFirstName, record.BuyerLastName, record.BuyerStreet, record.BuyerPostal,
			record.BuyerPhone, record.BuyerEmail, record.BuyerIDNumber,
			record.Manufacturer, record.DeviceModel, record.SerialNumber,
			record.Features, record.Condition, record.Accessories,
			record.Price, record.PriceInWords, record.DeliveryDate,
			record.Terms, record.CreatedAt,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 6)
	_ = file.SetColWidth(sheet, "B", "B", 24)
	_ = file.SetColWidth(sheet, "C", "Z", 18)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
