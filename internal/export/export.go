// Package export produces flat dumps of the contracts register.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/handyzentrum/shopdocs/internal/excel"
	"github.com/handyzentrum/shopdocs/internal/model"
	"github.com/handyzentrum/shopdocs/internal/repository"
)

// Exporter turns the register into portable files: a flat CSV dump, an XLSX
// workbook or a copy of the SQLite database.
type Exporter struct {
	repo  *repository.ContractRepository
	excel *excel.Generator
	now   func() time.Time
}

func NewExporter(repo *repository.ContractRepository, excelGen *excel.Generator) *Exporter {
	return &Exporter{repo: repo, excel: excelGen, now: time.Now}
}

// WithClock replaces the timestamp source used in export metadata.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

var csvColumns = []string{
	"id",
	"contract_code",
	"seller_first_name", "seller_last_name", "seller_street", "seller_postal",
	"seller_phone", "seller_email", "seller_id_number",
	"buyer_first_name", "buyer_last_name", "buyer_street", "buyer_postal",
	"buyer_phone", "buyer_email", "buyer_id_number",
	"manufacturer", "device_model", "serial_number", "features", "condition", "accessories",
	"price", "price_in_words", "delivery_date", "terms", "created_at",
}

// CSV dumps the register as one header row plus one row per contract.
func (e *Exporter) CSV(ctx context.Context) ([]byte, error) {
	records, err := e.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.Write(flatten(record)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode register dump: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX renders the register as a workbook.
func (e *Exporter) XLSX(ctx context.Context) ([]byte, error) {
	records, err := e.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return e.excel.Generate(records, e.now())
}

// SQLite copies every register row into a fresh database file at path.
func (e *Exporter) SQLite(ctx context.Context, path string) error {
	return e.repo.CopyTo(ctx, path)
}

func flatten(r model.ContractRecord) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.ContractCode,
		r.SellerFirstName, r.SellerLastName, r.SellerStreet, r.SellerPostal,
		r.SellerPhone, r.SellerEmail, r.SellerIDNumber,
		r.BuyerFirstName, r.BuyerLastName, r.BuyerStreet, r.BuyerPostal,
		r.BuyerPhone, r.BuyerEmail, r.BuyerIDNumber,
		r.Manufacturer, r.DeviceModel, r.SerialNumber, r.Features, r.Condition, r.Accessories,
		r.Price, r.PriceInWords, r.DeliveryDate, r.Terms, r.CreatedAt,
	}
}
