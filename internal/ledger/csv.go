// Package ledger appends transaction records to the append-only contracts
// ledger file.
package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handyzentrum/shopdocs/internal/model"
)

// CSVLedger appends one row group per contract to a comma-delimited UTF-8
// file. Rows already written are never touched; the header/section block is
// written only when the file does not yet exist. Each logical record is
// assembled in memory and flushed with a single write so a killed process
// cannot interleave partial row groups.
type CSVLedger struct {
	path string
}

func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// Path returns the ledger file location.
func (l *CSVLedger) Path() string {
	return l.path
}

// Append writes the contract's row group to the ledger. I/O failures surface
// to the caller; nothing written before the failure is rolled back.
func (l *CSVLedger) Append(contract model.Contract) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	exists, err := l.exists()
	if err != nil {
		return err
	}
	if !exists {
		writeHeaderBlock(w)
	}

	writeRows(w, [][]string{
		{contract.Code},
		{},
		{
			contract.Seller.FirstName, contract.Seller.LastName,
			contract.Seller.Street, contract.Seller.PostalCity,
			contract.Seller.Phone, contract.Seller.Email, contract.Seller.IDNumber,
		},
		{},
		{
			contract.Buyer.FirstName, contract.Buyer.LastName,
			contract.Buyer.Street, contract.Buyer.PostalCity,
			contract.Buyer.Phone, contract.Buyer.Email, contract.Buyer.IDNumber,
		},
		{},
		{
			contract.Device.Manufacturer, contract.Device.Model,
			contract.Device.SerialNumber, contract.Device.Features,
			contract.Device.Condition, contract.Device.Accessories,
		},
		{},
		{
			contract.Price.Price.StringFixed(2),
			contract.Price.PriceInWords,
			contract.Price.DeliveryDate.Format("2006-01-02"),
			contract.Terms,
		},
		{},
	})
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode ledger record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append ledger record: %w", err)
	}
	return nil
}

func (l *CSVLedger) exists() (bool, error) {
	_, err := os.Stat(l.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat ledger: %w", err)
}

func writeHeaderBlock(w *csv.Writer) {
	writeRows(w, [][]string{
		{"Contract Summary"},
		{},
		{"Seller Information"},
		{"First Name", "Last Name", "Street + House No", "PLZ / Ort", "Phone", "Email", "ID No"},
		{},
		{"Buyer Information"},
		{"First Name", "Last Name", "Street + House No", "PLZ / Ort", "Phone", "Email", "ID No"},
		{},
		{"Device Information"},
		{"Manufacturer", "Model", "Serial Number", "Features", "Condition", "Accessories"},
		{},
		{"Price and Terms"},
		{"Price (EUR)", "Price (Words)", "Delivery Date", "Contract Terms"},
		{},
	})
}

func writeRows(w *csv.Writer, rows [][]string) {
	for _, row := range rows {
		if len(row) == 0 {
			row = []string{""}
		}
		_ = w.Write(row)
	}
}
