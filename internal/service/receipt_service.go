package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/handyzentrum/shopdocs/internal/billing"
	"github.com/handyzentrum/shopdocs/internal/model"
	"github.com/handyzentrum/shopdocs/internal/numbering"
	"github.com/handyzentrum/shopdocs/internal/pdf"
)

// LineItemInput is one submitted receipt position.
type LineItemInput struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxIncluded bool   `json:"tax_included"`
}

// CreateReceiptInput is one submitted receipt form. The item list is the
// final state of the operator's edits; removal by position happens client
// side before submission.
type CreateReceiptInput struct {
	CustomerName string          `json:"customer_name"`
	Items        []LineItemInput `json:"items"`
}

// TaxTotal is one row of the receipt's tax breakdown, rounded for display.
type TaxTotal struct {
	Rate   int    `json:"rate"`
	Netto  string `json:"netto"`
	Tax    string `json:"tax"`
	Brutto string `json:"brutto"`
}

// CreateReceiptResult reports the generated receipt back to the caller.
type CreateReceiptResult struct {
	Number     string     `json:"number"`
	FilePath   string     `json:"file_path"`
	GrandTotal string     `json:"grand_total"`
	Totals     []TaxTotal `json:"totals"`
}

// ReceiptService runs the receipt form flow: validation, aggregation,
// numbering, rendering and file output.
type ReceiptService struct {
	allocator *numbering.Allocator
	renderer  *pdf.Generator
	dataDir   string
	now       func() time.Time
	log       zerolog.Logger
}

func NewReceiptService(
	allocator *numbering.Allocator,
	renderer *pdf.Generator,
	dataDir string,
	log zerolog.Logger,
) *ReceiptService {
	return &ReceiptService{
		allocator: allocator,
		renderer:  renderer,
		dataDir:   dataDir,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *ReceiptService) WithClock(now func() time.Time) *ReceiptService {
	s.now = now
	return s
}

// Create validates the form, aggregates the items into tax buckets, numbers
// the receipt and writes receipt_{customer}_{number}.pdf under the data
// directory. An empty item list is rejected before any side effect.
func (s *ReceiptService) Create(ctx context.Context, input CreateReceiptInput) (*CreateReceiptResult, error) {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	items := make([]model.LineItem, 0, len(input.Items))
	for i, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			return nil, fmt.Errorf("%w: item %d has no description", ErrInvalidInput, i+1)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidInput, i+1)
		}
		unitPrice, err := parsePrice(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, model.LineItem{
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			TaxIncluded: item.TaxIncluded,
		})
	}

	aggregate := billing.Aggregate(items)
	receipt := model.Receipt{
		Number:       s.allocator.NextReceiptNumber(s.now()),
		CustomerName: customer,
		Items:        items,
		CreatedAt:    s.now(),
	}

	content, err := s.renderer.RenderReceipt(receipt, aggregate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrStorage, err)
	}
	filePath := filepath.Join(s.dataDir, fmt.Sprintf("receipt_%s_%s.pdf", customer, receipt.Number))
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", ErrStorage, filePath, err)
	}

	totals := make([]TaxTotal, 0, len(aggregate.Buckets))
	for _, bucket := range aggregate.Buckets {
		totals = append(totals, TaxTotal{
			Rate:   bucket.Rate,
			Netto:  bucket.Netto.StringFixed(2),
			Tax:    bucket.Tax.StringFixed(2),
			Brutto: bucket.Brutto().StringFixed(2),
		})
	}

	s.log.Info().
		Str("number", receipt.Number).
		Str("path", filePath).
		Msg("receipt generated")

	return &CreateReceiptResult{
		Number:     receipt.Number,
		FilePath:   filePath,
		GrandTotal: aggregate.GrandTotal.StringFixed(2),
		Totals:     totals,
	}, nil
}
