// Package service orchestrates contract and receipt generation: validation,
// numbering, rendering, file output and ledger/register persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/handyzentrum/shopdocs/internal/export"
	"github.com/handyzentrum/shopdocs/internal/ledger"
	"github.com/handyzentrum/shopdocs/internal/model"
	"github.com/handyzentrum/shopdocs/internal/numbering"
	"github.com/handyzentrum/shopdocs/internal/pdf"
	"github.com/handyzentrum/shopdocs/internal/repository"
	"github.com/handyzentrum/shopdocs/internal/words"
)

// CreateContractInput is one submitted contract form.
type CreateContractInput struct {
	Seller       PartyInput  `json:"seller"`
	Buyer        PartyInput  `json:"buyer"`
	Device       DeviceInput `json:"device"`
	Terms        string      `json:"terms"`
	Price        string      `json:"price"`
	DeliveryDate string      `json:"delivery_date"`
}

// CreateContractResult reports the generated document back to the caller.
type CreateContractResult struct {
	Code     string `json:"code"`
	FilePath string `json:"file_path"`
	RecordID int64  `json:"record_id"`
}

// ContractService runs the contract form flow end to end. Steps execute in a
// fixed order and any failure aborts the remainder; an already-allocated
// contract number stays consumed.
type ContractService struct {
	allocator    *numbering.Allocator
	renderer     *pdf.Generator
	ledger       *ledger.CSVLedger
	repo         *repository.ContractRepository
	exporter     *export.Exporter
	contractsDir string
	now          func() time.Time
	log          zerolog.Logger
}

func NewContractService(
	allocator *numbering.Allocator,
	renderer *pdf.Generator,
	csvLedger *ledger.CSVLedger,
	repo *repository.ContractRepository,
	exporter *export.Exporter,
	contractsDir string,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		allocator:    allocator,
		renderer:     renderer,
		ledger:       csvLedger,
		repo:         repo,
		exporter:     exporter,
		contractsDir: contractsDir,
		now:          time.Now,
		log:          log,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *ContractService) WithClock(now func() time.Time) *ContractService {
	s.now = now
	return s
}

// Create validates the form, allocates the contract code, renders the PDF,
// writes it under the contracts directory and appends the transaction to the
// CSV ledger and the register table.
func (s *ContractService) Create(ctx context.Context, input CreateContractInput) (*CreateContractResult, error) {
	contract, err := s.buildContract(input)
	if err != nil {
		return nil, err
	}

	code, err := s.allocator.NextContractCode(contract.Buyer.FirstName, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	contract.Code = code

	content, err := s.renderer.RenderContract(*contract)
	if err != nil {
		if errors.Is(err, pdf.ErrMissingPriceWords) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := os.MkdirAll(s.contractsDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create contracts directory: %v", ErrStorage, err)
	}
	filePath := filepath.Join(s.contractsDir, code+".pdf")
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", ErrStorage, filePath, err)
	}

	if err := s.ledger.Append(*contract); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	record, err := s.repo.Create(ctx, model.NewContractRecord(*contract))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.log.Info().
		Str("code", code).
		Str("buyer", contract.Buyer.FullName()).
		Str("path", filePath).
		Msg("contract generated")

	return &CreateContractResult{
		Code:     code,
		FilePath: filePath,
		RecordID: record.ID,
	}, nil
}

func (s *ContractService) buildContract(input CreateContractInput) (*model.Contract, error) {
	seller := input.Seller.toParty()
	buyer := input.Buyer.toParty()

	switch {
	case seller.FirstName == "" || seller.LastName == "":
		return nil, fmt.Errorf("%w: seller first and last name are required", ErrInvalidInput)
	case buyer.FirstName == "" || buyer.LastName == "":
		return nil, fmt.Errorf("%w: buyer first and last name are required", ErrInvalidInput)
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := parseDateOrDefault(input.DeliveryDate, s.now())
	if err != nil {
		return nil, err
	}

	return &model.Contract{
		Seller: seller,
		Buyer:  buyer,
		Device: input.Device.toDevice(),
		Terms:  input.Terms,
		Price: model.PriceInfo{
			Price:        price,
			PriceInWords: words.EuroAmount(price),
			DeliveryDate: deliveryDate,
		},
		CreatedAt: s.now(),
	}, nil
}

// List returns the full register.
func (s *ContractService) List(ctx context.Context) ([]model.ContractRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return records, nil
}

// Get returns one register row.
func (s *ContractService) Get(ctx context.Context, id int64) (*model.ContractRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return record, nil
}

// Update rewrites the editable fields of a register row. The stored PDF and
// ledger rows are immutable; only the register reflects corrections.
func (s *ContractService) Update(ctx context.Context, id int64, input CreateContractInput) error {
	contract, err := s.buildContract(input)
	if err != nil {
		return err
	}

	record := model.NewContractRecord(*contract)
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	record.ContractCode = existing.ContractCode

	if err := s.repo.Update(ctx, id, record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Delete removes one register row. Ledger rows and PDFs stay untouched.
func (s *ContractService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// ExportResult is one produced register dump.
type ExportResult struct {
	FileName string
	MIME     string
	Content  []byte
}

// Export dumps the register in the requested format: "csv", "xlsx" or "db".
func (s *ContractService) Export(ctx context.Context, format string) (*ExportResult, error) {
	stamp := s.now().Format("20060102")
	switch format {
	case "csv":
		content, err := s.exporter.CSV(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return &ExportResult{
			FileName: "contracts-" + stamp + ".csv",
			MIME:     "text/csv",
			Content:  content,
		}, nil
	case "xlsx":
		content, err := s.exporter.XLSX(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return &ExportResult{
			FileName: "contracts-" + stamp + ".xlsx",
			MIME:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:  content,
		}, nil
	case "db":
		path := filepath.Join(os.TempDir(), "contracts-export-"+stamp+".db")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if err := s.exporter.SQLite(ctx, path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return &ExportResult{
			FileName: "contracts-" + stamp + ".db",
			MIME:     "application/octet-stream",
			Content:  content,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, format)
	}
}

// ExportTo writes the register dump to a file, for the CLI export command.
func (s *ContractService) ExportTo(ctx context.Context, format, path string) error {
	if format == "db" {
		if err := s.exporter.SQLite(ctx, path); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil
	}
	result, err := s.Export(ctx, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, path, err)
	}
	return nil
}
