// Package repository persists contracts register rows.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/handyzentrum/shopdocs/internal/model"
)

// ErrNotFound is returned when no register row matches the requested id.
var ErrNotFound = errors.New("contract not found")

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts one register row and returns it with its assigned id.
func (r *ContractRepository) Create(ctx context.Context, record model.ContractRecord) (*model.ContractRecord, error) {
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("insert contract: %w", err)
	}
	return &record, nil
}

// List returns all register rows in insertion order.
func (r *ContractRepository) List(ctx context.Context) ([]model.ContractRecord, error) {
	var records []model.ContractRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return records, nil
}

// GetByID returns one register row.
func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*model.ContractRecord, error) {
	var record model.ContractRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contract %d: %w", id, err)
	}
	return &record, nil
}

// Update replaces every field of the row except id and created_at.
func (r *ContractRepository) Update(ctx context.Context, id int64, record model.ContractRecord) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("update contract %d: %w", id, err)
	}
	return nil
}

// Delete removes one register row.
func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.ContractRecord{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete contract %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CopyTo exports every register row into a second SQLite file, creating its
// schema when missing. The target keeps its own autoincrement ids.
func (r *ContractRepository) CopyTo(ctx context.Context, path string) error {
	target, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open export database %s: %w", path, err)
	}
	targetConn, err := target.DB()
	if err != nil {
		return fmt.Errorf("export database connection: %w", err)
	}
	defer targetConn.Close()

	if err := target.WithContext(ctx).Migrator().AutoMigrate(&model.ContractRecord{}); err != nil {
		return fmt.Errorf("create export schema: %w", err)
	}

	records, err := r.List(ctx)
	if err != nil {
		return err
	}

	return target.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			record.ID = 0
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("copy contract %s: %w", record.ContractCode, err)
			}
		}
		return nil
	})
}
