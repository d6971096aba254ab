package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/handyzentrum/shopdocs/internal/config"
	"github.com/handyzentrum/shopdocs/internal/db"
	"github.com/handyzentrum/shopdocs/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{}
	cfg.DB.Path = filepath.Join(t.TempDir(), "contracts.db")
	database, err := db.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return database
}

func sampleRecord(code string) model.ContractRecord {
	return model.ContractRecord{
		ContractCode:    code,
		SellerFirstName: "Myers International GmbH",
		BuyerFirstName:  "Anna",
		BuyerLastName:   "Mueller",
		Manufacturer:    "Apple",
		DeviceModel:     "iPhone 12",
		Price:           "250.00",
		PriceInWords:    "ZWEIHUNDERTFÜNFZIG EURO",
		DeliveryDate:    "2024-01-10",
		CreatedAt:       "2024-01-10T09:30:00Z",
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewContractRepository(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRecord("Anna_20240110_001"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna_20240110_001", fetched.ContractCode)
	assert.Equal(t, "Mueller", fetched.BuyerLastName)
}

func TestGetMissing(t *testing.T) {
	repo := NewContractRepository(testDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdered(t *testing.T) {
	repo := NewContractRepository(testDB(t))
	ctx := context.Background()

	for _, code := range []string{"A_20240110_001", "B_20240110_002", "C_20240110_003"} {
		_, err := repo.Create(ctx, sampleRecord(code))
		require.NoError(t, err)
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "A_20240110_001", records[0].ContractCode)
	assert.Equal(t, "C_20240110_003", records[2].ContractCode)
}

func TestUpdateKeepsIDAndCreatedAt(t *testing.T) {
	repo := NewContractRepository(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRecord("Anna_20240110_001"))
	require.NoError(t, err)

	changed := sampleRecord("Anna_20240110_001")
	changed.BuyerLastName = "Müller"
	changed.CreatedAt = "2030-01-01T00:00:00Z"
	require.NoError(t, repo.Update(ctx, created.ID, changed))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Müller", fetched.BuyerLastName)
	assert.Equal(t, created.CreatedAt, fetched.CreatedAt)
}

func TestDelete(t *testing.T) {
	repo := NewContractRepository(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRecord("Anna_20240110_001"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}

func TestCopyTo(t *testing.T) {
	repo := NewContractRepository(testDB(t))
	ctx := context.Background()

	for _, code := range []string{"A_20240110_001", "B_20240110_002"} {
		_, err := repo.Create(ctx, sampleRecord(code))
		require.NoError(t, err)
	}

	target := filepath.Join(t.TempDir(), "export.db")
	require.NoError(t, repo.CopyTo(ctx, target))

	cfg := &config.Config{}
	cfg.DB.Path = target
	exported, err := db.New(cfg, zerolog.Nop())
	require.NoError(t, err)

	copied, err := NewContractRepository(exported).List(ctx)
	require.NoError(t, err)
	assert.Len(t, copied, 2)
}

func TestCopyToRepeatedExports(t *testing.T) {
	repo := NewContractRepository(testDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleRecord("A_20240110_001"))
	require.NoError(t, err)

	// Each export opens and releases its own database handle.
	base := t.TempDir()
	for _, name := range []string{"first.db", "second.db", "third.db"} {
		target := filepath.Join(base, name)
		require.NoError(t, repo.CopyTo(ctx, target))

		cfg := &config.Config{}
		cfg.DB.Path = target
		exported, err := db.New(cfg, zerolog.Nop())
		require.NoError(t, err)

		copied, err := NewContractRepository(exported).List(ctx)
		require.NoError(t, err)
		assert.Len(t, copied, 1)
	}
}
