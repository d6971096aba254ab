package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_code TEXT NOT NULL,
		seller_first_name TEXT NOT NULL DEFAULT '',
		seller_last_name TEXT NOT NULL DEFAULT '',
		seller_street TEXT NOT NULL DEFAULT '',
		seller_postal TEXT NOT NULL DEFAULT '',
		seller_phone TEXT NOT NULL DEFAULT '',
		seller_email TEXT NOT NULL DEFAULT '',
		seller_id_number TEXT NOT NULL DEFAULT '',
		buyer_first_name TEXT NOT NULL DEFAULT '',
		buyer_last_name TEXT NOT NULL DEFAULT '',
		buyer_street TEXT NOT NULL DEFAULT '',
		buyer_postal TEXT NOT NULL DEFAULT '',
		buyer_phone TEXT NOT NULL DEFAULT '',
		buyer_email TEXT NOT NULL DEFAULT '',
		buyer_id_number TEXT NOT NULL DEFAULT '',
		manufacturer TEXT NOT NULL DEFAULT '',
		device_model TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		features TEXT NOT NULL DEFAULT '',
		condition TEXT NOT NULL DEFAULT '',
		accessories TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL DEFAULT '0.00',
		price_in_words TEXT NOT NULL DEFAULT '',
		delivery_date TEXT NOT NULL DEFAULT '',
		terms TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_code ON contracts (contract_code);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_created_at ON contracts (created_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
