// database/bootstrap.go
package database

import (
	"fmt"
	"log"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agro/entities"
	"agro/pkg/taxid"
)

// OpenSQLite opens the store at path with foreign keys enforced, rewrites
// legacy tax IDs and migrates the producer tree tables.
func OpenSQLite(path string, logSQL bool) (*gorm.DB, error) {
	level := logger.Warn
	if logSQL {
		level = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(withForeignKeys(path)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows one writer; a single connection keeps transactions from
	// tripping over SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Must run before AutoMigrate adds the unique index on tax_id.
	if err := normalizeLegacyTaxIDs(db); err != nil {
		return nil, fmt.Errorf("migrate tax ids: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.Producer{},
		&entities.Property{},
		&entities.Crop{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	log.Printf("[db] sqlite ready at %s", path)
	return db, nil
}

func withForeignKeys(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// normalizeLegacyTaxIDs strips punctuation from tax IDs written by older
// builds that stored them formatted ("111.444.777-35").
func normalizeLegacyTaxIDs(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='producers'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}

	type row struct {
		ID    uint
		TaxID string
	}
	var rows []row
	if err := db.Raw(`SELECT id, tax_id FROM producers WHERE tax_id GLOB '*[^0-9]*'`).Scan(&rows).Error; err != nil {
		return fmt.Errorf("scan producers: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			clean := taxid.Clean(r.TaxID)
			if err := tx.Exec(`UPDATE producers SET tax_id = ? WHERE id = ?`, clean, r.ID).Error; err != nil {
				return fmt.Errorf("producer %d: %w", r.ID, err)
			}
		}
		log.Printf("[db] normalized %d legacy tax ids", len(rows))
		return nil
	})
}
