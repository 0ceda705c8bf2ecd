package infra

import (
	"fmt"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches GORM
// cannot express (sequences, partial indexes).
//
// TranslateError is required: the session-open race relies on catching
// gorm.ErrDuplicatedKey from the partial unique index below.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Safe to call repeatedly.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Branch{},
		&model.Register{},
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.PaymentMethod{},
		&model.RegisterSession{},
		&model.Sale{},
		&model.SaleItem{},
		&model.SalePayment{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Sale numbers come from a sequence so concurrent sales never collide.
		{"sales number sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_number_seq START 1`},

		// At most one OPEN session per register. The database, not the
		// application, is the authority: concurrent opens race on this index
		// and the loser gets a duplicate-key error.
		{"one open session per register", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_register_sessions_open') THEN
    CREATE UNIQUE INDEX uniq_register_sessions_open
        ON register_sessions (register_id)
        WHERE status = 'OPEN';
  END IF;
END $$`},

		// Session close aggregates payments by session; keep that scan indexed.
		{"sales by session index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sales_session_status') THEN
    CREATE INDEX idx_sales_session_status ON sales (session_id, status);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
