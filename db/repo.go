package db

import (
	"context"
	"errors"

	"Gin_postgres_redis_equipment_tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

var ErrEmptyCart = errors.New("cart is empty")
var ErrUnknownItem = errors.New("unknown item")
var ErrUnknownLogID = errors.New("unknown log id")
var ErrNoOpenEntries = errors.New("no open entries for this group")
var ErrUnknownBundle = errors.New("unknown favorite bundle")

// SeedItems inserts catalog rows, skipping ids that already exist.
func (r *Repo) SeedItems(ctx context.Context, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&items).Error
}

// SeedEntries inserts ledger rows with their original log ids, then bumps
// the sequence past the highest id so new checkouts don't collide.
func (r *Repo) SeedEntries(ctx context.Context, entries []models.CheckoutEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entries).Error; err != nil {
			return err
		}
		return tx.Exec(`
		  SELECT setval(
		    pg_get_serial_sequence('` + models.CheckoutTable + `', 'log_id'),
		    (SELECT COALESCE(MAX(log_id), 1) FROM ` + models.CheckoutTable + `)
		  );
		`).Error
	})
}

// SeedList inserts destination/borrower reference rows.
func (r *Repo) SeedList(ctx context.Context, rows []models.ListEntry) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
