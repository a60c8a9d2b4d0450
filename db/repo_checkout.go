package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"Gin_postgres_redis_equipment_tracker/cart"
	"Gin_postgres_redis_equipment_tracker/ledger"
	"Gin_postgres_redis_equipment_tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutCartInput carries the form fields attached to a cart submission.
// No ordering constraint between the dates is enforced.
type CheckoutCartInput struct {
	Destination string
	Borrower    string
	StartDate   models.Date
	EndDate     models.Date
	Strict      bool
}

// CheckoutCart appends one ledger entry per cart line as a single batch.
// Item rows are locked in a stable order so concurrent checkouts cannot
// deadlock. With Strict set, remaining stock is recomputed under the lock
// and the whole batch is rejected if any line overcommits; without it the
// cart's advisory validation is trusted as-is.
func (r *Repo) CheckoutCart(ctx context.Context, c cart.Cart, in CheckoutCartInput) ([]models.CheckoutEntry, error) {
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var entries []models.CheckoutEntry
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			qty := c[id]

			// 1) 锁住该物品
			var it models.Item
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&it, "item_id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrUnknownItem, id)
				}
				return err
			}

			// 2) 严格模式：锁内重算剩余量，杜绝超卖
			if in.Strict {
				var out int64
				if err := tx.Model(&models.CheckoutEntry{}).
					Where("item_id = ? AND NOT returned", id).
					Select("COALESCE(SUM(quantity), 0)").
					Scan(&out).Error; err != nil {
					return err
				}
				remaining := it.OriginalStock - int(out)
				if qty > remaining {
					return &InsufficientStockError{
						ItemID:    it.ItemID,
						Name:      it.Name,
						Requested: qty,
						Remaining: remaining,
					}
				}
			}

			entries = append(entries, models.CheckoutEntry{
				ItemID:      it.ItemID,
				ItemName:    it.Name,
				Quantity:    qty,
				Destination: in.Destination,
				Borrower:    in.Borrower,
				StartDate:   in.StartDate,
				EndDate:     in.EndDate,
			})
		}

		// 3) 一次性写入整批，log_id 由序列分配
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReturnEntries applies the return transition to each selected entry.
// Everything happens in one transaction: either every selection is valid
// and applied, or nothing changes. Damage decrements the item's owned
// stock, floored at zero; damage against a missing catalog item is logged
// and skipped rather than failing the return.
func (r *Repo) ReturnEntries(ctx context.Context, selections map[int64]ledger.Return) ([]models.CheckoutEntry, error) {
	ids := make([]int64, 0, len(selections))
	for id := range selections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var updated []models.CheckoutEntry
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			ret := selections[id]

			var e models.CheckoutEntry
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&e, "log_id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrUnknownLogID, id)
				}
				return err
			}

			if err := ledger.ValidateReturn(e, ret); err != nil {
				return err
			}
			next, wd := ledger.ApplyReturn(e, ret)

			if err := tx.Model(&models.CheckoutEntry{}).
				Where("log_id = ?", id).
				Updates(map[string]any{
					"returned":          true,
					"returned_quantity": next.ReturnedQuantity,
					"note":              next.Note,
				}).Error; err != nil {
				return err
			}

			if wd != nil {
				if err := applyWriteDown(tx, wd); err != nil {
					return err
				}
			}
			updated = append(updated, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyWriteDown shrinks owned stock after damage, never below zero.
func applyWriteDown(tx *gorm.DB, wd *ledger.WriteDown) error {
	res := tx.Model(&models.Item{}).
		Where("item_id = ?", wd.ItemID).
		Update("original_stock", gorm.Expr("GREATEST(original_stock - ?, 0)", wd.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 账目指向不存在的物品：记录但不阻塞返却
		log.Printf("integrity: damage write-down references unknown item %q", wd.ItemID)
	}
	return nil
}

// BulkReturn closes every open entry of a destination/borrower group with
// full quantities and no damage.
func (r *Repo) BulkReturn(ctx context.Context, destination, borrower string) ([]models.CheckoutEntry, error) {
	var updated []models.CheckoutEntry
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open []models.CheckoutEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("destination = ? AND borrower = ? AND NOT returned", destination, borrower).
			Order("log_id").
			Find(&open).Error; err != nil {
			return err
		}
		if len(open) == 0 {
			return ErrNoOpenEntries
		}

		for _, e := range open {
			next, _ := ledger.ApplyReturn(e, ledger.BulkReturn(e))
			if err := tx.Model(&models.CheckoutEntry{}).
				Where("log_id = ?", e.LogID).
				Updates(map[string]any{
					"returned":          true,
					"returned_quantity": next.ReturnedQuantity,
				}).Error; err != nil {
				return err
			}
			updated = append(updated, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// OpenGroup summarizes the open entries of one destination/borrower pair.
type OpenGroup struct {
	Destination string      `json:"destination"`
	Borrower    string      `json:"borrower"`
	Entries     int64       `json:"entries"`
	StartDate   models.Date `json:"startDate"`
	EndDate     models.Date `json:"endDate"`
}

func (r *Repo) ListOpenGroups(ctx context.Context) ([]OpenGroup, error) {
	var groups []OpenGroup
	err := r.DB.WithContext(ctx).
		Model(&models.CheckoutEntry{}).
		Select(`
			destination, borrower,
			COUNT(*)        AS entries,
			MIN(start_date) AS start_date,
			MAX(end_date)   AS end_date
		`).
		Where("NOT returned").
		Group("destination, borrower").
		Order("destination, borrower").
		Scan(&groups).Error
	return groups, err
}

func (r *Repo) ListOpenEntries(ctx context.Context, destination, borrower string) ([]models.CheckoutEntry, error) {
	var entries []models.CheckoutEntry
	err := r.DB.WithContext(ctx).
		Where("destination = ? AND borrower = ? AND NOT returned", destination, borrower).
		Order("log_id").
		Find(&entries).Error
	return entries, err
}
