package db

import (
	"context"
	"fmt"
	"strings"

	"Gin_postgres_redis_equipment_tracker/cart"
	"Gin_postgres_redis_equipment_tracker/models"
)

// Items
func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).Order("name, item_id").Find(&items).Error
	return items, err
}

// ListItemGroup returns every variant sharing the selected item's name.
func (r *Repo) ListItemGroup(ctx context.Context, id string) ([]models.Item, error) {
	it, err := r.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var items []models.Item
	err = r.DB.WithContext(ctx).
		Where("name = ?", it.Name).
		Order("item_id").
		Find(&items).Error
	return items, err
}

// SearchItems matches whitespace-separated keywords against name and
// detail. mode "AND" requires every keyword, anything else means any.
func (r *Repo) SearchItems(ctx context.Context, query, mode string) ([]models.Item, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(keywords))
	args := make([]any, 0, 2*len(keywords))
	for _, kw := range keywords {
		pat := "%" + strings.ToLower(kw) + "%"
		conds = append(conds, "(LOWER(name) LIKE ? OR LOWER(detail) LIKE ?)")
		args = append(args, pat, pat)
	}
	joiner := " OR "
	if strings.EqualFold(mode, "AND") {
		joiner = " AND "
	}

	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where(strings.Join(conds, joiner), args...).
		Order("name, item_id").
		Find(&items).Error
	return items, err
}

// ListEntries loads the full ledger, for the stock projection.
func (r *Repo) ListEntries(ctx context.Context) ([]models.CheckoutEntry, error) {
	var entries []models.CheckoutEntry
	err := r.DB.WithContext(ctx).Order("log_id").Find(&entries).Error
	return entries, err
}

// Reference lists for the checkout form.
type ReferenceLists struct {
	Destinations []string `json:"destinations"`
	Borrowers    []string `json:"borrowers"`
}

func (r *Repo) ListReference(ctx context.Context) (*ReferenceLists, error) {
	var rows []models.ListEntry
	if err := r.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	res := &ReferenceLists{}
	seenDest := map[string]bool{}
	seenBorr := map[string]bool{}
	for _, row := range rows {
		if d := strings.TrimSpace(row.Destination); d != "" && !seenDest[d] {
			seenDest[d] = true
			res.Destinations = append(res.Destinations, d)
		}
		if b := strings.TrimSpace(row.Borrower); b != "" && !seenBorr[b] {
			seenBorr[b] = true
			res.Borrowers = append(res.Borrowers, b)
		}
	}
	return res, nil
}

// InsufficientStockError names the item that could not be allocated so the
// user gets actionable feedback instead of a bare rejection.
type InsufficientStockError struct {
	ItemID    string
	Name      string
	Requested int
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): requested %d, remaining %d",
		e.Name, e.ItemID, e.Requested, e.Remaining)
}

func (e *InsufficientStockError) Unwrap() error { return cart.ErrInsufficientStock }
