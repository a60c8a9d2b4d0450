package db

import (
	"context"

	"Gin_postgres_redis_equipment_tracker/cart"
	"Gin_postgres_redis_equipment_tracker/models"

	"gorm.io/gorm"
)

// FavoriteBundle is a named, reusable cart template for one destination.
type FavoriteBundle struct {
	Destination string         `json:"destination"`
	Memo        string         `json:"memo"`
	Lines       []FavoriteLine `json:"lines"`
}

type FavoriteLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// RegisterFavorite snapshots a cart as the bundle (destination, memo).
// Registering identical contents again is a no-op (created=false); a
// re-registration with different contents replaces the whole bundle.
func (r *Repo) RegisterFavorite(ctx context.Context, destination, memo string, c cart.Cart) (created bool, err error) {
	if c.Empty() {
		return false, ErrEmptyCart
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Favorite
		if err := tx.Where("destination = ? AND memo = ?", destination, memo).
			Find(&existing).Error; err != nil {
			return err
		}

		// 内容一致就跳过，避免重复登记
		if len(existing) > 0 && sameLines(existing, c) {
			return nil
		}

		if len(existing) > 0 {
			if err := tx.Where("destination = ? AND memo = ?", destination, memo).
				Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
		}

		rows := make([]models.Favorite, 0, len(c))
		for id, qty := range c {
			rows = append(rows, models.Favorite{
				Destination: destination,
				ItemID:      id,
				Quantity:    qty,
				Memo:        memo,
			})
		}
		created = true
		return tx.Create(&rows).Error
	})
	return created, err
}

// sameLines compares stored bundle rows against a cart as a set of
// (item, quantity) pairs, ignoring row order and duplicates collapsing to
// the same item.
func sameLines(rows []models.Favorite, c cart.Cart) bool {
	stored := make(cart.Cart, len(rows))
	for _, f := range rows {
		stored[f.ItemID] += f.Quantity
	}
	if len(stored) != len(c) {
		return false
	}
	for id, qty := range c {
		if stored[id] != qty {
			return false
		}
	}
	return true
}

// ListFavoriteSites returns the destinations that have bundles.
func (r *Repo) ListFavoriteSites(ctx context.Context) ([]string, error) {
	var sites []string
	err := r.DB.WithContext(ctx).
		Model(&models.Favorite{}).
		Distinct("destination").
		Order("destination").
		Pluck("destination", &sites).Error
	return sites, err
}

// ListFavoriteBundles returns every bundle registered for a destination.
func (r *Repo) ListFavoriteBundles(ctx context.Context, destination string) ([]FavoriteBundle, error) {
	var rows []models.Favorite
	if err := r.DB.WithContext(ctx).
		Where("destination = ?", destination).
		Order("memo, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var bundles []FavoriteBundle
	byMemo := map[string]int{}
	for _, f := range rows {
		i, ok := byMemo[f.Memo]
		if !ok {
			i = len(bundles)
			byMemo[f.Memo] = i
			bundles = append(bundles, FavoriteBundle{Destination: destination, Memo: f.Memo})
		}
		bundles[i].Lines = append(bundles[i].Lines, FavoriteLine{ItemID: f.ItemID, Quantity: f.Quantity})
	}
	return bundles, nil
}

// GetFavoriteBundle loads one bundle as a cart.
func (r *Repo) GetFavoriteBundle(ctx context.Context, destination, memo string) (cart.Cart, error) {
	var rows []models.Favorite
	if err := r.DB.WithContext(ctx).
		Where("destination = ? AND memo = ?", destination, memo).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrUnknownBundle
	}
	c := make(cart.Cart, len(rows))
	for _, f := range rows {
		c[f.ItemID] += f.Quantity
	}
	return c, nil
}
