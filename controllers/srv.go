// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"Gin_postgres_redis_equipment_tracker/app"
	"Gin_postgres_redis_equipment_tracker/cache"
	"Gin_postgres_redis_equipment_tracker/cart"
	"Gin_postgres_redis_equipment_tracker/db"
	"Gin_postgres_redis_equipment_tracker/ledger"
	"Gin_postgres_redis_equipment_tracker/session"
	"Gin_postgres_redis_equipment_tracker/stock"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Srv struct {
	Repo  *db.Repo
	Carts *session.CartStore
	Stock *cache.StockCache
	Cfg   app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:  db.NewRepo(a.DB),
		Carts: session.NewCartStore(a.RDB, a.Config.CartTTL),
		Stock: cache.NewStockCache(a.RDB, a.Config.CacheTTL),
		Cfg:   a.Config,
	}
}

// --- helpers ---

// Snapshot serves the derived-stock view, recomputing from the store on a
// cache miss. Integrity warnings are logged here, once per recompute.
func (s *Srv) Snapshot(ctx context.Context) (*stock.Snapshot, error) {
	if snap, ok := s.Stock.Get(ctx); ok {
		return snap, nil
	}
	items, err := s.Repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.Repo.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	snap := stock.Compute(items, entries)
	for _, w := range snap.Warnings {
		log.Printf("integrity: %s", w)
	}
	s.Stock.Set(ctx, snap)
	return snap, nil
}

// fail maps core errors onto HTTP. Validation problems come back as 4xx
// with the cart/ledger untouched; anything unexpected is treated as the
// store being unavailable and the operation fails closed.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrPartialReturn),
		errors.Is(err, db.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, ledger.ErrAlreadyReturned):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrUnknownItem),
		errors.Is(err, db.ErrUnknownLogID),
		errors.Is(err, db.ErrUnknownBundle),
		errors.Is(err, db.ErrNoOpenEntries),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	default:
		log.Printf("store error: %v", err)
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "store unavailable"})
	}
}
