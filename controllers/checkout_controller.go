// controllers/checkout_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_equipment_tracker/app"
	"Gin_postgres_redis_equipment_tracker/db"
	"Gin_postgres_redis_equipment_tracker/ledger"
	"Gin_postgres_redis_equipment_tracker/models"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ *Srv }

func NewCheckoutController(s *Srv) *CheckoutController { return &CheckoutController{Srv: s} }

// 借出确认：购物车整批写入台账，成功后清空购物车并刷新快照
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var in struct {
		Destination string      `json:"destination" binding:"required"`
		Borrower    string      `json:"borrower" binding:"required"`
		StartDate   models.Date `json:"startDate" binding:"required"`
		EndDate     models.Date `json:"endDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	sid := app.SessionID(c)
	ctx := c.Request.Context()

	ct, err := cc.Carts.Get(ctx, sid)
	if err != nil {
		fail(c, err)
		return
	}

	entries, err := cc.Repo.CheckoutCart(ctx, ct, db.CheckoutCartInput{
		Destination: in.Destination,
		Borrower:    in.Borrower,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Strict:      cc.Cfg.StrictCheckout,
	})
	if err != nil {
		fail(c, err)
		return
	}

	// 写入成功后本地状态立即生效
	if err := cc.Carts.Clear(ctx, sid); err != nil {
		fail(c, err)
		return
	}
	cc.Stock.Invalidate(ctx)

	c.JSON(http.StatusCreated, app.H{"entries": entries})
}

// 外借中一览（按现场+借用人分组）
func (cc *CheckoutController) ListOpenGroups(c *gin.Context) {
	groups, err := cc.Repo.ListOpenGroups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"groups": groups})
}

// 某组未归还条目（归还表单数据源）
func (cc *CheckoutController) ListOpenEntries(c *gin.Context) {
	destination := c.Query("destination")
	borrower := c.Query("borrower")
	if destination == "" || borrower == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing destination or borrower"})
		return
	}
	entries, err := cc.Repo.ListOpenEntries(c.Request.Context(), destination, borrower)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"entries": entries})
}

// 归还：按 logId 逐条处理，破损数量会核减物品库存
func (cc *CheckoutController) Return(c *gin.Context) {
	var in struct {
		Selections map[int64]ledger.Return `json:"selections" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if len(in.Selections) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "no selections"})
		return
	}

	updated, err := cc.Repo.ReturnEntries(c.Request.Context(), in.Selections)
	if err != nil {
		fail(c, err)
		return
	}
	cc.Stock.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, app.H{"entries": updated})
}

// 批量归还：该组全部条目按原数量归还、无破损
func (cc *CheckoutController) BulkReturn(c *gin.Context) {
	var in struct {
		Destination string `json:"destination" binding:"required"`
		Borrower    string `json:"borrower" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	updated, err := cc.Repo.BulkReturn(c.Request.Context(), in.Destination, in.Borrower)
	if err != nil {
		fail(c, err)
		return
	}
	cc.Stock.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, app.H{"entries": updated})
}
