// controllers/cart_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_equipment_tracker/app"

	"github.com/gin-gonic/gin"
)

type CartController struct{ *Srv }

func NewCartController(s *Srv) *CartController { return &CartController{Srv: s} }

// 查看购物车
func (cc *CartController) GetCart(c *gin.Context) {
	sid := app.SessionID(c)
	ct, err := cc.Carts.Get(c.Request.Context(), sid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"cart": ct})
}

// 加入购物车：数量上限为当前剩余在库数（快照校验，结账时再复核）
func (cc *CartController) AddItem(c *gin.Context) {
	var in struct {
		ItemID   string `json:"itemId" binding:"required"`
		Quantity int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	sid := app.SessionID(c)
	ctx := c.Request.Context()

	snap, err := cc.Snapshot(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if _, ok := snap.Lookup(in.ItemID); !ok {
		c.JSON(http.StatusNotFound, app.H{"error": "unknown item: " + in.ItemID})
		return
	}

	ct, err := cc.Carts.Get(ctx, sid)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ct.Add(in.ItemID, in.Quantity, snap.Remaining(in.ItemID)); err != nil {
		fail(c, err)
		return
	}
	if err := cc.Carts.Save(ctx, sid, ct); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"cart": ct})
}

// 修改数量：0 表示移除；上限 = 剩余在库 + 本行已占数量
func (cc *CartController) SetQuantity(c *gin.Context) {
	itemID := c.Param("id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing item id"})
		return
	}
	var in struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	sid := app.SessionID(c)
	ctx := c.Request.Context()

	snap, err := cc.Snapshot(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ct, err := cc.Carts.Get(ctx, sid)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ct.SetQuantity(itemID, *in.Quantity, snap.Remaining(itemID)); err != nil {
		fail(c, err)
		return
	}
	if err := cc.Carts.Save(ctx, sid, ct); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"cart": ct})
}

// 清空购物车
func (cc *CartController) ClearCart(c *gin.Context) {
	sid := app.SessionID(c)
	if err := cc.Carts.Clear(c.Request.Context(), sid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
