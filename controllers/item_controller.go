// controllers/item_controller.go
package controllers

import (
	"net/http"
	"strings"

	"Gin_postgres_redis_equipment_tracker/app"
	"Gin_postgres_redis_equipment_tracker/models"
	"Gin_postgres_redis_equipment_tracker/stock"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// 列表（含派生在库数）
func (ic *ItemController) ListItems(c *gin.Context) {
	snap, err := ic.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": snap.Items})
}

// 关键词搜索（空格分词，AND/OR 两种模式）
func (ic *ItemController) SearchItems(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing query"})
		return
	}
	mode := c.DefaultQuery("mode", "OR")

	matched, err := ic.Repo.SearchItems(c.Request.Context(), q, mode)
	if err != nil {
		fail(c, err)
		return
	}
	snap, err := ic.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": withStock(matched, snap)})
}

// 详情：同名变体一并返回
func (ic *ItemController) GetItemGroup(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing item id"})
		return
	}
	group, err := ic.Repo.ListItemGroup(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	snap, err := ic.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": withStock(group, snap)})
}

// 管理员创建物品
func (ic *ItemController) CreateItem(c *gin.Context) {
	var in struct {
		ItemID        string `json:"itemId" binding:"required"`
		Name          string `json:"name" binding:"required"`
		Detail        string `json:"detail"`
		OriginalStock int    `json:"originalStock"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.OriginalStock < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "originalStock must not be negative"})
		return
	}
	it := &models.Item{ItemID: in.ItemID, Name: in.Name, Detail: in.Detail, OriginalStock: in.OriginalStock}
	if err := ic.Repo.CreateItem(c.Request.Context(), it); err != nil {
		fail(c, err)
		return
	}
	ic.Stock.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, it)
}

// 现场/借用人参考列表（下拉框数据源）
func (ic *ItemController) ListReference(c *gin.Context) {
	lists, err := ic.Repo.ListReference(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func withStock(items []models.Item, snap *stock.Snapshot) []stock.ItemStock {
	out := make([]stock.ItemStock, 0, len(items))
	for _, it := range items {
		if st, ok := snap.Lookup(it.ItemID); ok {
			out = append(out, st)
			continue
		}
		// 刚创建、快照还没包含的物品
		out = append(out, stock.ItemStock{Item: it, Remaining: it.OriginalStock, Available: it.OriginalStock})
	}
	return out
}
