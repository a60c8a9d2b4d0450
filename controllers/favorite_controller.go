// controllers/favorite_controller.go
package controllers

import (
	"net/http"
	"strings"

	"Gin_postgres_redis_equipment_tracker/app"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct{ *Srv }

func NewFavoriteController(s *Srv) *FavoriteController { return &FavoriteController{Srv: s} }

// 常用清单：有登记的现场列表
func (fc *FavoriteController) ListSites(c *gin.Context) {
	sites, err := fc.Repo.ListFavoriteSites(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"destinations": sites})
}

// 某现场的全部常用清单
func (fc *FavoriteController) ListBundles(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing destination"})
		return
	}
	bundles, err := fc.Repo.ListFavoriteBundles(c.Request.Context(), destination)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"bundles": bundles})
}

// 把当前购物车登记为常用清单；完全相同的内容重复登记为 no-op
func (fc *FavoriteController) Register(c *gin.Context) {
	var in struct {
		Destination string `json:"destination" binding:"required"`
		Memo        string `json:"memo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(in.Memo) == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "memo must not be blank"})
		return
	}

	sid := app.SessionID(c)
	ctx := c.Request.Context()

	ct, err := fc.Carts.Get(ctx, sid)
	if err != nil {
		fail(c, err)
		return
	}

	created, err := fc.Repo.RegisterFavorite(ctx, in.Destination, strings.TrimSpace(in.Memo), ct)
	if err != nil {
		fail(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, app.H{"ok": true, "duplicate": true})
		return
	}
	c.JSON(http.StatusCreated, app.H{"ok": true})
}

// 套用常用清单：整单替换当前购物车
func (fc *FavoriteController) Apply(c *gin.Context) {
	var in struct {
		Destination string `json:"destination" binding:"required"`
		Memo        string `json:"memo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	sid := app.SessionID(c)
	ctx := c.Request.Context()

	ct, err := fc.Repo.GetFavoriteBundle(ctx, in.Destination, in.Memo)
	if err != nil {
		fail(c, err)
		return
	}
	if err := fc.Carts.Save(ctx, sid, ct); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"cart": ct})
}
