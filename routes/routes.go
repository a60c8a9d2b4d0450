package routes

import (
	"Gin_postgres_redis_equipment_tracker/app"
	"Gin_postgres_redis_equipment_tracker/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	itemCtl := controllers.NewItemController(s)
	cartCtl := controllers.NewCartController(s)
	checkoutCtl := controllers.NewCheckoutController(s)
	favCtl := controllers.NewFavoriteController(s)

	// 复用的中间件
	sessMW := app.EnsureSession(a.Config)

	// ------------------------------
	// 目录浏览/搜索
	// ------------------------------
	items := r.Group("/api/items")
	{
		items.GET("", itemCtl.ListItems)
		items.GET("/search", itemCtl.SearchItems) // ?q=&mode=AND|OR
		items.GET("/:id", itemCtl.GetItemGroup)
	}

	r.GET("/api/lists", itemCtl.ListReference)

	// ------------------------------
	// 管理：创建物品
	// ------------------------------
	admin := r.Group("/api/admin")
	{
		admin.POST("/items", itemCtl.CreateItem)
	}

	// ------------------------------
	// 购物车（会话内）
	// ------------------------------
	cartGrp := r.Group("/api/cart", sessMW)
	{
		cartGrp.GET("", cartCtl.GetCart)
		cartGrp.POST("/items", cartCtl.AddItem)
		cartGrp.PUT("/items/:id", cartCtl.SetQuantity)
		cartGrp.DELETE("", cartCtl.ClearCart)
	}

	// ------------------------------
	// 借出/归还
	// ------------------------------
	checkout := r.Group("/api", sessMW)
	{
		checkout.POST("/checkout", checkoutCtl.Checkout)
		checkout.GET("/checkouts/open", checkoutCtl.ListOpenGroups)
		checkout.GET("/checkouts/open/entries", checkoutCtl.ListOpenEntries) // ?destination=&borrower=
		checkout.POST("/returns", checkoutCtl.Return)
		checkout.POST("/returns/bulk", checkoutCtl.BulkReturn)
	}

	// ------------------------------
	// 常用清单
	// ------------------------------
	favorites := r.Group("/api/favorites", sessMW)
	{
		favorites.GET("", favCtl.ListSites)
		favorites.GET("/bundles", favCtl.ListBundles) // ?destination=
		favorites.POST("", favCtl.Register)
		favorites.POST("/apply", favCtl.Apply)
	}
}
