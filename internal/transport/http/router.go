package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/handlers"
	"github.com/shopforge/shopforge/internal/service/token"
)

type Deps struct {
	DB              *gorm.DB
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	TaxonomyHandler *handlers.TaxonomyHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	WishlistHandler *handlers.WishlistHandler
	SearchHandler   *handlers.SearchHandler
	TokenService    *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/categories", d.TaxonomyHandler.GetCategories)
	v1.GET("/brands", d.TaxonomyHandler.GetBrands)

	admin := v1.Group("/admin", d.TokenService.AutoRefreshMiddlewareAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/products/:id/variants", d.ProductHandler.CreateVariant)
	admin.DELETE("/products/:id/variants/:variant_id", d.ProductHandler.DeleteVariant)
	admin.POST("/categories", d.TaxonomyHandler.CreateCategory)
	admin.DELETE("/categories/:id", d.TaxonomyHandler.DeleteCategory)
	admin.POST("/brands", d.TaxonomyHandler.CreateBrand)
	admin.DELETE("/brands/:id", d.TaxonomyHandler.DeleteBrand)

	cart := v1.Group("/cart", d.TokenService.AutoRefreshMiddleware)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.PATCH("/items/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/items/:id", d.CartHandler.RemoveFromCart)
	cart.POST("/clear", d.CartHandler.ClearCart)
	cart.POST("/checkout", d.CartHandler.Checkout)

	orders := v1.Group("/orders", d.TokenService.AutoRefreshMiddleware)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	wishlist := v1.Group("/wishlist", d.TokenService.AutoRefreshMiddleware)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.AddToWishlist)
	wishlist.DELETE("/:id", d.WishlistHandler.RemoveFromWishlist)
}
