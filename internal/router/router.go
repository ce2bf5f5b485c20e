package router

import (
	"net/http"
	"time"

	"armenu/internal/analytics"
	"armenu/internal/auth"
	"armenu/internal/cart"
	"armenu/internal/menu"
	"armenu/internal/middleware"
	"armenu/internal/order"
	"armenu/internal/restaurant"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	JWTSecret   string
	CORSOrigins []string

	Restaurants *restaurant.Handler
	Menu        *menu.Handler
	Cart        *cart.Handler
	Orders      *order.Handler
	Analytics   *analytics.Handler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.DeviceHeader},
		ExposeHeaders:    []string{middleware.DeviceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	owner := []gin.HandlerFunc{
		middleware.AuthMiddleware(d.JWTSecret),
		middleware.RequireRole(auth.RoleRestaurant),
	}

	// ───────────────────────── RESTAURANT (OWNER) ─────────────────────────
	restaurants := r.Group("/restaurants", owner...)
	{
		restaurants.POST("", d.Restaurants.CreateRestaurant)
		restaurants.GET("/me", d.Restaurants.ListMyRestaurants)
		restaurants.PUT("/:id/pos", d.Restaurants.UpdatePOSConfig)
		restaurants.POST("/:id/models", d.Menu.Upload)
		restaurants.GET("/:id/orders", d.Orders.ListOrders)
		restaurants.GET("/:id/analytics", d.Analytics.GetSummary)
	}

	models := r.Group("/models", owner...)
	{
		models.PATCH("/:id/price", d.Menu.UpdatePrice)
	}

	orders := r.Group("/orders", owner...)
	{
		orders.GET("/:id", d.Orders.GetOrder)
	}

	// ───────────────────────── PUBLIC MENU ─────────────────────────
	public := r.Group("")
	{
		public.GET("/restaurants/:id/pos", d.Restaurants.GetPOSConfig)
		public.GET("/restaurants/:id/models", d.Menu.ListMenu)
		public.GET("/models/:id", d.Menu.GetModel)
	}

	// ───────────────────────── DINER CART ─────────────────────────
	carts := r.Group("/restaurants/:id/cart", middleware.DeviceID())
	{
		carts.GET("", d.Cart.GetCart)
		carts.DELETE("", d.Cart.ClearCart)
		carts.POST("/items", d.Cart.AddItem)
		carts.PATCH("/items/:item_id", d.Cart.UpdateItem)
		carts.DELETE("/items/:item_id", d.Cart.RemoveItem)
		carts.POST("/checkout", d.Orders.Checkout)
	}

	return r
}
