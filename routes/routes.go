package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/controllers"
	"github.com/PedroLucas003/virada-brewery-store/logger"
	"github.com/PedroLucas003/virada-brewery-store/middleware"
)

// Register wires the storefront endpoints onto the router.
func Register(
	r *gin.Engine,
	sessions *controllers.SessionController,
	carts *controllers.CartController,
	checkouts *controllers.CheckoutController,
	catalog *controllers.CatalogController,
	orders *controllers.OrdersController,
) {
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(apperrors.ErrorMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/session", middleware.RateLimitMiddleware())
	{
		auth.GET("", sessions.Current)
		auth.POST("/login", sessions.Login)
		auth.POST("/register", sessions.Register)
		auth.POST("/logout", sessions.Logout)
		auth.PUT("/profile", sessions.UpdateProfile)
	}

	cart := r.Group("/cart")
	{
		cart.GET("", carts.Get)
		cart.POST("/items", carts.AddItem)
		cart.PUT("/items/:product_id", carts.UpdateQuantity)
		cart.DELETE("/items/:product_id", carts.RemoveItem)
		cart.DELETE("", carts.Clear)
	}

	r.GET("/checkout", checkouts.Quote)
	r.POST("/checkout", checkouts.Submit)

	r.GET("/products", catalog.Products)

	o := r.Group("/orders")
	{
		o.GET("/mine", orders.MyOrders)
		o.GET("", orders.AllOrders)
		o.PATCH("/:order_id", orders.UpdateStatus)
	}
}
