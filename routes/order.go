package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	checkoutControllers "github.com/Fouad192/Elagi-Backend/controllers/checkout"
	orderControllers "github.com/Fouad192/Elagi-Backend/controllers/order"
	paymobControllers "github.com/Fouad192/Elagi-Backend/controllers/paymob"
	"github.com/Fouad192/Elagi-Backend/middleware"
)

// SetupOrderRoutes registers checkout, order history and payment endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, store *cache.Store, pay *paymobControllers.Client) {
	protected := r.Group("/")
	protected.Use(middleware.ValidateToken(store))
	{
		protected.POST("/checkout", checkoutControllers.CheckoutHandler(db, store, pay))
		protected.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}

	// The gateway calls back without a bearer token; the order id scopes
	// the effect.
	r.POST("/payment/callback", paymobControllers.HandleCallback(db))
	r.GET("/check-payment-status/:orderID", paymobControllers.CheckPaymentStatusHandler(db))
	r.POST("/donate", paymobControllers.InitiateDonationHandler(db, pay))
	r.POST("/donation/callback", paymobControllers.HandleDonationCallback(db))

	// Live order-status feed
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
