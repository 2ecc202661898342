package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	cartControllers "github.com/Fouad192/Elagi-Backend/controllers/cart"
	favoriteControllers "github.com/Fouad192/Elagi-Backend/controllers/favorites"
	feedbackControllers "github.com/Fouad192/Elagi-Backend/controllers/feedback"
	rareControllers "github.com/Fouad192/Elagi-Backend/controllers/rare"
	"github.com/Fouad192/Elagi-Backend/middleware"
)

// SetupUserRoutes registers the JWT-protected user endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, store *cache.Store) {
	protected := r.Group("/")
	protected.Use(middleware.ValidateToken(store))
	{
		cart := protected.Group("/cart")
		{
			cart.POST("/add", cartControllers.AddToCartHandler(db))
			cart.GET("", cartControllers.GetCartHandler(db))
			cart.GET("/quantity", cartControllers.GetCartQuantityHandler(db))
			cart.PATCH("/:cartItemID", cartControllers.UpdateQuantityHandler(db))
			cart.DELETE("/clear", cartControllers.ClearCartHandler(db))
			cart.DELETE("/:cartItemID", cartControllers.RemoveItemHandler(db))
		}

		favorites := protected.Group("/favorites")
		{
			favorites.POST("/add/:productID", favoriteControllers.AddFavorite(db))
			favorites.GET("", favoriteControllers.ListFavorites(db))
			favorites.DELETE("/clear", favoriteControllers.ClearFavorites(db))
			favorites.DELETE("/remove/:productID", favoriteControllers.RemoveFavorite(db))
		}

		protected.POST("/store-rare-medicine", rareControllers.StoreRareMedicineHandler(db))

		protected.POST("/feedback", feedbackControllers.StoreFeedbackHandler(db))
		protected.GET("/feedback", feedbackControllers.ListFeedbackHandler(db))
	}
}
