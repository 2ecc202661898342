package favoriteControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// POST /favorites/add/:productID
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		productID, err := strconv.Atoi(c.Param("productID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var medicine models.Medicine
		if err := db.First(&medicine, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var existing models.Favorite
		err = db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "Already in favorites"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favorites"})
			return
		}

		fav := models.Favorite{UserID: userID, ProductID: uint(productID)}
		if err := db.Create(&fav).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to favorites"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
	}
}

// GET /favorites
func ListFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var favorites []models.Favorite
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}

		c.JSON(http.StatusOK, favorites)
	}
}

// DELETE /favorites/remove/:productID is idempotent.
func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		productID := c.Param("productID")

		if err := db.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.Favorite{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from favorites."})
	}
}

// DELETE /favorites/clear is idempotent.
func ClearFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		if err := db.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear favorites"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "All favorites cleared successfully"})
	}
}
