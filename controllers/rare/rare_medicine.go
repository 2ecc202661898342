package rareControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// POST /store-rare-medicine
//
// The submitter's name and phone come from the authenticated user row, not
// the request body.
func StoreRareMedicineHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req struct {
			Address      string `json:"address" binding:"required"`
			MedicineName string `json:"medicine_name" binding:"required"`
			Quantity     int    `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No authenticated user found"})
			return
		}

		request := models.RareMedicineRequest{
			Name:         user.Name,
			Phone:        user.Phone,
			Address:      req.Address,
			MedicineName: req.MedicineName,
			Quantity:     req.Quantity,
		}
		if err := db.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Request submitted successfully"})
	}
}
