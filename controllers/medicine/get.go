package medicineControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// GET /products/:id
func GetMedicineByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine ID"})
			return
		}

		var medicine models.Medicine
		if err := db.Preload("Alternative").First(&medicine, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medicine"})
			return
		}

		c.JSON(http.StatusOK, medicine)
	}
}
