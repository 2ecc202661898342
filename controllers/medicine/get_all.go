package medicineControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// pageSize matches the storefront grid.
const pageSize = 12

// GET /products?page=N
func GetMedicines(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		var total int64
		if err := db.Model(&models.Medicine{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		var medicines []models.Medicine
		if err := db.Order("id").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		lastPage := int((total + pageSize - 1) / pageSize)
		if lastPage < 1 {
			lastPage = 1
		}

		c.JSON(http.StatusOK, gin.H{
			"data":         medicines,
			"current_page": page,
			"per_page":     pageSize,
			"total":        total,
			"last_page":    lastPage,
		})
	}
}

// GET /products/category/:categorySlug
func GetMedicinesByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("categorySlug")

		var medicines []models.Medicine
		if err := db.Where("category = ?", slug).Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		c.JSON(http.StatusOK, medicines)
	}
}
