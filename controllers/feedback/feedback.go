package feedbackControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// POST /contact/save
func StoreContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name    string `json:"name" binding:"required,max=255"`
			Email   string `json:"email" binding:"required,email,max=255"`
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		contact := models.Contact{Name: req.Name, Email: req.Email, Message: req.Message}
		if err := db.Create(&contact).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully!", "data": contact})
	}
}

// POST /feedback
func StoreFeedbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Feedback string `json:"feedback" binding:"required"`
			Rating   int    `json:"rating" binding:"required,min=1,max=5"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		feedback := models.Feedback{
			Name:     req.Name,
			Email:    req.Email,
			Feedback: req.Feedback,
			Rating:   req.Rating,
		}
		if err := db.Create(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Feedback received", "feedback": feedback})
	}
}

// GET /feedback
func ListFeedbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var feedback []models.Feedback
		if err := db.Order("created_at DESC").Find(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
			return
		}

		c.JSON(http.StatusOK, feedback)
	}
}
