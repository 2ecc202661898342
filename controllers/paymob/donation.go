package paymobControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// POST /donate
//
// A donation reuses the checkout handshake for a standalone amount not tied
// to any order. The durable row tracks the attempt; it stays pending until
// the gateway confirms.
func InitiateDonationHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Amount    float64 `json:"amount" binding:"required,min=1"`
			DonorName string  `json:"donor_name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A donation amount of at least 1 is required"})
			return
		}

		donation := models.Donation{
			DonorName: req.DonorName,
			Amount:    req.Amount,
			Status:    models.DonationStatusPending,
		}
		// Donations are open to anonymous visitors; attribute the row only
		// when a bearer token already put a user in the context.
		if userID := c.GetUint("user_id"); userID != 0 {
			donation.UserID = &userID
		}
		if err := db.Create(&donation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record donation"})
			return
		}

		paymentURL, err := client.CreatePayment(c.Request.Context(), req.Amount)
		if err != nil {
			log.Printf("donation: paymob handshake failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment service is unavailable. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"paymentUrl": paymentURL})
	}
}

// POST /donation/callback
func HandleDonationCallback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status     string `json:"status" binding:"required"`
			DonationID uint   `json:"donation_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status and donation_id are required"})
			return
		}

		var donation models.Donation
		if err := db.First(&donation, req.DonationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load donation"})
			return
		}

		status := models.DonationStatusFailed
		if req.Status == paymentStatusSuccess {
			status = models.DonationStatusCompleted
		}
		if err := db.Model(&donation).Update("status", status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation"})
			return
		}

		if status == models.DonationStatusCompleted {
			c.JSON(http.StatusOK, gin.H{"message": "Donation received. Thank you!"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"error": "Donation payment failed"})
	}
}
