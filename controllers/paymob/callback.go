package paymobControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Fouad192/Elagi-Backend/controllers/order"
	"github.com/Fouad192/Elagi-Backend/models"
)

// paymentStatusSuccess is the sentinel the gateway sends on a paid order.
const paymentStatusSuccess = "SUCCESS"

// POST /payment/callback
//
// The gateway reports the outcome of a hosted payment asynchronously. On
// success the order completes and the user's cart is finally cleared; on
// anything else the order moves to payment_failed. An unknown order id is
// reported and changes nothing.
func HandleCallback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status  string `json:"status" binding:"required"`
			OrderID uint   `json:"order_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status and order_id are required"})
			return
		}

		var order models.Order
		if err := db.First(&order, req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("payment callback: order not found: %d", req.OrderID)
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}

		// Statuses only move forward; a late or duplicate callback for an
		// already settled order changes nothing.
		if order.Status != models.OrderStatusPending {
			c.JSON(http.StatusOK, gin.H{"message": "Order already processed"})
			return
		}

		if req.Status == paymentStatusSuccess {
			if err := db.Model(&order).Update("status", models.OrderStatusCompleted).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
			if err := db.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error; err != nil {
				log.Printf("payment callback: failed to clear cart for user %d: %v", order.UserID, err)
			}
			order.Status = models.OrderStatusCompleted
			orderControllers.BroadcastOrder(order)

			c.JSON(http.StatusOK, gin.H{"message": "Payment successful, order processed"})
			return
		}

		if err := db.Model(&order).Update("status", models.OrderStatusPaymentFailed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		order.Status = models.OrderStatusPaymentFailed
		orderControllers.BroadcastOrder(order)

		c.JSON(http.StatusOK, gin.H{"error": "Payment failed"})
	}
}

// GET /check-payment-status/:orderID
func CheckPaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Payment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": order.Status})
	}
}
