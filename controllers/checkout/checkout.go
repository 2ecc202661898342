package checkoutControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	orderControllers "github.com/Fouad192/Elagi-Backend/controllers/order"
	paymobControllers "github.com/Fouad192/Elagi-Backend/controllers/paymob"
	"github.com/Fouad192/Elagi-Backend/models"
)

// checkoutLockTTL caps how long a crashed checkout can block its user.
const checkoutLockTTL = 30 * time.Second

var (
	ErrUnknownProduct = errors.New("checkout: unknown product")
	ErrCartMismatch   = errors.New("checkout: submitted line not in cart")
)

type CheckoutLine struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Address       string         `json:"address" binding:"required"`
	PaymentMethod string         `json:"paymentMethod" binding:"required,oneof=cash card"`
	CartItems     []CheckoutLine `json:"cartItems" binding:"required,min=1,dive"`
}

// PlaceOrder validates the submitted lines against the user's persisted
// cart, recomputes the total from live catalog prices, and creates the
// Order with its snapshot items in one transaction. Nothing persists if
// any item fails.
func PlaceOrder(db *gorm.DB, userID uint, req CheckoutRequest) (*models.Order, error) {
	var cartRows []models.CartItem
	if err := db.Where("user_id = ?", userID).Find(&cartRows).Error; err != nil {
		return nil, err
	}
	inCart := make(map[uint]int, len(cartRows))
	for _, row := range cartRows {
		inCart[row.ProductID] = row.Quantity
	}

	// The client-submitted list is not trusted: every line must match a
	// persisted cart row and may not ask for more than the cart holds.
	medicines := make(map[uint]models.Medicine, len(req.CartItems))
	for _, line := range req.CartItems {
		held, ok := inCart[line.ProductID]
		if !ok || line.Quantity > held {
			return nil, fmt.Errorf("%w: product %d", ErrCartMismatch, line.ProductID)
		}

		var medicine models.Medicine
		if err := db.First(&medicine, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrUnknownProduct, line.ProductID)
			}
			return nil, err
		}
		medicines[line.ProductID] = medicine
	}

	// Total from live catalog prices, summed exactly.
	total := decimal.Zero
	for _, line := range req.CartItems {
		price := decimal.NewFromFloat(medicines[line.ProductID].Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	method := models.PaymentMethod(req.PaymentMethod)
	order := models.Order{
		UserID:        userID,
		Address:       req.Address,
		PaymentMethod: method,
		TotalPrice:    total.InexactFloat64(),
		Status:        models.OrderStatusPending,
	}
	for _, line := range req.CartItems {
		medicine := medicines[line.ProductID]
		order.Items = append(order.Items, models.OrderItem{
			MedicineName:   medicine.Name,
			MedicineNameAr: medicine.NameAr,
			Quantity:       line.Quantity,
			Price:          medicine.Price,
			PaymentMethod:  method,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /checkout
func CheckoutHandler(db *gorm.DB, store *cache.Store, pay *paymobControllers.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout payload: " + err.Error()})
			return
		}

		// One checkout per user at a time; a double-submit cannot place
		// two orders.
		locked, err := store.AcquireCheckoutLock(c.Request.Context(), userID, checkoutLockTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed. Please try again."})
			return
		}
		if !locked {
			c.JSON(http.StatusConflict, gin.H{"error": "A checkout is already in progress"})
			return
		}
		defer store.ReleaseCheckoutLock(c.Request.Context(), userID)

		order, err := PlaceOrder(db, userID, req)
		switch {
		case errors.Is(err, ErrUnknownProduct), errors.Is(err, ErrCartMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			log.Printf("checkout: order placement failed for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order placement failed"})
			return
		}

		if order.PaymentMethod == models.PaymentMethodCard {
			// The cart survives until the payment callback confirms, so an
			// abandoned card payment can be retried.
			paymentURL, err := pay.CreatePayment(c.Request.Context(), order.TotalPrice)
			if err != nil {
				log.Printf("checkout: paymob handshake failed for order %d: %v", order.ID, err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "Payment service is unavailable. Please try again."})
				return
			}
			orderControllers.BroadcastOrder(*order)
			c.JSON(http.StatusOK, gin.H{"paymentUrl": paymentURL, "order_id": order.ID})
			return
		}

		// Cash: best-effort cart cleanup outside the order transaction.
		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			log.Printf("checkout: failed to clear cart for user %d: %v", userID, err)
		}
		orderControllers.BroadcastOrder(*order)
		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "order_id": order.ID})
	}
}
