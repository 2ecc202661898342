package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	paymobControllers "github.com/Fouad192/Elagi-Backend/controllers/paymob"
	"github.com/Fouad192/Elagi-Backend/mailer"
	"github.com/Fouad192/Elagi-Backend/ocr"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(
	r *gin.Engine,
	db *gorm.DB,
	store *cache.Store,
	mail mailer.Mailer,
	pay *paymobControllers.Client,
	extractor ocr.TextExtractor,
	analyzer ocr.LabAnalyzer,
) {
	// Public auth + account routes
	SetupAuthRoutes(r, db, store, mail)

	// Public catalog, uploads and contact
	SetupCatalogRoutes(r, db, extractor, analyzer)

	// JWT-protected user routes (cart, favorites, rare medicines, feedback)
	SetupUserRoutes(r, db, store)

	// Checkout, orders and payment gateway routes
	SetupOrderRoutes(r, db, store, pay)

	// API-key-protected admin routes
	SetupAdminRoutes(r, db)
}
