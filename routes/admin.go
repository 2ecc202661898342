package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	medicineControllers "github.com/Fouad192/Elagi-Backend/controllers/medicine"
	"github.com/Fouad192/Elagi-Backend/middleware"
)

// SetupAdminRoutes registers API-key-protected back-office endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/medicines/export", medicineControllers.ExportMedicinesToExcel(db))
	}
}
