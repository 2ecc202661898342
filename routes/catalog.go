package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	feedbackControllers "github.com/Fouad192/Elagi-Backend/controllers/feedback"
	medicineControllers "github.com/Fouad192/Elagi-Backend/controllers/medicine"
	prescriptionControllers "github.com/Fouad192/Elagi-Backend/controllers/prescription"
	"github.com/Fouad192/Elagi-Backend/ocr"
)

// SetupCatalogRoutes registers the public catalog, upload and contact
// endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, extractor ocr.TextExtractor, analyzer ocr.LabAnalyzer) {
	r.GET("/products", medicineControllers.GetMedicines(db))
	r.GET("/products/:id", medicineControllers.GetMedicineByID(db))
	r.GET("/products/category/:categorySlug", medicineControllers.GetMedicinesByCategory(db))

	r.POST("/upload-prescription", prescriptionControllers.UploadPrescriptionHandler(db, extractor))
	r.POST("/upload-medicalTest", prescriptionControllers.UploadMedicalTestHandler(analyzer))

	r.POST("/contact/save", feedbackControllers.StoreContactHandler(db))
}
