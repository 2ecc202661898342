package prescriptionControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
	"github.com/Fouad192/Elagi-Backend/ocr"
)

// Prescription lines look like "- Paracetamol 500mg"; the dosage suffix is
// what separates a medicine line from free text.
var prescriptionLineRe = regexp.MustCompile(`-\s*([\w\s]+)\s\d+mg`)

type FoundMedicine struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
	Status      string `json:"status"`
}

type AlternativeResult struct {
	NotFoundName string         `json:"notFoundName"`
	Alternative  *FoundMedicine `json:"alternative"`
}

type ScanResult struct {
	Found                   []FoundMedicine     `json:"found"`
	NotFoundAndAlternatives []AlternativeResult `json:"notFoundAndAlternatives"`
}

// ExtractMedicineNames pulls unique medicine names out of OCR text.
func ExtractMedicineNames(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "-") {
			continue
		}
		m := prescriptionLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ScanPrescriptionText resolves each extracted name against the catalog.
// An in-stock match lands in Found; otherwise the medicine's substitute
// (direct, or any catalog entry whose substitute carries that name) is
// offered when it has stock.
func ScanPrescriptionText(db *gorm.DB, text string) (*ScanResult, error) {
	result := &ScanResult{
		Found:                   []FoundMedicine{},
		NotFoundAndAlternatives: []AlternativeResult{},
	}

	for _, name := range ExtractMedicineNames(text) {
		var medicine models.Medicine
		err := db.Preload("Alternative").Where("name = ?", name).First(&medicine).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		known := err == nil

		if known && medicine.Stock > 0 {
			result.Found = append(result.Found, FoundMedicine{
				Name:        medicine.Name,
				Description: medicine.Description,
				Stock:       medicine.Stock,
				Status:      "Available",
			})
			continue
		}

		var alternative *models.Medicine
		if known && medicine.Alternative != nil {
			alternative = medicine.Alternative
		} else {
			var candidate models.Medicine
			sub := db.Model(&models.Medicine{}).Select("id").Where("name = ?", name)
			if err := db.Where("alternative_medicine_id IN (?)", sub).First(&candidate).Error; err == nil {
				alternative = &candidate
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}

		entry := AlternativeResult{NotFoundName: name}
		if alternative != nil && alternative.Stock > 0 {
			entry.Alternative = &FoundMedicine{
				Name:        alternative.Name,
				Description: alternative.Description,
				Stock:       alternative.Stock,
				Status:      "Available as an alternative",
			}
		}
		result.NotFoundAndAlternatives = append(result.NotFoundAndAlternatives, entry)
	}

	return result, nil
}

func uploadsDir() string {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func saveUpload(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	dir := uploadsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// POST /upload-prescription
func UploadPrescriptionHandler(db *gorm.DB, extractor ocr.TextExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := saveUpload(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A prescription image is required"})
			return
		}

		text, err := extractor.ExtractText(c.Request.Context(), path)
		if err != nil {
			log.Printf("upload-prescription: OCR failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OCR processing failed"})
			return
		}

		result, err := ScanPrescriptionText(db, text)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan prescription"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// POST /upload-medicalTest
func UploadMedicalTestHandler(analyzer ocr.LabAnalyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := saveUpload(c, "file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A lab-result file is required"})
			return
		}

		report, err := analyzer.Analyze(c.Request.Context(), path)
		if err != nil {
			log.Printf("upload-medicalTest: analysis failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lab result analysis failed"})
			return
		}

		c.Data(http.StatusOK, "application/json", report)
	}
}
