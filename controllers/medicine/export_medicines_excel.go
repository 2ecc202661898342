package medicineControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

// GET /admin/medicines/export downloads the whole catalog as a spreadsheet.
func ExportMedicinesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var medicines []models.Medicine
		if err := db.Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Medicines")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "NameAr", "Category", "CategoryAr",
			"Price", "Stock", "AlternativeMedicineID", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, m := range medicines {
			row := sheet.AddRow()
			row.AddCell().SetValue(m.ID)
			row.AddCell().SetValue(m.Name)
			row.AddCell().SetValue(m.NameAr)
			row.AddCell().SetValue(m.Category)
			row.AddCell().SetValue(m.CategoryAr)
			row.AddCell().SetValue(m.Price)
			row.AddCell().SetValue(m.Stock)
			if m.AlternativeMedicineID != nil {
				row.AddCell().SetValue(*m.AlternativeMedicineID)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(m.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=medicines.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
