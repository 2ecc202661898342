package prescriptionControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Medicine{}))
	return db
}

func TestExtractMedicineNames(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			"typical prescription",
			"Dr. Ahmed Clinic\n- Paracetamol 500mg\n- Ibuprofen 200mg\nTake after meals",
			[]string{"Paracetamol", "Ibuprofen"},
		},
		{
			"duplicates collapse",
			"- Aspirin 75mg\n- Aspirin 150mg",
			[]string{"Aspirin"},
		},
		{
			"multi word names",
			"- Vitamin D 1000mg",
			[]string{"Vitamin D"},
		},
		{
			"lines without dosage are skipped",
			"- shake well before use\nParacetamol 500mg",
			nil,
		},
		{
			"empty text",
			"",
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractMedicineNames(tc.text))
		})
	}
}

func TestScanPrescriptionText(t *testing.T) {
	db := setupTestDB(t)

	ibuprofen := models.Medicine{Name: "Ibuprofen", Description: "Pain relief", Stock: 8}
	require.NoError(t, db.Create(&ibuprofen).Error)
	aspirin := models.Medicine{Name: "Aspirin", Description: "Blood thinner", Stock: 0, AlternativeMedicineID: &ibuprofen.ID}
	require.NoError(t, db.Create(&aspirin).Error)
	paracetamol := models.Medicine{Name: "Paracetamol", Description: "Fever reducer", Stock: 3, AlternativeMedicineID: &aspirin.ID}
	require.NoError(t, db.Create(&paracetamol).Error)

	t.Run("in stock lands in found", func(t *testing.T) {
		result, err := ScanPrescriptionText(db, "- Paracetamol 500mg")
		require.NoError(t, err)
		require.Len(t, result.Found, 1)
		require.Equal(t, "Paracetamol", result.Found[0].Name)
		require.Equal(t, "Available", result.Found[0].Status)
		require.Equal(t, 3, result.Found[0].Stock)
		require.Empty(t, result.NotFoundAndAlternatives)
	})

	t.Run("out of stock offers direct alternative", func(t *testing.T) {
		result, err := ScanPrescriptionText(db, "- Aspirin 75mg")
		require.NoError(t, err)
		require.Empty(t, result.Found)
		require.Len(t, result.NotFoundAndAlternatives, 1)

		entry := result.NotFoundAndAlternatives[0]
		require.Equal(t, "Aspirin", entry.NotFoundName)
		require.NotNil(t, entry.Alternative)
		require.Equal(t, "Ibuprofen", entry.Alternative.Name)
		require.Equal(t, "Available as an alternative", entry.Alternative.Status)
	})

	t.Run("unknown name resolved through reverse link", func(t *testing.T) {
		// "Advil" is not in the catalog, but a catalog entry in stock
		// lists it as its substitute.
		advilSub := models.Medicine{Name: "Generic Ibuprofen", Description: "Substitute", Stock: 5}
		require.NoError(t, db.Create(&advilSub).Error)
		advil := models.Medicine{Name: "Advil", Stock: 0}
		require.NoError(t, db.Create(&advil).Error)
		require.NoError(t, db.Model(&advilSub).Update("alternative_medicine_id", advil.ID).Error)

		result, err := ScanPrescriptionText(db, "- Advil 200mg")
		require.NoError(t, err)
		require.Len(t, result.NotFoundAndAlternatives, 1)

		entry := result.NotFoundAndAlternatives[0]
		require.Equal(t, "Advil", entry.NotFoundName)
		require.NotNil(t, entry.Alternative)
		require.Equal(t, "Generic Ibuprofen", entry.Alternative.Name)
	})

	t.Run("nothing to offer", func(t *testing.T) {
		result, err := ScanPrescriptionText(db, "- Obscurol 10mg")
		require.NoError(t, err)
		require.Empty(t, result.Found)
		require.Len(t, result.NotFoundAndAlternatives, 1)
		require.Equal(t, "Obscurol", result.NotFoundAndAlternatives[0].NotFoundName)
		require.Nil(t, result.NotFoundAndAlternatives[0].Alternative)
	})

	t.Run("out of stock alternative is not offered", func(t *testing.T) {
		noStock := models.Medicine{Name: "Lisinopril", Stock: 0}
		require.NoError(t, db.Create(&noStock).Error)
		dry := models.Medicine{Name: "Metformin", Stock: 0, AlternativeMedicineID: &noStock.ID}
		require.NoError(t, db.Create(&dry).Error)

		result, err := ScanPrescriptionText(db, "- Metformin 500mg")
		require.NoError(t, err)
		require.Len(t, result.NotFoundAndAlternatives, 1)
		require.Nil(t, result.NotFoundAndAlternatives[0].Alternative)
	})
}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	return s.text, s.err
}

func multipartRequest(t *testing.T, path, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadPrescriptionHandler(t *testing.T) {
	t.Setenv("UPLOADS_DIR", t.TempDir())
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Medicine{Name: "Paracetamol", Stock: 3}).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload-prescription", UploadPrescriptionHandler(db, stubExtractor{text: "- Paracetamol 500mg"}))

	req := multipartRequest(t, "/upload-prescription", "image", "rx.jpg", []byte("fake-image"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result ScanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Found, 1)
	require.Equal(t, "Paracetamol", result.Found[0].Name)
}

func TestUploadPrescriptionRequiresImage(t *testing.T) {
	t.Setenv("UPLOADS_DIR", t.TempDir())
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload-prescription", UploadPrescriptionHandler(db, stubExtractor{}))

	// Wrong form field name.
	req := multipartRequest(t, "/upload-prescription", "document", "rx.jpg", []byte("fake"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
