package rareControllers

import (
	"bytes"
	"encoding/json"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RareMedicineRequest{}))
	return db
}

func rareRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/store-rare-medicine", StoreRareMedicineHandler(db))
	return r
}

func postRare(t *testing.T, r *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/store-rare-medicine", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStoreRareMedicineCopiesContactFromUser(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Ahmed Fouad", Email: "ahmed@gmail.com", Phone: "01234567890", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := rareRouter(db, user.ID)
	w := postRare(t, r, gin.H{
		"address":       "12 Nile St, Cairo",
		"medicine_name": "Orphanol",
		"quantity":      2,
		// Contact fields in the body are ignored.
		"name":  "Spoofed Name",
		"phone": "00000000000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var req models.RareMedicineRequest
	require.NoError(t, db.First(&req).Error)
	require.Equal(t, "Ahmed Fouad", req.Name)
	require.Equal(t, "01234567890", req.Phone)
	require.Equal(t, "Orphanol", req.MedicineName)
	require.Equal(t, 2, req.Quantity)
}

func TestStoreRareMedicineValidation(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Name: "Ahmed", Email: "a@gmail.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	r := rareRouter(db, user.ID)

	cases := []gin.H{
		{"medicine_name": "Orphanol", "quantity": 1},          // missing address
		{"address": "a", "quantity": 1},                       // missing name
		{"address": "a", "medicine_name": "Orphanol"},         // missing quantity
		{"address": "a", "medicine_name": "X", "quantity": 0}, // zero quantity
	}
	for _, payload := range cases {
		w := postRare(t, r, payload)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	var count int64
	require.NoError(t, db.Model(&models.RareMedicineRequest{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestStoreRareMedicineUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	r := rareRouter(db, 42)

	w := postRare(t, r, gin.H{"address": "a", "medicine_name": "X", "quantity": 1})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
