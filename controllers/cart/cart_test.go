package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
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
	require.NoError(t, db.AutoMigrate(&models.Medicine{}, &models.CartItem{}))
	return db
}

func seedMedicine(t *testing.T, db *gorm.DB, name string, price float64) models.Medicine {
	t.Helper()
	m := models.Medicine{Name: name, Price: price, Stock: 100}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// cartTestRouter mounts the cart handlers behind a stub that plays the
// role of the auth middleware for the given user.
func cartTestRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	cart := r.Group("/cart")
	{
		cart.POST("/add", AddToCartHandler(db))
		cart.GET("", GetCartHandler(db))
		cart.GET("/quantity", GetCartQuantityHandler(db))
		cart.DELETE("/clear", ClearCartHandler(db))
		cart.PATCH("/:cartItemID", UpdateQuantityHandler(db))
		cart.DELETE("/:cartItemID", RemoveItemHandler(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartMergesDuplicateLines(t *testing.T) {
	db := setupTestDB(t)
	med := seedMedicine(t, db, "Aspirin", 5.99)

	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 2}))
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 3}))

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).Find(&items).Error)
	require.Len(t, items, 1, "repeated adds must merge into one line")
	require.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartIsolatedPerUser(t *testing.T) {
	db := setupTestDB(t)
	med := seedMedicine(t, db, "Aspirin", 5.99)

	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 2}))
	require.NoError(t, AddToCart(db, 2, AddToCartInput{ProductID: med.ID, Quantity: 7}))

	var items []models.CartItem
	require.NoError(t, db.Order("user_id").Find(&items).Error)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, 7, items[1].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"product_id": 999, "quantity": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Product does not exist")
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	med := seedMedicine(t, db, "Aspirin", 5.99)
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 2}))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).First(&item).Error)

	// Another user addressing the same row id sees not found.
	other := cartTestRouter(db, 2)
	w := doJSON(t, other, http.MethodPatch, "/cart/"+itoa(item.ID), gin.H{"quantity": 9})
	require.Equal(t, http.StatusNotFound, w.Code)

	owner := cartTestRouter(db, 1)
	w = doJSON(t, owner, http.MethodPatch, "/cart/"+itoa(item.ID), gin.H{"quantity": 9})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&item, item.ID).Error)
	require.Equal(t, 9, item.Quantity)
}

func TestRemoveItemScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	med := seedMedicine(t, db, "Aspirin", 5.99)
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 2}))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).First(&item).Error)

	other := cartTestRouter(db, 2)
	w := doJSON(t, other, http.MethodDelete, "/cart/"+itoa(item.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	owner := cartTestRouter(db, 1)
	w = doJSON(t, owner, http.MethodDelete, "/cart/"+itoa(item.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestClearCartOnlyTouchesOwnRows(t *testing.T) {
	db := setupTestDB(t)
	med := seedMedicine(t, db, "Aspirin", 5.99)
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 2}))
	require.NoError(t, AddToCart(db, 2, AddToCartInput{ProductID: med.ID, Quantity: 4}))

	r := cartTestRouter(db, 1)
	w := doJSON(t, r, http.MethodDelete, "/cart/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var remaining []models.CartItem
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, uint(2), remaining[0].UserID)
}

func TestCartQuantityEmptyCartIsZero(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db, 1)

	w := doJSON(t, r, http.MethodGet, "/cart/quantity", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Quantity int64 `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Zero(t, resp.Quantity)
}

func TestCartQuantitySumsAllLines(t *testing.T) {
	db := setupTestDB(t)
	aspirin := seedMedicine(t, db, "Aspirin", 5.99)
	ibuprofen := seedMedicine(t, db, "Ibuprofen", 7.99)
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: aspirin.ID, Quantity: 2}))
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: ibuprofen.ID, Quantity: 3}))

	r := cartTestRouter(db, 1)
	w := doJSON(t, r, http.MethodGet, "/cart/quantity", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Quantity int64 `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(5), resp.Quantity)
}

func TestGetCartPreloadsProduct(t *testing.T) {
	db := setupTestDB(t)
	med := seedMedicine(t, db, "Aspirin", 5.99)
	require.NoError(t, AddToCart(db, 1, AddToCartInput{ProductID: med.ID, Quantity: 2}))

	r := cartTestRouter(db, 1)
	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Aspirin", items[0].Product.Name)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
