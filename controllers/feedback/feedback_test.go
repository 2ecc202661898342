package feedbackControllers

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
	require.NoError(t, db.AutoMigrate(&models.Contact{}, &models.Feedback{}))
	return db
}

func feedbackRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/contact/save", StoreContactHandler(db))
	r.POST("/feedback", StoreFeedbackHandler(db))
	r.GET("/feedback", ListFeedbackHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStoreContact(t *testing.T) {
	db := setupTestDB(t)
	r := feedbackRouter(db)

	w := postJSON(t, r, "/contact/save", gin.H{
		"name": "Ahmed", "email": "ahmed@gmail.com", "message": "Do you deliver to Giza?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var contact models.Contact
	require.NoError(t, db.First(&contact).Error)
	require.Equal(t, "Do you deliver to Giza?", contact.Message)

	// Missing message is rejected.
	w = postJSON(t, r, "/contact/save", gin.H{"name": "Ahmed", "email": "ahmed@gmail.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreFeedbackRatingBounds(t *testing.T) {
	db := setupTestDB(t)
	r := feedbackRouter(db)

	for _, rating := range []int{0, 6, -1} {
		w := postJSON(t, r, "/feedback", gin.H{
			"name": "Ahmed", "email": "ahmed@gmail.com", "feedback": "meh", "rating": rating,
		})
		require.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
	}

	w := postJSON(t, r, "/feedback", gin.H{
		"name": "Ahmed", "email": "ahmed@gmail.com", "feedback": "Fast delivery", "rating": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var feedback models.Feedback
	require.NoError(t, db.First(&feedback).Error)
	require.Equal(t, 5, feedback.Rating)
}

func TestListFeedback(t *testing.T) {
	db := setupTestDB(t)
	r := feedbackRouter(db)

	postJSON(t, r, "/feedback", gin.H{"name": "A", "email": "a@gmail.com", "feedback": "first", "rating": 4})
	postJSON(t, r, "/feedback", gin.H{"name": "B", "email": "b@gmail.com", "feedback": "second", "rating": 2})

	req := httptest.NewRequest(http.MethodGet, "/feedback", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
}
