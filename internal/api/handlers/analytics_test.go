package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stocksync/internal/database"
	"stocksync/internal/logger"
	"stocksync/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New("sqlite://" + filepath.Join(t.TempDir(), "stocksync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New("error")
	analytics := NewAnalyticsHandler(db.DB, log)
	products := NewProductHandler(db.DB, log)

	router := gin.New()
	router.GET("/api/v1/products", products.List)
	router.GET("/api/v1/products/:id", products.Get)
	router.GET("/api/v1/analytics/shipping", analytics.Shipping)
	router.GET("/api/v1/analytics/heatmap", analytics.Heatmap)
	router.GET("/api/v1/analytics/groups", analytics.Groups)
	router.GET("/api/v1/analytics/products/:id/history", analytics.History)

	return router, db.DB
}

func seedSales(t *testing.T, db *gorm.DB, date time.Time) (simple models.Product, parent models.Product) {
	t.Helper()

	group := "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179"

	simple = models.Product{
		Channel: "wc", ExternalID: "1001", Title: "Key A2141 Esc",
		Price: 2, Type: models.TypeSimple, ProductGroup: &group,
	}
	require.NoError(t, db.Create(&simple).Error)

	parent = models.Product{
		Channel: "wc", ExternalID: "1002", Title: "Key A2141 Arrows",
		Price: 3, Type: models.TypeVariable, ProductGroup: &group,
		Attributes: map[string][]string{"key": {"Left Arrow"}},
	}
	require.NoError(t, db.Create(&parent).Error)

	variation := models.Variation{
		ProductID: parent.ID, Price: 3,
		Attributes: map[string]string{"key": "Left Arrow & Clip"},
	}
	require.NoError(t, db.Create(&variation).Error)

	order := models.Order{
		Channel: "wc", ExternalID: "100", Status: "completed",
		DateCreated:   date,
		ShippingTotal: 1.5,
		Total:         9.5,
		Items: []models.OrderItem{
			{ProductID: simple.ID, Quantity: 1, Total: 2},
			{ProductID: parent.ID, VariationID: &variation.ID, Quantity: 2, Total: 6},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	return simple, parent
}

func get(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestShippingTotalsForMonth(t *testing.T) {
	router, db := newTestRouter(t)
	seedSales(t, db, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))

	response := get(t, router, "/api/v1/analytics/shipping?month=1&year=2023")
	require.Equal(t, http.StatusOK, response.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Equal(t, 1.5, body["total"])

	// a month with no orders sums to zero
	response = get(t, router, "/api/v1/analytics/shipping?month=3&year=2023")
	require.Equal(t, http.StatusOK, response.Code)
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
	assert.Zero(t, body["total"])
}

func TestShippingRejectsBadMonth(t *testing.T) {
	router, _ := newTestRouter(t)

	response := get(t, router, "/api/v1/analytics/shipping?month=13&year=2023")
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestHeatmapRollsUpByProduct(t *testing.T) {
	router, db := newTestRouter(t)
	simple, parent := seedSales(t, db, time.Now().AddDate(0, 0, -2))

	response := get(t, router, "/api/v1/analytics/heatmap?days=30")
	require.Equal(t, http.StatusOK, response.Code)

	var entries []struct {
		Product struct {
			ProductID string `json:"product_id"`
			Title     string `json:"title"`
		} `json:"product"`
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &entries))
	require.Len(t, entries, 2)

	// ascending by revenue
	assert.Equal(t, simple.ID, entries[0].Product.ProductID)
	assert.Equal(t, 2.0, entries[0].Total)
	assert.Equal(t, parent.ID, entries[1].Product.ProductID)
	assert.Equal(t, 6.0, entries[1].Total)
	assert.Equal(t, 2, entries[1].Count)
	assert.Equal(t, "Key A2141 Arrows", entries[1].Product.Title)
}

func TestGroupsCountsAttributeSales(t *testing.T) {
	router, db := newTestRouter(t)
	seedSales(t, db, time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC))

	response := get(t, router, "/api/v1/analytics/groups?from=2022-07-01&to=2022-10-01")
	require.Equal(t, http.StatusOK, response.Code)

	var body map[string][][2]interface{}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))

	group := body["A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179"]
	require.Len(t, group, 2)

	keys := []string{group[0][0].(string), group[1][0].(string)}
	// the variation counts under its cleaned attribute value, the
	// simple product under its title
	assert.Contains(t, keys, "Key A2141 Esc")
	assert.Contains(t, keys, "left arrow")
}

func TestHistoryBucketsByDay(t *testing.T) {
	router, db := newTestRouter(t)
	_, parent := seedSales(t, db, time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC))

	response := get(t, router, "/api/v1/analytics/products/"+parent.ID+"/history?from=2022-07-01&to=2022-10-01")
	require.Equal(t, http.StatusOK, response.Code)

	var history [][2]interface{}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "2022-08-01", history[0][0].(string))
	assert.Equal(t, 2.0, history[0][1].(float64))
}

func TestProductListAndGet(t *testing.T) {
	router, db := newTestRouter(t)
	simple, parent := seedSales(t, db, time.Now())

	response := get(t, router, "/api/v1/products?search=Arrows")
	require.Equal(t, http.StatusOK, response.Code)

	var list struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, parent.ID, list.Data[0].ID)

	response = get(t, router, "/api/v1/products/"+simple.ID)
	require.Equal(t, http.StatusOK, response.Code)

	response = get(t, router, "/api/v1/products/nope")
	assert.Equal(t, http.StatusNotFound, response.Code)
}
