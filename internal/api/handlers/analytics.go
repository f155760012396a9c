package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"stocksync/internal/logger"
	"stocksync/internal/models"
	"stocksync/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalyticsHandler serves the read-side sales reports the dashboard
// consumes. It only ever reads what the importer wrote.
type AnalyticsHandler struct {
	db     *gorm.DB
	store  *store.Store
	logger *logger.Logger
}

func NewAnalyticsHandler(db *gorm.DB, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		db:     db,
		store:  store.New(db),
		logger: logger,
	}
}

// Shipping sums the shipping totals of completed orders in one month.
func (h *AnalyticsHandler) Shipping(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	orders, err := h.store.OrdersBetween(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	total := 0.0
	for _, order := range orders {
		total += order.ShippingTotal
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

type heatmapEntry struct {
	Product struct {
		ProductID string `json:"product_id"`
		Title     string `json:"title"`
	} `json:"product"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Heatmap aggregates quantity and revenue per product over a trailing
// window. Line items reference the parent product, so variation sales
// roll up to their parent automatically.
func (h *AnalyticsHandler) Heatmap(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	orders, err := h.store.OrdersBetween(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	byProduct := make(map[string]*heatmapEntry)
	for _, order := range orders {
		for _, item := range order.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &heatmapEntry{}
				entry.Product.ProductID = item.ProductID
				byProduct[item.ProductID] = entry
			}
			entry.Count += item.Quantity
			entry.Total += item.Total
		}
	}

	titles := h.productTitles(productIDs(byProduct))
	values := make([]heatmapEntry, 0, len(byProduct))
	for id, entry := range byProduct {
		entry.Product.Title = titles[id]
		values = append(values, *entry)
	}

	sort.Slice(values, func(i, j int) bool {
		return values[i].Total < values[j].Total
	})

	c.JSON(http.StatusOK, values)
}

// Groups reports sales per product group: simple products counted under
// their title, variable products under each sold attribute value.
// Mirrors the stock dashboard's per-group keycap counts.
func (h *AnalyticsHandler) Groups(c *gin.Context) {
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	orders, err := h.store.OrdersBetween(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	products, variations, err := h.loadReferences(orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalog data"})
		return
	}

	counts := make(map[string]map[string]int)

	for _, order := range orders {
		for _, item := range order.Items {
			product, ok := products[item.ProductID]
			if !ok || product.ProductGroup == nil {
				continue
			}
			group := *product.ProductGroup
			if counts[group] == nil {
				counts[group] = make(map[string]int)
			}

			if item.VariationID == nil {
				counts[group][product.Title]++
				continue
			}

			variation, ok := variations[*item.VariationID]
			if !ok {
				continue
			}
			for _, value := range variation.Attributes {
				counts[group][cleanAttributeValue(value)]++
			}
		}
	}

	result := make(map[string][][2]interface{}, len(counts))
	for group, byKey := range counts {
		pairs := make([][2]interface{}, 0, len(byKey))
		for key, count := range byKey {
			pairs = append(pairs, [2]interface{}{key, count})
		}
		sort.Slice(pairs, func(i, j int) bool {
			return pairs[i][1].(int) > pairs[j][1].(int)
		})
		result[group] = pairs
	}

	c.JSON(http.StatusOK, result)
}

// History buckets one product's sold quantities by day.
func (h *AnalyticsHandler) History(c *gin.Context) {
	id := c.Param("id")

	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	orders, err := h.store.OrdersBetween(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	buckets := make(map[string]int)
	for _, order := range orders {
		day := order.DateCreated.Format("2006-01-02")
		for _, item := range order.Items {
			if item.ProductID == id {
				buckets[day] += item.Quantity
			}
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	history := make([][2]interface{}, 0, len(days))
	for _, day := range days {
		history = append(history, [2]interface{}{day, buckets[day]})
	}

	c.JSON(http.StatusOK, history)
}

func (h *AnalyticsHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", "2022-07-01"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", "2022-10-01"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// loadReferences batch-fetches the products and variations referenced
// by the orders' line items.
func (h *AnalyticsHandler) loadReferences(orders []models.Order) (map[string]models.Product, map[string]models.Variation, error) {
	ids := make([]string, 0)
	variationIDs := make([]string, 0)
	seenProducts := make(map[string]bool)

	for _, order := range orders {
		for _, item := range order.Items {
			if !seenProducts[item.ProductID] {
				seenProducts[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
			if item.VariationID != nil {
				variationIDs = append(variationIDs, *item.VariationID)
			}
		}
	}

	products := make(map[string]models.Product, len(ids))
	if len(ids) > 0 {
		var rows []models.Product
		if err := h.db.Find(&rows, "id IN ?", ids).Error; err != nil {
			return nil, nil, err
		}
		for _, row := range rows {
			products[row.ID] = row
		}
	}

	variations := make(map[string]models.Variation, len(variationIDs))
	if len(variationIDs) > 0 {
		var rows []models.Variation
		if err := h.db.Find(&rows, "id IN ?", variationIDs).Error; err != nil {
			return nil, nil, err
		}
		for _, row := range rows {
			variations[row.ID] = row
		}
	}

	return products, variations, nil
}

func (h *AnalyticsHandler) productTitles(ids []string) map[string]string {
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles
	}

	var rows []models.Product
	if err := h.db.Find(&rows, "id IN ?", ids).Error; err != nil {
		h.logger.Error("failed to fetch product titles: %v", err)
		return titles
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles
}

func productIDs(entries map[string]*heatmapEntry) []string {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	return ids
}

// cleanAttributeValue folds cosmetic suffixes out of attribute values
// so "space bar & clip" and "space bar" count as one line.
func cleanAttributeValue(value string) string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "& clip", "")
	value = strings.ReplaceAll(value, "+ clip", "")
	return strings.TrimSpace(value)
}
