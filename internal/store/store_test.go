package store

import (
	"path/filepath"
	"testing"
	"time"

	"stocksync/internal/database"
	"stocksync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New("sqlite://" + filepath.Join(t.TempDir(), "stocksync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db.DB)
}

func TestFindProductByExternalID(t *testing.T) {
	s := newTestStore(t)

	found, err := s.FindProductByExternalID("wc", "1001")
	require.NoError(t, err)
	assert.Nil(t, found)

	product := &models.Product{Channel: "wc", ExternalID: "1001", Title: "Key A", Price: 2}
	require.NoError(t, s.CreateSimpleProduct(product))
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, models.TypeSimple, product.Type)

	found, err = s.FindProductByExternalID("wc", "1001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, product.ID, found.ID)

	// identifiers are namespaced per channel
	found, err = s.FindProductByExternalID("ebay", "1001")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestVariableProductRoundTrip(t *testing.T) {
	s := newTestStore(t)

	parent := &models.Product{
		Channel:    "ebay",
		ExternalID: "E100",
		Title:      "Keycap Set",
		Price:      5,
		Attributes: map[string][]string{"key": {"Left"}},
	}
	require.NoError(t, s.CreateVariableProduct(parent))
	assert.Equal(t, models.TypeVariable, parent.Type)

	parent.Attributes["key"] = append(parent.Attributes["key"], "Right")
	require.NoError(t, s.SaveProduct(parent))

	require.NoError(t, s.CreateVariation(&models.Variation{
		ProductID:  parent.ID,
		Price:      5,
		Attributes: map[string]string{"key": "Left"},
	}))
	require.NoError(t, s.CreateVariation(&models.Variation{
		ProductID:  parent.ID,
		Price:      5.5,
		Attributes: map[string]string{"key": "Right"},
	}))

	reloaded, err := s.GetProduct(parent.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Left", "Right"}, reloaded.Attributes["key"])

	variations, err := s.VariationsOf(parent.ID)
	require.NoError(t, err)
	assert.Len(t, variations, 2)
}

func TestOrderExistsAndCreate(t *testing.T) {
	s := newTestStore(t)

	exists, err := s.OrderExists("wc", "100")
	require.NoError(t, err)
	assert.False(t, exists)

	order := &models.Order{
		Channel:     "wc",
		ExternalID:  "100",
		Status:      "completed",
		Billing:     models.Address{FirstName: "Jane", LastName: "Doe"},
		DateCreated: time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: "p1", Quantity: 1, Total: 2},
		},
		ShippingTotal: 1.5,
		Total:         3.5,
	}
	require.NoError(t, s.CreateOrder(order))

	exists, err = s.OrderExists("wc", "100")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOrdersBetween(t *testing.T) {
	s := newTestStore(t)

	makeOrder := func(id string, date time.Time, status string) {
		require.NoError(t, s.CreateOrder(&models.Order{
			Channel:     "wc",
			ExternalID:  id,
			Status:      status,
			DateCreated: date,
		}))
	}

	makeOrder("1", time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), "completed")
	makeOrder("2", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), "completed")
	makeOrder("3", time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC), "refunded")

	orders, err := s.OrdersBetween(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "1", orders[0].ExternalID)
}
