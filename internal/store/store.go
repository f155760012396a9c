package store

import (
	"fmt"
	"time"

	"stocksync/internal/models"

	"gorm.io/gorm"
)

// Store is the catalog and order store the importer writes into and the
// analytics API reads from. All lookups the importer performs within a
// run see earlier writes from the same run.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindProductByExternalID resolves a channel item number to a product.
// Returns nil when no product carries that identifier.
func (s *Store) FindProductByExternalID(channel, itemNumber string) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("channel = ? AND external_id = ?", channel, itemNumber).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %s/%s: %w", channel, itemNumber, err)
	}
	return &product, nil
}

func (s *Store) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return &product, nil
}

func (s *Store) CreateSimpleProduct(product *models.Product) error {
	product.Type = models.TypeSimple
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product %q: %w", product.Title, err)
	}
	return nil
}

func (s *Store) CreateVariableProduct(product *models.Product) error {
	product.Type = models.TypeVariable
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create variable product %q: %w", product.Title, err)
	}
	return nil
}

// SaveProduct persists updated attribute definitions on a parent product.
func (s *Store) SaveProduct(product *models.Product) error {
	if err := s.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ID, err)
	}
	return nil
}

func (s *Store) CreateVariation(variation *models.Variation) error {
	if err := s.db.Create(variation).Error; err != nil {
		return fmt.Errorf("failed to create variation for product %s: %w", variation.ProductID, err)
	}
	return nil
}

func (s *Store) VariationsOf(productID string) ([]models.Variation, error) {
	var variations []models.Variation
	if err := s.db.Where("product_id = ?", productID).Find(&variations).Error; err != nil {
		return nil, fmt.Errorf("failed to list variations of %s: %w", productID, err)
	}
	return variations, nil
}

func (s *Store) OrderExists(channel, orderNumber string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Order{}).
		Where("channel = ? AND external_id = ?", channel, orderNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check order %s/%s: %w", channel, orderNumber, err)
	}
	return count > 0, nil
}

// CreateOrder persists the order together with its line items.
func (s *Store) CreateOrder(order *models.Order) error {
	if err := s.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order %s: %w", order.ExternalID, err)
	}
	return nil
}

// OrdersBetween returns completed orders created in [from, to) with
// their line items loaded.
func (s *Store) OrdersBetween(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("status = ? AND date_created >= ? AND date_created < ?", "completed", from, to).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
