package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Line1     string `json:"address_line_1"`
	Line2     string `json:"address_line_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
}

// Order is created once from a group of import rows sharing an order
// number and never updated afterwards. ExternalID carries the channel
// order number used for idempotent re-import checks.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey"`
	Channel       string      `json:"channel" gorm:"not null;index:idx_orders_external,unique"`
	ExternalID    string      `json:"external_id" gorm:"not null;index:idx_orders_external,unique"`
	Status        string      `json:"status" gorm:"default:completed"`
	Billing       Address     `json:"billing" gorm:"embedded;embeddedPrefix:billing_"`
	Shipping      Address     `json:"shipping" gorm:"embedded;embeddedPrefix:shipping_"`
	Items         []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	FeeName       *string     `json:"fee_name"`
	FeeTotal      float64     `json:"fee_total"`
	ShippingTotal float64     `json:"shipping_total"`
	Total         float64     `json:"total"`
	DateCreated   time.Time   `json:"date_created"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	OrderID     string    `json:"order_id" gorm:"not null;index"`
	ProductID   string    `json:"product_id" gorm:"not null"`
	VariationID *string   `json:"variation_id"`
	Quantity    int       `json:"quantity"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
