package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductType string

const (
	TypeSimple   ProductType = "simple"
	TypeVariable ProductType = "variable"
)

// Product is a catalog entry created by the importer. ExternalID is the
// channel-native item number and is unique within a channel; dedup on
// re-import keys off it.
type Product struct {
	ID           string              `json:"id" gorm:"primaryKey"`
	Channel      string              `json:"channel" gorm:"not null;index:idx_products_external,unique"`
	ExternalID   string              `json:"external_id" gorm:"not null;index:idx_products_external,unique"`
	Title        string              `json:"title" gorm:"not null"`
	Price        float64             `json:"price"`
	Type         ProductType         `json:"type" gorm:"default:simple"`
	ProductGroup *string             `json:"product_group"`
	Attributes   map[string][]string `json:"attributes" gorm:"serializer:json"`
	Variations   []Variation         `json:"variations,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// Variation is one concrete attribute combination of a variable product.
// Attribute keys are stored lowercased with spaces removed.
type Variation struct {
	ID         string            `json:"id" gorm:"primaryKey"`
	ProductID  string            `json:"product_id" gorm:"not null;index"`
	Price      float64           `json:"price"`
	Attributes map[string]string `json:"attributes" gorm:"serializer:json"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (v *Variation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
