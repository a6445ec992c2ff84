package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item. UnitPrice is the current price and may
// change over time; sales snapshot the price at transaction time instead of
// referencing this field.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	UnitPrice int64     `gorm:"default:0" json:"unit_price"` // Stored in cents
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetUnitPriceDecimal returns the current unit price as a decimal (for display)
func (p *Product) GetUnitPriceDecimal() float64 {
	return float64(p.UnitPrice) / 100
}

// SetUnitPriceFromDecimal sets the current unit price from a decimal value
func (p *Product) SetUnitPriceFromDecimal(price float64) {
	p.UnitPrice = int64(price*100 + 0.5)
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"` // Decimal value for JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.GetUnitPriceDecimal(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}
