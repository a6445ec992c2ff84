package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quantity bounds for a single sale record.
const (
	MinSaleQuantity = 1
	MaxSaleQuantity = 1_000_000
)

// Sale records a single transaction of a product sold to a customer.
// UnitPriceAtSale is a historical fact captured at transaction time and is
// immutable once set, independent of the product's current price.
type Sale struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPriceAtSale int64     `gorm:"not null" json:"unit_price_at_sale"` // Stored in cents
	SoldAt          time.Time `gorm:"not null;index" json:"sold_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// TotalCents returns the line total in cents. The total is always computed,
// never stored.
func (s *Sale) TotalCents() int64 {
	return s.UnitPriceAtSale * int64(s.Quantity)
}

// GetUnitPriceAtSaleDecimal returns the snapshot price as a decimal
func (s *Sale) GetUnitPriceAtSaleDecimal() float64 {
	return float64(s.UnitPriceAtSale) / 100
}

// GetTotalDecimal returns the computed line total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.TotalCents()) / 100
}

// SaleJSON is a helper struct for JSON marshaling with decimal prices
type SaleJSON struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	ProductID       uuid.UUID `json:"product_id"`
	Quantity        int       `json:"quantity"`
	UnitPriceAtSale float64   `json:"unit_price_at_sale"`
	Total           float64   `json:"total"`
	SoldAt          time.Time `json:"sold_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Customer        *Customer `json:"customer,omitempty"`
	Product         *Product  `json:"product,omitempty"`
}

// MarshalJSON converts Sale to JSON with decimal prices and the computed total
func (s Sale) MarshalJSON() ([]byte, error) {
	return json.Marshal(SaleJSON{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		ProductID:       s.ProductID,
		Quantity:        s.Quantity,
		UnitPriceAtSale: s.GetUnitPriceAtSaleDecimal(),
		Total:           s.GetTotalDecimal(),
		SoldAt:          s.SoldAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Customer:        s.Customer,
		Product:         s.Product,
	})
}
