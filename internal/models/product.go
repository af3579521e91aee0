package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is owned by the product-catalog collaborator, out of this
// core's scope; the core only reads it and mutates stock.
type Product struct {
	ID            uuid.UUID
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
