package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"` // opaque tag ("KG", "G", ...), never converted
	BuyingRate  decimal.Decimal `json:"buying_rate"`
	SellingRate decimal.Decimal `json:"selling_rate"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AddProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit" binding:"required"`
	BuyingRate  decimal.Decimal  `json:"buying_rate"`
	SellingRate *decimal.Decimal `json:"selling_rate,omitempty"` // defaults to 1.2x buying rate
}
