package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a shipping/billing address. All four fields are required
// at checkout time.
type Address struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Complete reports whether every field is filled in.
func (a Address) Complete() bool {
	return a.PostalCode != "" && a.Street != "" && a.City != "" && a.State != ""
}

// User is the authenticated customer profile returned by the backend.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	IsAdmin bool     `json:"is_admin"`
	Address *Address `json:"address,omitempty"`
}

// Product is a catalog entry as listed by the backend.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Image          string          `json:"image,omitempty"`
	AlcoholContent float64         `json:"alcohol_content,omitempty"`
}

// CartItem is one line of the cart: a product plus its quantity.
type CartItem struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	Image          string          `json:"image,omitempty"`
	AlcoholContent float64         `json:"alcohol_content,omitempty"`
}

// Subtotal is unit price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CheckoutItem is the slimmed line item sent to the payment backend.
type CheckoutItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// CheckoutRequest is the snapshot submitted to the payment
// preference endpoint. It is built once at submission time and never
// mutated afterwards.
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items"`
	ShippingAddress Address        `json:"shipping_address"`
}

// Order status values as reported by the backend.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is read-only from the storefront's point of view; status
// transitions are performed by the admin backend.
type Order struct {
	ID              string          `json:"id"`
	Items           []CheckoutItem  `json:"items"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
