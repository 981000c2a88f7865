package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	StatusPreparing = "Preparing"
	StatusServed    = "Served"
	StatusPaid      = "Paid"
	StatusCancelled = "Cancelled"
)

const (
	PaymentCash       = "Cash"
	PaymentDebitCard  = "Debit Card"
	PaymentCreditCard = "Credit Card"
	PaymentCheck      = "Check"
)

// OrderStatuses lists the recognized statuses in display order.
var OrderStatuses = []string{StatusPreparing, StatusServed, StatusPaid, StatusCancelled}

type Order struct {
	ID        string        `json:"id"`
	Slug      string        `json:"slug"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"created_at"`
	Metadata  OrderMetadata `json:"metadata"`
}

type OrderMetadata struct {
	TableNumber   string `json:"table_number,omitempty"`
	Items         string `json:"items,omitempty"`
	TotalAmount   string `json:"total_amount,omitempty"`
	Status        string `json:"status,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	OrderDate     string `json:"order_date,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// OrderLineItem is the snapshot of one product within a persisted order.
// The slice is stored as JSON text in the order's items metadata field.
type OrderLineItem struct {
	ProductID    string  `json:"productId" validate:"required"`
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	Price        float64 `json:"price"`
	Subtotal     float64 `json:"subtotal"`
}

// OrderItem is one cart entry: a product with its working quantity and
// subtotal. Carts are transient, only the derived line items are persisted.
type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Timestamp is the order's recorded order date, falling back to the record
// creation time when the metadata field is absent or malformed.
func (o Order) Timestamp() time.Time {
	if o.Metadata.OrderDate != "" {
		if t, err := time.Parse(time.RFC3339, o.Metadata.OrderDate); err == nil {
			return t
		}
	}
	return o.CreatedAt
}

// Total returns the parsed total amount, 0 when missing or malformed.
func (o Order) Total() float64 {
	return ParseAmount(o.Metadata.TotalAmount)
}

// EffectiveStatus defaults to Preparing when the record carries no status.
func (o Order) EffectiveStatus() string {
	if o.Metadata.Status == "" {
		return StatusPreparing
	}
	return o.Metadata.Status
}

// EffectivePayment defaults to Cash when the record carries no payment method.
func (o Order) EffectivePayment() string {
	if o.Metadata.PaymentMethod == "" {
		return PaymentCash
	}
	return o.Metadata.PaymentMethod
}

// LineItems deserializes the embedded items payload. A malformed payload is
// a reported error, never a crash; an absent payload is an empty slice.
func (o Order) LineItems() ([]OrderLineItem, error) {
	return ParseOrderLineItems(o.Metadata.Items)
}

func ParseOrderLineItems(raw string) ([]OrderLineItem, error) {
	if raw == "" {
		return []OrderLineItem{}, nil
	}
	var items []OrderLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("malformed order items payload: %v", err)
	}
	return items, nil
}

func MarshalOrderLineItems(items []OrderLineItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
