package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventory-pro/dashboard/internal/resource"
)

// TransactionType enumerates supported inventory movements.
type TransactionType string

const (
	// TransactionTypeStockIn represents goods received from a vendor.
	TransactionTypeStockIn TransactionType = "stock-in"
	// TransactionTypeStockOut represents goods sold to a customer.
	TransactionTypeStockOut TransactionType = "stock-out"
	// TransactionTypeAdjustment indicates manual corrections.
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// TransactionTypes lists the types the form offers, in display order.
var TransactionTypes = []TransactionType{TransactionTypeStockIn, TransactionTypeStockOut, TransactionTypeAdjustment}

// ErrUnknownType is returned for movements the backend has no route for.
var ErrUnknownType = errors.New("inventory: unknown transaction type")

// NormalizeType maps the backend's legacy purchase/sale names onto the
// stock-in/stock-out vocabulary.
func NormalizeType(raw string) TransactionType {
	switch t := strings.ToLower(strings.TrimSpace(raw)); t {
	case "purchase":
		return TransactionTypeStockIn
	case "sale":
		return TransactionTypeStockOut
	default:
		return TransactionType(t)
	}
}

// Transaction is one recorded stock movement.
type Transaction struct {
	resource.Rev
	ID          string       `json:"_id"`
	Type        string       `json:"type"`
	Product     resource.Ref `json:"product"`
	ProductName string       `json:"productName,omitempty"`
	Vendor      resource.Ref `json:"vendor"`
	Customer    resource.Ref `json:"customer"`
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"unitPrice"`
	Reference   string       `json:"reference,omitempty"`
	Note        string       `json:"note,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
}

// Key implements resource.Entity.
func (t Transaction) Key() string { return t.ID }

// Kind is the normalised type.
func (t Transaction) Kind() TransactionType { return NormalizeType(t.Type) }

// ProductLabel prefers the populated product name.
func (t Transaction) ProductLabel() string {
	if t.Product.Name != "" {
		return t.Product.Name
	}
	if t.ProductName != "" {
		return t.ProductName
	}
	return t.Product.ID
}

// Party is the vendor for stock-in and the customer for stock-out.
func (t Transaction) Party() string {
	switch t.Kind() {
	case TransactionTypeStockIn:
		return t.Vendor.Label()
	case TransactionTypeStockOut:
		return t.Customer.Label()
	}
	return ""
}

// Total is quantity times unit price.
func (t Transaction) Total() decimal.Decimal {
	return LineTotal(t.Quantity, t.UnitPrice)
}

// LineTotal multiplies in decimal so cents do not drift.
func LineTotal(quantity int, unitPrice float64) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(unitPrice)).Round(2)
}

// Draft is the transaction form.
type Draft struct {
	Rev       resource.Rev `form:"-"`
	ID        string       `form:"-"`
	Type      string       `form:"type" validate:"required,oneof=stock-in stock-out adjustment" label:"Type"`
	Product   string       `form:"product" validate:"required" label:"Product"`
	Vendor    string       `form:"vendor" validate:"required_if=Type stock-in" label:"Vendor"`
	Customer  string       `form:"customer" validate:"required_if=Type stock-out" label:"Customer"`
	Quantity  int          `form:"quantity" validate:"ne=0" label:"Quantity"`
	UnitPrice float64      `form:"unitPrice" validate:"gte=0" label:"Unit price"`
	Reference string       `form:"reference"`
	Note      string       `form:"note"`
}

// WithType switches the movement type and drops the party that no longer applies.
func (d Draft) WithType(raw string) Draft {
	d.Type = string(NormalizeType(raw))
	if d.Type != string(TransactionTypeStockIn) {
		d.Vendor = ""
	}
	if d.Type != string(TransactionTypeStockOut) {
		d.Customer = ""
	}
	return d
}

// Total is shown live in the form.
func (d Draft) Total() decimal.Decimal {
	return LineTotal(d.Quantity, d.UnitPrice)
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.ID }

// Payload implements listeditor.Draft.
func (d Draft) Payload() any {
	price := d.UnitPrice
	return Movement{
		Rev:       d.Rev,
		Type:      NormalizeType(d.Type),
		Product:   d.Product,
		Vendor:    d.Vendor,
		Customer:  d.Customer,
		Quantity:  d.Quantity,
		UnitPrice: &price,
		Reference: d.Reference,
		Note:      d.Note,
	}
}

// Movement is the request body for recording or editing a transaction. The
// type selects the route and is not sent.
type Movement struct {
	resource.Rev
	Type      TransactionType `json:"-"`
	Product   string          `json:"product"`
	Vendor    string          `json:"vendor,omitempty"`
	Customer  string          `json:"customer,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice *float64        `json:"unitPrice,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
}
