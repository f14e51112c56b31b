package invoices

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventory-pro/dashboard/internal/resource"
)

// InvoiceStatus enumerates invoice payment states.
type InvoiceStatus string

const (
	StatusIssued  InvoiceStatus = "issued"
	StatusPartial InvoiceStatus = "partial"
	StatusPaid    InvoiceStatus = "paid"
)

// Statuses lists the states the form offers.
var Statuses = []InvoiceStatus{StatusIssued, StatusPartial, StatusPaid}

// Invoice is a sales invoice as the backend stores it.
type Invoice struct {
	resource.Rev
	ID            string        `json:"_id"`
	Number        string        `json:"number,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	Type          string        `json:"type,omitempty"`
	Customer      resource.Ref  `json:"customer"`
	CustomerName  string        `json:"customerName,omitempty"`
	SubTotal      float64       `json:"subTotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Balance       float64       `json:"balance"`
	Status        InvoiceStatus `json:"status"`
	DueDate       string        `json:"dueDate,omitempty"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
}

// Key implements resource.Entity.
func (i Invoice) Key() string { return i.ID }

// DisplayNumber falls back to the legacy invoiceNumber field.
func (i Invoice) DisplayNumber() string {
	if i.Number != "" {
		return i.Number
	}
	return i.InvoiceNumber
}

// CustomerLabel prefers the populated customer name.
func (i Invoice) CustomerLabel() string {
	if i.Customer.Name != "" {
		return i.Customer.Name
	}
	if i.CustomerName != "" {
		return i.CustomerName
	}
	return i.Customer.ID
}

// Amount is the invoice total as a decimal.
func (i Invoice) Amount() decimal.Decimal {
	return decimal.NewFromFloat(i.Total).Round(2)
}

// DueDateInput trims the due date to what a date input accepts.
func (i Invoice) DueDateInput() string {
	if len(i.DueDate) >= 10 {
		return i.DueDate[:10]
	}
	return i.DueDate
}

// StatusOrDefault treats a missing status as issued.
func (i Invoice) StatusOrDefault() InvoiceStatus {
	if i.Status == "" {
		return StatusIssued
	}
	return i.Status
}

// Draft is the invoice form. A single amount fills every money field.
type Draft struct {
	Rev         resource.Rev `form:"-"`
	ID          string       `form:"-"`
	Number      string       `form:"number"`
	Customer    string       `form:"customer" validate:"required" label:"Customer"`
	Amount      float64      `form:"amount" validate:"gte=0" label:"Amount"`
	DueDate     string       `form:"dueDate" validate:"omitempty,datetime=2006-01-02" label:"Due date"`
	Status      string       `form:"status" validate:"required,oneof=issued partial paid" label:"Status"`
	Description string       `form:"description"`
}

type payload struct {
	resource.Rev
	Number      string   `json:"number"`
	Type        string   `json:"type"`
	Customer    string   `json:"customer"`
	Items       []string `json:"items"`
	SubTotal    float64  `json:"subTotal"`
	Tax         float64  `json:"tax"`
	Total       float64  `json:"total"`
	Balance     float64  `json:"balance"`
	DueDate     string   `json:"dueDate,omitempty"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
}

// DraftKey implements listeditor.Draft.
func (d Draft) DraftKey() string { return d.ID }

// Payload implements listeditor.Draft.
func (d Draft) Payload() any {
	amount, _ := decimal.NewFromFloat(d.Amount).Round(2).Float64()
	return payload{
		Rev:         d.Rev,
		Number:      d.Number,
		Type:        "sales",
		Customer:    d.Customer,
		Items:       []string{},
		SubTotal:    amount,
		Tax:         0,
		Total:       amount,
		Balance:     amount,
		DueDate:     d.DueDate,
		Status:      d.Status,
		Description: d.Description,
	}
}
