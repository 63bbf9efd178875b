package model

import "github.com/shopspring/decimal"

// Invoice is the bill issued for a booking.  Amount always equals the sum
// of its lines.
//
// Fields:
//  Number    – primary key, generated on insert.
//  Amount    – total billed.
//  ClientNIF – client billed.
//  Lines     – itemised charges; populated on reads only.
type Invoice struct {
    Number    uint64          `json:"number"`    // invoices.number
    Amount    decimal.Decimal `json:"amount"`    // invoices.amount
    ClientNIF string          `json:"client_id"` // invoices.client_nif
    Lines     []InvoiceLine   `json:"lines,omitempty"`
}

// InvoiceLine is one charge on an invoice.
type InvoiceLine struct {
    InvoiceNumber uint64          `json:"invoice_number"` // invoice_lines.invoice_number
    Description   string          `json:"description"`    // invoice_lines.description
    Amount        decimal.Decimal `json:"amount"`         // invoice_lines.amount
}
