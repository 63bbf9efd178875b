package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/vehicle-rental/internal/model"
)

// InvoiceRepo persists invoices and their lines.  Invoices are written once
// by the booking transaction and never updated afterwards.
type InvoiceRepo struct {
    db *sql.DB
}

// NewInvoiceRepo returns a new InvoiceRepo bound to the given database.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

// InvoiceRecord mirrors the invoices table for inserts.
type InvoiceRecord struct {
    Number    uint64
    Amount    decimal.Decimal
    ClientNIF string
}

// CreateTx inserts an invoice inside the caller's transaction and stores
// the generated invoice number on the record.  Callers pass that number
// explicitly to CreateLinesTx.
func (r *InvoiceRepo) CreateTx(ctx context.Context, tx *sql.Tx, inv *InvoiceRecord) error {
    const q = `INSERT INTO invoices (amount, client_nif) VALUES (?, ?)`
    result, err := tx.ExecContext(ctx, q, inv.Amount, inv.ClientNIF)
    if err != nil {
        return err
    }
    n, err := result.LastInsertId()
    if err != nil {
        return err
    }
    inv.Number = uint64(n)
    return nil
}

// CreateLinesTx inserts multiple invoice_lines rows in a single statement.
// Each line must carry its invoice number.  Passing an empty slice has no
// effect and returns nil.
func (r *InvoiceRepo) CreateLinesTx(ctx context.Context, tx *sql.Tx, lines []model.InvoiceLine) error {
    if len(lines) == 0 {
        return nil
    }
    query := `INSERT INTO invoice_lines (invoice_number, description, amount) VALUES `
    args := make([]interface{}, 0, len(lines)*3)
    for i, l := range lines {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?)"
        args = append(args, l.InvoiceNumber, l.Description, l.Amount)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// GetByNumber returns an invoice with its lines, or ErrInvoiceNotFound.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number uint64) (*model.Invoice, error) {
    const q = `SELECT number, amount, client_nif FROM invoices WHERE number = ?`
    var inv model.Invoice
    err := r.db.QueryRowContext(ctx, q, number).Scan(&inv.Number, &inv.Amount, &inv.ClientNIF)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrInvoiceNotFound
        }
        return nil, err
    }
    const lq = `SELECT invoice_number, description, amount FROM invoice_lines WHERE invoice_number = ?`
    rows, err := r.db.QueryContext(ctx, lq, number)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    inv.Lines = make([]model.InvoiceLine, 0, 2)
    for rows.Next() {
        var l model.InvoiceLine
        if err := rows.Scan(&l.InvoiceNumber, &l.Description, &l.Amount); err != nil {
            return nil, err
        }
        inv.Lines = append(inv.Lines, l)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &inv, nil
}
