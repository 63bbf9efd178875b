package repository

import (
    "context"
    "database/sql"
)

// ClientRepo provides read access to the clients table.  Clients are
// maintained elsewhere; the booking flow only checks that they exist.
type ClientRepo struct {
    db *sql.DB
}

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

// ExistsTx reports whether a client with the given NIF exists.  The count
// runs inside the caller's transaction.
func (r *ClientRepo) ExistsTx(ctx context.Context, tx *sql.Tx, nif string) (bool, error) {
    const q = `SELECT COUNT(*) FROM clients WHERE nif = ?`
    var n int
    if err := tx.QueryRowContext(ctx, q, nif).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}
