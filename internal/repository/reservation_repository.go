package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/vehicle-rental/internal/model"
)

// ReservationRepo provides access to vehicle reservations.  Dates are
// stored in DATE columns and are read back as UTC midnights.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationRecord mirrors the columns written when a reservation is
// created.  Dates are stored as the calendar day their Year/Month/Day
// report, in whatever location they carry.  EndDate is nil for an
// open-ended rental.
type ReservationRecord struct {
    ID        uint64
    ClientNIF string
    Plate     string
    StartDate time.Time
    EndDate   *time.Time
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID on the provided record.  The
// caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *ReservationRecord) error {
    const q = `INSERT INTO reservations (client_nif, plate, start_date, end_date) VALUES (?, ?, ?, ?)`
    var end any
    if res.EndDate != nil {
        end = res.EndDate.Format(dateLayout)
    }
    result, err := tx.ExecContext(ctx, q, res.ClientNIF, res.Plate, res.StartDate.Format(dateLayout), end)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    return nil
}

// ActiveForPlateTx returns one reservation that still occupies the vehicle
// on the given day: its end date is NULL or not before today.  When the
// vehicle has no such reservation it returns nil and a nil error.  Only one
// row is read because a single active reservation is enough to make the
// vehicle unavailable.
func (r *ReservationRepo) ActiveForPlateTx(ctx context.Context, tx *sql.Tx, plate string, today time.Time) (*model.Reservation, error) {
    return activeForPlate(ctx, tx, plate, today)
}

// ActiveForPlate is ActiveForPlateTx outside a transaction.  It is used by
// the read-only availability endpoint and gives no guarantee that the
// vehicle is still free by the time a booking is attempted.
func (r *ReservationRepo) ActiveForPlate(ctx context.Context, plate string, today time.Time) (*model.Reservation, error) {
    return activeForPlate(ctx, r.db, plate, today)
}

func activeForPlate(ctx context.Context, q querier, plate string, today time.Time) (*model.Reservation, error) {
    const sel = `SELECT id, client_nif, plate, start_date, end_date
                 FROM reservations
                 WHERE plate = ? AND (end_date IS NULL OR end_date >= ?)
                 LIMIT 1`
    res, err := scanReservation(q.QueryRowContext(ctx, sel, plate, today.Format(dateLayout)))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return res, nil
}

// GetByID returns the reservation with the given id or
// ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT id, client_nif, plate, start_date, end_date FROM reservations WHERE id = ?`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrReservationNotFound
    }
    return res, err
}

// ListByClient returns all reservations made by a client, newest first.
// When the client has none an empty slice is returned.
func (r *ReservationRepo) ListByClient(ctx context.Context, nif string) ([]model.Reservation, error) {
    const q = `SELECT id, client_nif, plate, start_date, end_date
               FROM reservations
               WHERE client_nif = ?
               ORDER BY start_date DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, nif)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

type rowScanner interface {
    Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
    var res model.Reservation
    var end sql.NullTime
    if err := row.Scan(&res.ID, &res.ClientNIF, &res.Plate, &res.StartDate, &end); err != nil {
        return nil, err
    }
    res.StartDate = res.StartDate.UTC()
    if end.Valid {
        e := end.Time.UTC()
        res.EndDate = &e
    }
    return &res, nil
}
