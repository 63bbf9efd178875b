package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/vehicle-rental/internal/model"
)

// VehicleRepo provides access to vehicles together with the model and fuel
// data needed to price a rental.
type VehicleRepo struct {
    db *sql.DB
}

// NewVehicleRepo returns a new VehicleRepo bound to the given database.
func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

// ExistsTx reports whether a vehicle with the given plate exists.  The
// matching row is locked FOR UPDATE until the transaction ends, so two
// bookings of the same plate are serialized from this point on and the
// availability check that follows cannot race with another insert.
func (r *VehicleRepo) ExistsTx(ctx context.Context, tx *sql.Tx, plate string) (bool, error) {
    const q = `SELECT COUNT(*) FROM vehicles WHERE plate = ? FOR UPDATE`
    var n int
    if err := tx.QueryRowContext(ctx, q, plate).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}

// Exists is the non-locking variant of ExistsTx used by read-only endpoints.
func (r *VehicleRepo) Exists(ctx context.Context, plate string) (bool, error) {
    const q = `SELECT COUNT(*) FROM vehicles WHERE plate = ?`
    var n int
    if err := r.db.QueryRowContext(ctx, q, plate).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}

// PricingTx loads the vehicle's model and the current price of its fuel in
// one query.  It returns ErrVehicleNotFound when the plate, its model or the
// fuel price is missing.
func (r *VehicleRepo) PricingTx(ctx context.Context, tx *sql.Tx, plate string) (*model.VehiclePricing, error) {
    const q = `SELECT v.plate, m.model_id, m.daily_price, m.tank_capacity, m.fuel_type, f.price_per_liter
               FROM vehicles v
               JOIN models m ON m.model_id = v.model_id
               JOIN fuel_prices f ON f.fuel_type = m.fuel_type
               WHERE v.plate = ?`
    var p model.VehiclePricing
    err := tx.QueryRowContext(ctx, q, plate).Scan(
        &p.Plate, &p.ModelID, &p.DailyPrice, &p.TankCapacity, &p.FuelType, &p.PricePerLiter,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrVehicleNotFound
        }
        return nil, err
    }
    return &p, nil
}
