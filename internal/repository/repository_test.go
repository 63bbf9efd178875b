package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vehicle-rental/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClientRepo_ExistsTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewClientRepo(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM clients WHERE nif = ?")).
		WithArgs("12345678A").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM clients WHERE nif = ?")).
		WithArgs("00000000X").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	ok, err := repo.ExistsTx(ctx, tx, "12345678A")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.ExistsTx(ctx, tx, "00000000X")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepo_ExistsTxLocksRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVehicleRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM vehicles WHERE plate = ? FOR UPDATE")).
		WithArgs("1234ABC").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ok, err := repo.ExistsTx(context.Background(), tx, "1234ABC")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepo_PricingTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVehicleRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT v.plate, m.model_id, m.daily_price, m.tank_capacity, m.fuel_type, f.price_per_liter")).
		WithArgs("1234ABC").
		WillReturnRows(sqlmock.NewRows([]string{"plate", "model_id", "daily_price", "tank_capacity", "fuel_type", "price_per_liter"}).
			AddRow("1234ABC", "7", "30.00", 50, "diesel", "1.20"))
	mock.ExpectQuery(q("SELECT v.plate")).
		WithArgs("9999ZZZ").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	p, err := repo.PricingTx(context.Background(), tx, "1234ABC")
	require.NoError(t, err)
	assert.Equal(t, "7", p.ModelID)
	assert.Equal(t, 50, p.TankCapacity)
	assert.Equal(t, "diesel", p.FuelType)
	assert.True(t, p.DailyPrice.Equal(decimal.RequireFromString("30")))
	assert.True(t, p.PricePerLiter.Equal(decimal.RequireFromString("1.2")))

	_, err = repo.PricingTx(context.Background(), tx, "9999ZZZ")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_CreateTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)
	end := day(2024, 1, 5)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO reservations (client_nif, plate, start_date, end_date) VALUES (?, ?, ?, ?)")).
		WithArgs("12345678A", "1234ABC", "2024-01-01", "2024-01-05").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(q("INSERT INTO reservations")).
		WithArgs("12345678A", "1234ABC", "2024-02-01", nil).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	rec := &ReservationRecord{ClientNIF: "12345678A", Plate: "1234ABC", StartDate: day(2024, 1, 1), EndDate: &end}
	require.NoError(t, repo.CreateTx(context.Background(), tx, rec))
	assert.Equal(t, uint64(11), rec.ID)

	open := &ReservationRecord{ClientNIF: "12345678A", Plate: "1234ABC", StartDate: day(2024, 2, 1)}
	require.NoError(t, repo.CreateTx(context.Background(), tx, open))
	assert.Equal(t, uint64(12), open.ID)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_CreateTxKeepsCalendarDay(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)
	tokyo := time.FixedZone("UTC+9", 9*3600)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, tokyo)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO reservations")).
		WithArgs("12345678A", "1234ABC", "2024-01-01", "2024-01-05").
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	rec := &ReservationRecord{ClientNIF: "12345678A", Plate: "1234ABC", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, tokyo), EndDate: &end}
	require.NoError(t, repo.CreateTx(context.Background(), tx, rec))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_ActiveForPlate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)
	today := day(2024, 3, 10)
	cols := []string{"id", "client_nif", "plate", "start_date", "end_date"}

	mock.ExpectQuery(q("WHERE plate = ? AND (end_date IS NULL OR end_date >= ?)")).
		WithArgs("1234ABC", "2024-03-10").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "12345678A", "1234ABC", day(2024, 3, 1), nil))
	mock.ExpectQuery(q("WHERE plate = ? AND (end_date IS NULL OR end_date >= ?)")).
		WithArgs("5678DEF", "2024-03-10").
		WillReturnRows(sqlmock.NewRows(cols))

	res, err := repo.ActiveForPlate(context.Background(), "1234ABC", today)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.EndDate)
	assert.True(t, res.Active(today))

	res, err = repo.ActiveForPlate(context.Background(), "5678DEF", today)
	require.NoError(t, err)
	assert.Nil(t, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectQuery(q("FROM reservations WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_nif", "plate", "start_date", "end_date"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_ListByClient(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectQuery(q("WHERE client_nif = ?")).
		WithArgs("12345678A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_nif", "plate", "start_date", "end_date"}).
			AddRow(2, "12345678A", "1234ABC", day(2024, 2, 1), nil).
			AddRow(1, "12345678A", "1234ABC", day(2024, 1, 1), day(2024, 1, 5)))

	list, err := repo.ListByClient(context.Background(), "12345678A")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(2), list[0].ID)
	assert.Nil(t, list[0].EndDate)
	require.NotNil(t, list[1].EndDate)
	assert.Equal(t, day(2024, 1, 5), *list[1].EndDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_CreateWithLines(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInvoiceRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO invoices (amount, client_nif) VALUES (?, ?)")).
		WithArgs("180", "12345678A").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec(q("INSERT INTO invoice_lines (invoice_number, description, amount) VALUES (?, ?, ?),(?, ?, ?)")).
		WithArgs(uint64(31), "a", "120", uint64(31), "b", "60").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	inv := &InvoiceRecord{Amount: decimal.RequireFromString("180.00"), ClientNIF: "12345678A"}
	require.NoError(t, repo.CreateTx(context.Background(), tx, inv))
	assert.Equal(t, uint64(31), inv.Number)

	lines := []model.InvoiceLine{
		{InvoiceNumber: inv.Number, Description: "a", Amount: decimal.RequireFromString("120.00")},
		{InvoiceNumber: inv.Number, Description: "b", Amount: decimal.RequireFromString("60.00")},
	}
	require.NoError(t, repo.CreateLinesTx(context.Background(), tx, lines))
	require.NoError(t, repo.CreateLinesTx(context.Background(), tx, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByNumber(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInvoiceRepo(db)

	mock.ExpectQuery(q("SELECT number, amount, client_nif FROM invoices WHERE number = ?")).
		WithArgs(uint64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"number", "amount", "client_nif"}).AddRow(31, "180.00", "12345678A"))
	mock.ExpectQuery(q("FROM invoice_lines WHERE invoice_number = ?")).
		WithArgs(uint64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_number", "description", "amount"}).
			AddRow(31, "4 dias de alquiler, vehiculo modelo 7", "120.00").
			AddRow(31, "Deposito lleno de 50 litros de diesel", "60.00"))
	mock.ExpectQuery(q("FROM invoices WHERE number = ?")).
		WithArgs(uint64(32)).
		WillReturnError(sql.ErrNoRows)

	inv, err := repo.GetByNumber(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, "180.00", inv.Amount.StringFixed(2))
	require.Len(t, inv.Lines, 2)
	assert.True(t, inv.Lines[0].Amount.Add(inv.Lines[1].Amount).Equal(inv.Amount))

	_, err = repo.GetByNumber(context.Background(), 32)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
