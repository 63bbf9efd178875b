// Package service holds the booking transaction: the ordered validations,
// pricing and writes that turn a rental request into a reservation and an
// invoice under a single database transaction.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/vehicle-rental/internal/database"
	"github.com/iliyamo/vehicle-rental/internal/queue"
	"github.com/iliyamo/vehicle-rental/internal/rental"
	"github.com/iliyamo/vehicle-rental/internal/repository"
)

// EventPublisher receives a notification after every committed booking.
type EventPublisher interface {
	PublishRentalBooked(ctx context.Context, ev queue.RentalBookedEvent) error
}

// Receipt summarises a committed booking.
type Receipt struct {
	ReservationID uint64          `json:"reservation_id"`
	InvoiceNumber uint64          `json:"invoice_number"`
	Days          int             `json:"days"`
	RentalCost    decimal.Decimal `json:"rental_cost"`
	FuelCost      decimal.Decimal `json:"fuel_cost"`
	Total         decimal.Decimal `json:"total"`
}

// Options tune a RentalService.  The zero value is usable.
type Options struct {
	// SwallowWriteErrors keeps the legacy contract where a data-access
	// failure is rolled back and logged but Book returns (nil, nil).
	SwallowWriteErrors bool
	// Now overrides the clock used to decide which reservations are still
	// active.  Defaults to time.Now.
	Now func() time.Time
	// Location is where "today" is judged.  Defaults to time.Local.
	Location *time.Location
	// Publisher is notified after commit.  Nil disables events.
	Publisher EventPublisher
	// PublishTimeout bounds each event publish.  Defaults to 5s.
	PublishTimeout time.Duration
}

// RentalService books vehicles.  It holds no per-call state and is safe for
// concurrent use; each Book call runs in its own transaction.
type RentalService struct {
	db           database.TxBeginner
	clients      *repository.ClientRepo
	vehicles     *repository.VehicleRepo
	reservations *repository.ReservationRepo
	invoices     *repository.InvoiceRepo
	log          *slog.Logger
	opts         Options
}

// NewRentalService wires a RentalService.  All repositories must be non-nil.
func NewRentalService(db database.TxBeginner, clients *repository.ClientRepo, vehicles *repository.VehicleRepo,
	reservations *repository.ReservationRepo, invoices *repository.InvoiceRepo, log *slog.Logger, opts Options) *RentalService {
	if db == nil || clients == nil || vehicles == nil || reservations == nil || invoices == nil {
		panic("nil dependency passed to NewRentalService")
	}
	if log == nil {
		log = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 5 * time.Second
	}
	return &RentalService{
		db:           db,
		clients:      clients,
		vehicles:     vehicles,
		reservations: reservations,
		invoices:     invoices,
		log:          log,
		opts:         opts,
	}
}

// Book rents the vehicle with the given plate to the client from start to
// end (nil for an open-ended rental).  Only the calendar dates of start and
// end, read in their own locations, are used.  The reservation, the invoice and its
// two lines are written in one transaction; on any failure nothing is
// written.  Domain rejections come back as *rental.Error with a domain
// kind.  Data-access failures come back with KindPersistenceFailure unless
// SwallowWriteErrors is set, in which case they are only logged.
func (s *RentalService) Book(ctx context.Context, clientID, plate string, start time.Time, end *time.Time) (*Receipt, error) {
	start = rental.Date(start)
	if end != nil {
		e := rental.Date(*end)
		end = &e
	}
	days, err := rental.Days(start, end)
	if err != nil {
		return nil, err
	}

	log := s.log.With("client", clientID, "plate", plate)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return s.persistenceFailure(log, rental.Persistence("begin", err))
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("rollback failed", "err", rbErr)
		}
	}()

	if err := s.validate(ctx, tx, clientID, plate); err != nil {
		if rental.KindOf(err).Domain() {
			log.Info("booking rejected", "reason", rental.KindOf(err).String())
			return nil, err
		}
		return s.persistenceFailure(log, err)
	}

	receipt, err := s.write(ctx, tx, clientID, plate, start, end, days)
	if err != nil {
		return s.persistenceFailure(log, err)
	}

	if err := tx.Commit(); err != nil {
		return s.persistenceFailure(log, rental.Persistence("commit", err))
	}
	committed = true
	log.Info("booking committed", "reservation_id", receipt.ReservationID, "invoice", receipt.InvoiceNumber,
		"days", receipt.Days, "total", receipt.Total.StringFixed(2))

	s.publish(ctx, log, clientID, plate, start, end, receipt)
	return receipt, nil
}

// validate runs the pre-write checks in order: client, vehicle, availability.
func (s *RentalService) validate(ctx context.Context, tx *sql.Tx, clientID, plate string) error {
	ok, err := s.clients.ExistsTx(ctx, tx, clientID)
	if err != nil {
		return rental.Persistence("lookup client", err)
	}
	if !ok {
		return &rental.Error{Kind: rental.KindClientNotFound, Op: "lookup client"}
	}

	ok, err = s.vehicles.ExistsTx(ctx, tx, plate)
	if err != nil {
		return rental.Persistence("lookup vehicle", err)
	}
	if !ok {
		return &rental.Error{Kind: rental.KindVehicleNotFound, Op: "lookup vehicle"}
	}

	return s.checkAvailable(ctx, tx, plate)
}

// checkAvailable fails with VehicleUnavailable when the plate has a
// reservation that is open-ended or ends today or later.
func (s *RentalService) checkAvailable(ctx context.Context, tx *sql.Tx, plate string) error {
	today := s.today()
	active, err := s.reservations.ActiveForPlateTx(ctx, tx, plate, today)
	if err != nil {
		return rental.Persistence("check availability", err)
	}
	if active != nil && active.Active(today) {
		return &rental.Error{Kind: rental.KindVehicleUnavailable, Op: "check availability"}
	}
	return nil
}

func (s *RentalService) today() time.Time {
	return rental.Today(s.opts.Now(), s.opts.Location)
}

func (s *RentalService) write(ctx context.Context, tx *sql.Tx, clientID, plate string, start time.Time, end *time.Time, days int) (*Receipt, error) {
	res := &repository.ReservationRecord{ClientNIF: clientID, Plate: plate, StartDate: start, EndDate: end}
	if err := s.reservations.CreateTx(ctx, tx, res); err != nil {
		return nil, rental.Persistence("insert reservation", err)
	}

	pricing, err := s.vehicles.PricingTx(ctx, tx, plate)
	if err != nil {
		return nil, rental.Persistence("load pricing", err)
	}
	quote := rental.Price(*pricing, days)

	inv := &repository.InvoiceRecord{Amount: quote.Total, ClientNIF: clientID}
	if err := s.invoices.CreateTx(ctx, tx, inv); err != nil {
		return nil, rental.Persistence("insert invoice", err)
	}
	if err := s.invoices.CreateLinesTx(ctx, tx, quote.Lines(inv.Number, *pricing)); err != nil {
		return nil, rental.Persistence("insert invoice lines", err)
	}

	return &Receipt{
		ReservationID: res.ID,
		InvoiceNumber: inv.Number,
		Days:          quote.Days,
		RentalCost:    quote.RentalCost,
		FuelCost:      quote.FuelCost,
		Total:         quote.Total,
	}, nil
}

func (s *RentalService) persistenceFailure(log *slog.Logger, err error) (*Receipt, error) {
	log.Error("booking failed", "err", err)
	if s.opts.SwallowWriteErrors {
		return nil, nil
	}
	return nil, err
}

func (s *RentalService) publish(ctx context.Context, log *slog.Logger, clientID, plate string, start time.Time, end *time.Time, r *Receipt) {
	if s.opts.Publisher == nil {
		return
	}
	ev := queue.RentalBookedEvent{
		EventID:       uuid.NewString(),
		ReservationID: r.ReservationID,
		InvoiceNumber: r.InvoiceNumber,
		ClientNIF:     clientID,
		Plate:         plate,
		StartDate:     start.Format(time.DateOnly),
		Days:          r.Days,
		RentalCost:    r.RentalCost,
		FuelCost:      r.FuelCost,
		Total:         r.Total,
		BookedAt:      s.opts.Now().UTC().Format(time.RFC3339),
	}
	if end != nil {
		e := end.Format(time.DateOnly)
		ev.EndDate = &e
	}
	// Detached from the request; the booking is committed either way.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PublishTimeout)
	defer cancel()
	if err := s.opts.Publisher.PublishRentalBooked(pctx, ev); err != nil {
		log.Warn("publish rental.booked failed", "err", err, "reservation_id", r.ReservationID)
	}
}

// VehicleAvailable reports whether plate currently has no active
// reservation.  It reads outside any transaction and is advisory only; Book
// re-checks under a row lock.  An unknown plate yields a *rental.Error of
// KindVehicleNotFound, as from Book.
func (s *RentalService) VehicleAvailable(ctx context.Context, plate string) (bool, error) {
	ok, err := s.vehicles.Exists(ctx, plate)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, &rental.Error{Kind: rental.KindVehicleNotFound, Op: "vehicle availability"}
	}
	today := s.today()
	active, err := s.reservations.ActiveForPlate(ctx, plate, today)
	if err != nil {
		return false, err
	}
	return active == nil || !active.Active(today), nil
}
