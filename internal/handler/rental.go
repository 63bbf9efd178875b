package handler

import (
    "context"
    "errors"
    "log/slog"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/vehicle-rental/internal/model"
    "github.com/iliyamo/vehicle-rental/internal/rental"
    "github.com/iliyamo/vehicle-rental/internal/repository"
    "github.com/iliyamo/vehicle-rental/internal/service"
)

// Booker is implemented by *service.RentalService.
type Booker interface {
    Book(ctx context.Context, clientID, plate string, start time.Time, end *time.Time) (*service.Receipt, error)
    VehicleAvailable(ctx context.Context, plate string) (bool, error)
}

// ReservationReader is implemented by *repository.ReservationRepo.
type ReservationReader interface {
    GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
    ListByClient(ctx context.Context, nif string) ([]model.Reservation, error)
}

// InvoiceReader is implemented by *repository.InvoiceRepo.
type InvoiceReader interface {
    GetByNumber(ctx context.Context, number uint64) (*model.Invoice, error)
}

// RentalHandler serves the /v1 rental endpoints.  Authentication and role
// checks happen in middleware before any method here runs.
type RentalHandler struct {
    booker       Booker
    reservations ReservationReader
    invoices     InvoiceReader
    log          *slog.Logger
}

// NewRentalHandler constructs a RentalHandler.  All dependencies must be
// non-nil.
func NewRentalHandler(b Booker, r ReservationReader, i InvoiceReader, log *slog.Logger) *RentalHandler {
    if b == nil || r == nil || i == nil {
        panic("nil dependency passed to NewRentalHandler")
    }
    if log == nil {
        log = slog.Default()
    }
    return &RentalHandler{booker: b, reservations: r, invoices: i, log: log}
}

type createRentalRequest struct {
    ClientID  string  `json:"client_id" validate:"required,max=16"`
    Plate     string  `json:"plate" validate:"required,max=16"`
    StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
    EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateRental handles POST /v1/rentals.  A missing end_date books an
// open-ended rental billed for the default number of days.  It returns 201
// with the receipt, 400 for malformed input or a non-positive duration, 404
// for an unknown client or vehicle, 409 when the vehicle is taken and 500
// when the booking could not be stored.
func (h *RentalHandler) CreateRental(c echo.Context) error {
    var req createRentalRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": describe(err)})
    }
    start, _ := time.Parse(time.DateOnly, req.StartDate)
    var end *time.Time
    if req.EndDate != nil {
        e, _ := time.Parse(time.DateOnly, *req.EndDate)
        end = &e
    }

    receipt, err := h.booker.Book(c.Request().Context(), req.ClientID, req.Plate, start, end)
    if err != nil {
        return c.JSON(statusFor(err), echo.Map{"error": rental.KindOf(err).String()})
    }
    if receipt == nil {
        // write failure swallowed by the service; it has already logged it
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking not recorded"})
    }
    return c.JSON(http.StatusCreated, receipt)
}

// statusFor maps booking errors to HTTP statuses.
func statusFor(err error) int {
    switch rental.KindOf(err) {
    case rental.KindInvalidDuration:
        return http.StatusBadRequest
    case rental.KindClientNotFound, rental.KindVehicleNotFound:
        return http.StatusNotFound
    case rental.KindVehicleUnavailable:
        return http.StatusConflict
    default:
        return http.StatusInternalServerError
    }
}

// GetReservation handles GET /v1/reservations/:id.
func (h *RentalHandler) GetReservation(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    res, err := h.reservations.GetByID(c.Request().Context(), id)
    if errors.Is(err, repository.ErrReservationNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    }
    if err != nil {
        return h.dbError(c, "get reservation", err)
    }
    return c.JSON(http.StatusOK, res)
}

// ListClientReservations handles GET /v1/clients/:nif/reservations.  An
// unknown client simply has no reservations.
func (h *RentalHandler) ListClientReservations(c echo.Context) error {
    nif := c.Param("nif")
    list, err := h.reservations.ListByClient(c.Request().Context(), nif)
    if err != nil {
        return h.dbError(c, "list reservations", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"client_id": nif, "reservations": list})
}

// GetInvoice handles GET /v1/invoices/:number and returns the invoice with
// its lines.
func (h *RentalHandler) GetInvoice(c echo.Context) error {
    n, err := strconv.ParseUint(c.Param("number"), 10, 64)
    if err != nil || n == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice number"})
    }
    inv, err := h.invoices.GetByNumber(c.Request().Context(), n)
    if errors.Is(err, repository.ErrInvoiceNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
    }
    if err != nil {
        return h.dbError(c, "get invoice", err)
    }
    return c.JSON(http.StatusOK, inv)
}

// VehicleAvailability handles GET /v1/vehicles/:plate/availability.  The
// answer is a snapshot; a later booking may still find the vehicle taken.
func (h *RentalHandler) VehicleAvailability(c echo.Context) error {
    plate := c.Param("plate")
    ok, err := h.booker.VehicleAvailable(c.Request().Context(), plate)
    if errors.Is(err, rental.ErrVehicleNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
    }
    if err != nil {
        return h.dbError(c, "vehicle availability", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"plate": plate, "available": ok})
}

func (h *RentalHandler) dbError(c echo.Context, op string, err error) error {
    h.log.Error(op+" failed", "err", err, "path", c.Request().URL.Path)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
