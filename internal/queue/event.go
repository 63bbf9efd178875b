// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher and consumer that carry them.
package queue

import "github.com/shopspring/decimal"

// RentalBookedQueue is the durable queue booking events are published to.
const RentalBookedQueue = "rental.booked"

// RentalBookedEvent is published after a booking transaction commits.  It
// carries enough for downstream consumers to log, notify or bill without
// querying the primary database.
type RentalBookedEvent struct {
    EventID       string          `json:"event_id"`
    ReservationID uint64          `json:"reservation_id"`
    InvoiceNumber uint64          `json:"invoice_number"`
    ClientNIF     string          `json:"client_id"`
    Plate         string          `json:"plate"`
    StartDate     string          `json:"start_date"`
    EndDate       *string         `json:"end_date"`
    Days          int             `json:"days"`
    RentalCost    decimal.Decimal `json:"rental_cost"`
    FuelCost      decimal.Decimal `json:"fuel_cost"`
    Total         decimal.Decimal `json:"total"`
    BookedAt      string          `json:"booked_at"`
}
