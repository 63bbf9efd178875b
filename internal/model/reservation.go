package model

import "time"

// Reservation records that a client has taken a vehicle from StartDate.
// An open-ended reservation has a nil EndDate.  A vehicle is occupied while
// it has a reservation whose EndDate is nil or not yet in the past.
//
// Fields:
//  ID        – primary key identifier.
//  ClientNIF – client who booked the vehicle.
//  Plate     – vehicle booked.
//  StartDate – first day of the rental.
//  EndDate   – last day of the rental (nullable).
type Reservation struct {
    ID        uint64     `json:"id"`         // reservations.id
    ClientNIF string     `json:"client_id"`  // reservations.client_nif
    Plate     string     `json:"plate"`      // reservations.plate
    StartDate time.Time  `json:"start_date"` // reservations.start_date
    EndDate   *time.Time `json:"end_date"`   // reservations.end_date (nullable)
}

// Active reports whether the reservation still occupies its vehicle on the
// given day.
func (r Reservation) Active(today time.Time) bool {
    return r.EndDate == nil || !r.EndDate.Before(today)
}
