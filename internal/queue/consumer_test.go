package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"

    "github.com/shopspring/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/vehicle-rental/internal/obs"
)

func sampleEvent() RentalBookedEvent {
    end := "2024-01-05"
    return RentalBookedEvent{
        EventID:       "e1",
        ReservationID: 11,
        InvoiceNumber: 31,
        ClientNIF:     "12345678A",
        Plate:         "1234ABC",
        StartDate:     "2024-01-01",
        EndDate:       &end,
        Days:          4,
        RentalCost:    decimal.RequireFromString("120"),
        FuelCost:      decimal.RequireFromString("60"),
        Total:         decimal.RequireFromString("180"),
        BookedAt:      "2024-01-01T10:00:00Z",
    }
}

func TestFormatLine(t *testing.T) {
    line := formatLine(sampleEvent())
    assert.Equal(t,
        "[2024-01-01T10:00:00Z] Rental booked | reservation_id=11 | invoice=31 | client=12345678A | plate=1234ABC | from=2024-01-01 | to=2024-01-05 | days=4 | rental=120.00 | fuel=60.00 | total=180.00\n",
        line)

    ev := sampleEvent()
    ev.EndDate = nil
    assert.Contains(t, formatLine(ev), "to=open")
}

func TestHandleMessage_AppendsLine(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    c := NewConsumer("amqp://unused", dir, obs.Discard())

    body, err := json.Marshal(sampleEvent())
    require.NoError(t, err)
    require.NoError(t, c.handleMessage(body))
    require.NoError(t, c.handleMessage(body))

    data, err := os.ReadFile(filepath.Join(dir, "rental.log"))
    require.NoError(t, err)
    assert.Equal(t, 2, countLines(string(data)))
}

func TestHandleMessage_RejectsGarbage(t *testing.T) {
    c := NewConsumer("amqp://unused", t.TempDir(), obs.Discard())
    assert.Error(t, c.handleMessage([]byte("{not json")))
}

func countLines(s string) int {
    n := 0
    for _, r := range s {
        if r == '\n' {
            n++
        }
    }
    return n
}
