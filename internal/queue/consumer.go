package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer listens to the rental.booked queue and appends one line per
// booking to <dir>/rental.log.
type Consumer struct {
    url string
    dir string
    log *slog.Logger
}

// NewConsumer returns a Consumer reading from url and writing under dir.
func NewConsumer(url, dir string, log *slog.Logger) *Consumer {
    return &Consumer{url: url, dir: dir, log: log}
}

// Run connects to RabbitMQ, declares the queue and consumes messages until
// ctx is cancelled.  Broker failures trigger a reconnect with exponential
// backoff capped at 30s; a message that cannot be handled is rejected
// without requeue so the loop keeps running.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(c.url)
        if err != nil {
            c.log.Warn("rental-consumer: failed to dial broker", "err", err, "retry_in", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.log.Warn("rental-consumer: consume loop ended, reconnecting", "err", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.log.Warn("rental-consumer: set QoS failed", "err", err)
    }
    if _, err := ch.QueueDeclare(RentalBookedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.ConsumeWithContext(ctx, RentalBookedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := c.handleMessage(d.Body); err != nil {
            c.log.Error("rental-consumer: handle message failed", "err", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func (c *Consumer) handleMessage(body []byte) error {
    var ev RentalBookedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(c.dir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(c.dir, "rental.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatLine(ev RentalBookedEvent) string {
    end := "open"
    if ev.EndDate != nil {
        end = *ev.EndDate
    }
    return fmt.Sprintf("[%s] Rental booked | reservation_id=%d | invoice=%d | client=%s | plate=%s | from=%s | to=%s | days=%d | rental=%s | fuel=%s | total=%s\n",
        ev.BookedAt, ev.ReservationID, ev.InvoiceNumber, ev.ClientNIF, ev.Plate, ev.StartDate, end, ev.Days,
        ev.RentalCost.StringFixed(2), ev.FuelCost.StringFixed(2), ev.Total.StringFixed(2))
}
