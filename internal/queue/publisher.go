package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultDialTimeout bounds the TCP connect and AMQP handshake of a publish.
const DefaultDialTimeout = 3 * time.Second

// Publisher sends booking events to RabbitMQ, dialing once per publish.
// Errors are returned, not logged; the caller decides what to do with them.
type Publisher struct {
    url         string
    dialTimeout time.Duration
}

// NewPublisher returns a Publisher for the given AMQP URL.
func NewPublisher(url string) *Publisher {
    return &Publisher{url: url, dialTimeout: DefaultDialTimeout}
}

// PublishRentalBooked publishes ev to the rental.booked queue as a
// persistent JSON message.  The dial gives up after the publisher's dial
// timeout or when ctx is done, whichever comes first.
func (p *Publisher) PublishRentalBooked(ctx context.Context, ev RentalBookedEvent) error {
    timeout := p.dialTimeout
    if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
        timeout = time.Until(dl)
    }
    if timeout <= 0 {
        return fmt.Errorf("rabbitmq: dial: %w", context.DeadlineExceeded)
    }
    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(timeout)})
    if err != nil {
        return fmt.Errorf("rabbitmq: dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq: open channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        RentalBookedQueue, // name
        true,              // durable
        false,             // autoDelete
        false,             // exclusive
        false,             // noWait
        nil,               // args
    ); err != nil {
        return fmt.Errorf("rabbitmq: declare %s: %w", RentalBookedQueue, err)
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("rabbitmq: marshal event: %w", err)
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.EventID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",                // default exchange
        RentalBookedQueue, // routing key = queue name
        false,             // mandatory
        false,             // immediate
        pub,
    ); err != nil {
        return fmt.Errorf("rabbitmq: publish: %w", err)
    }
    return nil
}
