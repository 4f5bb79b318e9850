// setup.go
package rabbit

import (
	"log/slog"

	"tropical-cargo-api/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

const (
	bookingExchange = "booking_placed"
	bookingQueue    = "cargo_api_bookings"
)

// SetupConsumers binds the booking queue to the website's fanout exchange
// and starts consuming for the process lifetime.
func SetupConsumers(ch *amqp091.Channel, svc *service.OrderService, logger *slog.Logger) error {
	consumer, err := NewBookingConsumer(svc, logger)
	if err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(bookingExchange, "fanout", true, false, false, false, nil); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(bookingQueue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	// fanout ignores the routing key
	if err := ch.QueueBind(q.Name, "", bookingExchange, false, nil); err != nil {
		return err
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	logger.Info("subscribed to booking exchange", "exchange", bookingExchange, "queue", q.Name)
	return nil
}
