package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/service"

	"github.com/go-playground/validator/v10"
)

// BookingConsumer turns booking_placed events from the website into orders,
// running the same create path as POST /orders.
type BookingConsumer struct {
	Service  *service.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewBookingConsumer(s *service.OrderService, logger *slog.Logger) (*BookingConsumer, error) {
	v, err := dto.NewValidator()
	if err != nil {
		return nil, err
	}
	return &BookingConsumer{Service: s, validate: v, logger: logger}, nil
}

type BookingPlacedMessage struct {
	CorrelationID string                 `json:"correlation_id"`
	Exchange      string                 `json:"exchange"`
	RoutingKey    string                 `json:"routing_key"`
	Message       dto.CreateOrderRequest `json:"message"`
}

func (c *BookingConsumer) Handle(msg []byte) error {
	var event BookingPlacedMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		c.logger.Error("failed to parse booking message", "error", err)
		return err
	}

	if err := c.validate.Struct(&event.Message); err != nil {
		c.logger.Error("booking message failed validation",
			"correlationId", event.CorrelationID, "error", err)
		return err
	}

	order, err := c.Service.Create(context.Background(), &event.Message)
	if err != nil {
		c.logger.Error("failed to create order from booking",
			"correlationId", event.CorrelationID, "error", err)
		return err
	}

	c.logger.Info("order created from booking",
		"correlationId", event.CorrelationID,
		"bookingNumber", order.BookingNumber,
		"trackingNumber", order.TrackingNumber)
	return nil
}
