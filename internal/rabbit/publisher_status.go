package rabbit

import (
	"context"
	"encoding/json"

	"tropical-cargo-api/internal/model"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const statusExchange = "order_status_updated"

// StatusPublisher fans order status changes out to the notification
// services (sms, email). Implements service.StatusNotifier.
type StatusPublisher struct {
	ch *amqp091.Channel
}

func NewStatusPublisher(ch *amqp091.Channel) (*StatusPublisher, error) {
	err := ch.ExchangeDeclare(statusExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	return &StatusPublisher{ch: ch}, nil
}

type statusChangedMessage struct {
	CorrelationID string              `json:"correlation_id"`
	Exchange      string              `json:"exchange"`
	RoutingKey    string              `json:"routing_key"`
	Message       statusChangedDetail `json:"message"`
}

type statusChangedDetail struct {
	OrderID            string            `json:"orderId"`
	BookingNumber      string            `json:"bookingNumber"`
	TrackingNumber     string            `json:"trackingNumber"`
	Status             model.OrderStatus `json:"status"`
	CurrentLocation    string            `json:"currentLocation"`
	ProgressPercentage float64           `json:"progressPercentage"`
	RecipientEmail     string            `json:"recipientEmail,omitempty"`
	RecipientPhone     string            `json:"recipientPhone,omitempty"`
	SMSEnabled         bool              `json:"smsEnabled"`
	EmailEnabled       bool              `json:"emailEnabled"`
	Preferences        []string          `json:"preferences"`
}

func (p *StatusPublisher) NotifyStatusChanged(ctx context.Context, o *model.Order) error {
	payload := statusChangedMessage{
		CorrelationID: uuid.NewString(),
		Exchange:      statusExchange,
		Message: statusChangedDetail{
			OrderID:            o.ID.Hex(),
			BookingNumber:      o.BookingNumber,
			TrackingNumber:     o.TrackingNumber,
			Status:             o.Status,
			CurrentLocation:    o.Tracking.CurrentLocation,
			ProgressPercentage: o.Tracking.ProgressPercentage,
			RecipientEmail:     o.Recipient.Email,
			RecipientPhone:     o.Recipient.Phone,
			SMSEnabled:         o.Notifications.SMSEnabled,
			EmailEnabled:       o.Notifications.EmailEnabled,
			Preferences:        o.Notifications.Preferences,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, statusExchange, "", false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
