package rabbit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tropical-cargo-api/internal/model"
	"tropical-cargo-api/internal/repository"
	"tropical-cargo-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memOrderRepo struct {
	inserted []*model.Order
}

func (m *memOrderRepo) Insert(_ context.Context, o *model.Order) error {
	o.ID = primitive.NewObjectID()
	m.inserted = append(m.inserted, o)
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, _ primitive.ObjectID) (*model.Order, error) {
	return nil, repository.ErrNotFound
}

func (m *memOrderRepo) FindByTrackingNumber(_ context.Context, _ string) (*model.Order, error) {
	return nil, repository.ErrNotFound
}

func (m *memOrderRepo) IdentifierExists(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (m *memOrderRepo) Find(_ context.Context, _ model.OrderFilter, _ model.PageRequest) ([]*model.Order, int64, error) {
	return nil, 0, nil
}

func (m *memOrderRepo) ApplyStatusPatch(_ context.Context, _ primitive.ObjectID, _ model.StatusPatch) (*model.Order, error) {
	return nil, repository.ErrNotFound
}

func (m *memOrderRepo) DeleteByID(_ context.Context, _ primitive.ObjectID) error {
	return repository.ErrNotFound
}

func (m *memOrderRepo) SetLastNotificationSent(_ context.Context, _ primitive.ObjectID, _ time.Time) error {
	return nil
}

func newConsumer(t *testing.T, repo *memOrderRepo) *BookingConsumer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	consumer, err := NewBookingConsumer(service.NewOrderService(repo, nil, logger), logger)
	require.NoError(t, err)
	return consumer
}

const bookingMessage = `{
	"correlation_id": "11111111-2222-3333-4444-555555555555",
	"exchange": "booking_placed",
	"message": {
		"shipment": {
			"destination": "Barbados",
			"weight": 4,
			"dimensions": {"length": 2, "width": 2, "height": 1},
			"pickupDate": "2025-03-10",
			"estimatedDeliveryDays": "4-6"
		},
		"sender": {"name": "Acme Exports", "email": "ops@acme.example", "phone": "555-0199", "address": "Pier 4, Miami"},
		"recipient": {"name": "John Roe", "email": "john@example.com", "phone": "555-0101", "address": "2 Bay Rd, Bridgetown"},
		"pricing": {"baseRate": 30, "weightCost": 12, "totalAmount": 42, "currency": "USD"},
		"payment": {}
	}
}`

func TestBookingConsumerCreatesOrder(t *testing.T) {
	repo := &memOrderRepo{}
	consumer := newConsumer(t, repo)

	require.NoError(t, consumer.Handle([]byte(bookingMessage)))
	require.Len(t, repo.inserted, 1)

	order := repo.inserted[0]
	assert.Regexp(t, `^BK\d+$`, order.BookingNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "Barbados", order.Shipment.Destination)
}

func TestBookingConsumerRejectsMalformedJSON(t *testing.T) {
	repo := &memOrderRepo{}
	consumer := newConsumer(t, repo)

	assert.Error(t, consumer.Handle([]byte(`{not json`)))
	assert.Empty(t, repo.inserted)
}

func TestBookingConsumerRejectsInvalidBooking(t *testing.T) {
	repo := &memOrderRepo{}
	consumer := newConsumer(t, repo)

	assert.Error(t, consumer.Handle([]byte(`{"correlation_id": "x", "message": {"notes": "missing everything"}}`)))
	assert.Empty(t, repo.inserted)
}
