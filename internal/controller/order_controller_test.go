package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/model"
	"tropical-cargo-api/internal/repository"
	"tropical-cargo-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeOrderRepo implements service.OrderRepository in memory.
type fakeOrderRepo struct {
	orders    map[primitive.ObjectID]*model.Order
	findTotal int64
	gotPage   model.PageRequest
	gotFilter model.OrderFilter
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[primitive.ObjectID]*model.Order{}}
}

func (f *fakeOrderRepo) Insert(_ context.Context, o *model.Order) error {
	for _, existing := range f.orders {
		if existing.BookingNumber == o.BookingNumber || existing.TrackingNumber == o.TrackingNumber {
			return repository.ErrDuplicate
		}
	}
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) FindByTrackingNumber(_ context.Context, tn string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.TrackingNumber == tn {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) IdentifierExists(_ context.Context, field, value string) (bool, error) {
	for _, o := range f.orders {
		if (field == "bookingNumber" && o.BookingNumber == value) ||
			(field == "trackingNumber" && o.TrackingNumber == value) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) Find(_ context.Context, filter model.OrderFilter, page model.PageRequest) ([]*model.Order, int64, error) {
	f.gotFilter = filter
	f.gotPage = page
	var out []*model.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	total := f.findTotal
	if total == 0 {
		total = int64(len(out))
	}
	return out, total, nil
}

func (f *fakeOrderRepo) ApplyStatusPatch(_ context.Context, id primitive.ObjectID, patch model.StatusPatch) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = patch.Status
	o.Tracking.CurrentStatus = string(patch.Status)
	if patch.CurrentLocation != nil {
		o.Tracking.CurrentLocation = *patch.CurrentLocation
	}
	if patch.ProgressPercentage != nil {
		o.Tracking.ProgressPercentage = *patch.ProgressPercentage
	}
	if patch.Milestones != nil {
		merge := func(dst **time.Time, src *time.Time) {
			if src != nil {
				*dst = src
			}
		}
		merge(&o.Tracking.Milestones.OrderConfirmed, patch.Milestones.OrderConfirmed)
		merge(&o.Tracking.Milestones.PackagePickedUp, patch.Milestones.PackagePickedUp)
		merge(&o.Tracking.Milestones.InTransit, patch.Milestones.InTransit)
		merge(&o.Tracking.Milestones.ArrivedAtDestination, patch.Milestones.ArrivedAtDestination)
		merge(&o.Tracking.Milestones.OutForDelivery, patch.Milestones.OutForDelivery)
		merge(&o.Tracking.Milestones.Delivered, patch.Milestones.Delivered)
	}
	if patch.Event != nil {
		o.Tracking.Events = append(o.Tracking.Events, *patch.Event)
	}
	if patch.Notes != nil {
		o.Notes = *patch.Notes
	}
	if patch.IsActive != nil {
		o.IsActive = *patch.IsActive
	}
	return o, nil
}

func (f *fakeOrderRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) SetLastNotificationSent(_ context.Context, _ primitive.ObjectID, _ time.Time) error {
	return nil
}

func newTestRouter(t *testing.T, repo *fakeOrderRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		require.NoError(t, dto.RegisterValidations(v))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctl := NewOrderController(service.NewOrderService(repo, nil, logger), logger)

	r := gin.New()
	r.POST("/orders", ctl.Create)
	r.GET("/orders", ctl.List)
	r.GET("/orders/customer/:customerId", ctl.ListByCustomer)
	r.GET("/orders/tracking/:trackingNumber", ctl.Track)
	r.GET("/orders/:id", ctl.GetByID)
	r.PATCH("/orders/:id", ctl.UpdateStatus)
	r.DELETE("/orders/:id", ctl.Delete)
	return r
}

const createOrderBody = `{
	"shipment": {
		"destination": "Jamaica",
		"weight": 10,
		"dimensions": {"length": 1, "width": 1, "height": 1},
		"pickupDate": "2025-01-01",
		"estimatedDeliveryDays": "3-5"
	},
	"sender": {"name": "Acme Exports", "email": "ops@acme.example", "phone": "555-0199", "address": "Pier 4, Miami"},
	"recipient": {"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100", "address": "1 Harbour St, Kingston"},
	"pricing": {"baseRate": 50, "weightCost": 25, "totalAmount": 75, "currency": "USD"},
	"payment": {}
}`

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateOrderEndpoint(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	w := doRequest(r, http.MethodPost, "/orders", createOrderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Regexp(t, `^BK\d+$`, data["bookingNumber"])
	assert.Regexp(t, `^TR\d+$`, data["trackingNumber"])
	assert.Equal(t, "pending", data["status"])

	tracking := data["tracking"].(map[string]interface{})
	assert.Equal(t, "pending", tracking["currentStatus"])
	assert.Equal(t, "Processing", tracking["currentLocation"])
	assert.Equal(t, float64(0), tracking["progressPercentage"])

	payment := data["payment"].(map[string]interface{})
	assert.Equal(t, "pending", payment["status"])
}

func TestCreateOrderWithoutPaymentDefaultsToPending(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	payload := strings.Replace(createOrderBody, ",\n\t\"payment\": {}", "", 1)
	require.NotEqual(t, createOrderBody, payload)

	w := doRequest(r, http.MethodPost, "/orders", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payment := decodeBody(t, w)["data"].(map[string]interface{})["payment"].(map[string]interface{})
	assert.Equal(t, "pending", payment["status"])
}

func TestCreateOrderValidation(t *testing.T) {
	r := newTestRouter(t, newFakeOrderRepo())

	w := doRequest(r, http.MethodPost, "/orders", `{"sender": {"name": "x"}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid input", body["message"])
}

func TestCreateOrderDuplicateBookingNumber(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	payload := strings.Replace(createOrderBody, `"shipment"`, `"bookingNumber": "BK42", "shipment"`, 1)
	first := doRequest(r, http.MethodPost, "/orders", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(r, http.MethodPost, "/orders", payload)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Len(t, repo.orders, 1)
}

func TestListOrdersClampsPagination(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	w := doRequest(r, http.MethodGet, "/orders?limit=500&page=-2", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(100), pagination["limit"])
	assert.Equal(t, float64(1), pagination["page"])

	// data stays an array even with no matches
	_, isArray := body["data"].([]interface{})
	assert.True(t, isArray)
}

func TestListOrdersIgnoresUnknownStatusFilter(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	w := doRequest(r, http.MethodGet, "/orders?status=warp_speed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.gotFilter.Status)
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 7},
		{"abc", 7},
		{"0", 7},
		{"15", 15},
		{"2abc", 2},
		{"-2", -2},
		{"+3", 3},
		{"-", 7},
	}
	for _, tt := range tests {
		t.Run("in="+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIntParam(tt.in, 7))
		})
	}
}

func TestGetOrderByID(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	created := doRequest(r, http.MethodPost, "/orders", createOrderBody)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["data"].(map[string]interface{})["id"].(string)

	t.Run("malformed id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/orders/not-hex", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("missing id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/orders/"+primitive.NewObjectID().Hex(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("existing id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/orders/"+id, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPatchOrderStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	created := doRequest(r, http.MethodPost, "/orders", createOrderBody)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["data"].(map[string]interface{})["id"].(string)

	patch := `{
		"status": "in_transit",
		"currentLocation": "Port of Miami",
		"progressPercentage": 40,
		"milestones": {"inTransit": "2025-01-03T08:00:00Z"},
		"addEvent": {
			"timestamp": "2025-01-03T08:00:00Z",
			"status": "Departed",
			"location": "Miami",
			"description": "Vessel departed origin port",
			"eventType": "transit",
			"automated": true
		}
	}`
	w := doRequest(r, http.MethodPatch, "/orders/"+id, patch)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "in_transit", data["status"])

	tracking := data["tracking"].(map[string]interface{})
	assert.Equal(t, "in_transit", tracking["currentStatus"])
	assert.Equal(t, "Port of Miami", tracking["currentLocation"])

	events := tracking["events"].([]interface{})
	require.Len(t, events, 1)

	// a second patch must preserve the earlier milestone and event
	w = doRequest(r, http.MethodPatch, "/orders/"+id, `{
		"status": "delivered",
		"milestones": {"delivered": "2025-01-06T10:00:00Z"}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	tracking = decodeBody(t, w)["data"].(map[string]interface{})["tracking"].(map[string]interface{})
	milestones := tracking["milestones"].(map[string]interface{})
	assert.Contains(t, milestones, "inTransit")
	assert.Contains(t, milestones, "delivered")
	assert.Len(t, tracking["events"].([]interface{}), 1)
}

func TestPatchRejectsUnknownStatus(t *testing.T) {
	r := newTestRouter(t, newFakeOrderRepo())

	w := doRequest(r, http.MethodPatch, "/orders/"+primitive.NewObjectID().Hex(), `{"status": "lost_in_space"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	created := doRequest(r, http.MethodPost, "/orders", createOrderBody)
	id := decodeBody(t, created)["data"].(map[string]interface{})["id"].(string)

	w := doRequest(r, http.MethodDelete, "/orders/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/orders/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackingLookup(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	created := doRequest(r, http.MethodPost, "/orders", createOrderBody)
	tn := decodeBody(t, created)["data"].(map[string]interface{})["trackingNumber"].(string)

	t.Run("existing number returns reduced projection", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/orders/tracking/"+tn, "")
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, tn, data["trackingNumber"])

		recipient := data["recipient"].(map[string]interface{})
		assert.Equal(t, "Jane Doe", recipient["name"])
		assert.NotContains(t, recipient, "email")
		assert.NotContains(t, data, "pricing")
		assert.NotContains(t, data, "sender")
	})
	t.Run("unknown number returns 404 without data", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/orders/tracking/TR00000000000000", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, decodeBody(t, w), "data")
	})
}

func TestListByCustomer(t *testing.T) {
	repo := newFakeOrderRepo()
	r := newTestRouter(t, repo)

	t.Run("invalid customer id", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/orders/customer/nope", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("valid customer id paginates", func(t *testing.T) {
		customerID := primitive.NewObjectID()
		w := doRequest(r, http.MethodGet, "/orders/customer/"+customerID.Hex()+"?limit=5", "")
		require.Equal(t, http.StatusOK, w.Code)

		pagination := decodeBody(t, w)["pagination"].(map[string]interface{})
		assert.Equal(t, float64(5), pagination["limit"])
		require.NotNil(t, repo.gotFilter.CustomerID)
		assert.Equal(t, customerID, *repo.gotFilter.CustomerID)
	})
}
