package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/model"
	"tropical-cargo-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interface implemented by the Mongo repository.
type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Order, error)
	IdentifierExists(ctx context.Context, field, value string) (bool, error)
	Find(ctx context.Context, filter model.OrderFilter, page model.PageRequest) ([]*model.Order, int64, error)
	ApplyStatusPatch(ctx context.Context, id primitive.ObjectID, patch model.StatusPatch) (*model.Order, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	SetLastNotificationSent(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// StatusNotifier fans a status change out to the notification pipeline.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, o *model.Order) error
}

// Business errors surfaced to the controllers.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrDuplicateIdentifier = errors.New("order with the same booking or tracking number already exists")
	ErrIdentifierExhausted = errors.New("unable to generate a unique identifier")
)

const (
	bookingPrefix  = "BK"
	trackingPrefix = "TR"

	// identifierAttempts bounds the collision-avoidance loop.
	identifierAttempts = 5

	DefaultPageLimit = 20
	MaxPageLimit     = 100

	defaultLocation = "Processing"
)

type OrderService struct {
	repo     OrderRepository
	notifier StatusNotifier
	logger   *slog.Logger
}

// NewOrderService constructs the service. notifier may be nil when no broker
// is wired (tests, local runs without RabbitMQ).
func NewOrderService(repo OrderRepository, notifier StatusNotifier, logger *slog.Logger) *OrderService {
	return &OrderService{repo: repo, notifier: notifier, logger: logger}
}

// Create persists a new order, generating booking and tracking numbers when
// the payload carries none and defaulting the tracking/payment sub-documents.
func (s *OrderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	bookingNumber := strings.TrimSpace(req.BookingNumber)
	trackingNumber := strings.TrimSpace(req.TrackingNumber)

	var err error
	if bookingNumber == "" {
		if bookingNumber, err = s.generateIdentifier(ctx, "bookingNumber", bookingPrefix); err != nil {
			return nil, err
		}
	}
	if trackingNumber == "" {
		if trackingNumber, err = s.generateIdentifier(ctx, "trackingNumber", trackingPrefix); err != nil {
			return nil, err
		}
	}

	order := buildOrder(req, bookingNumber, trackingNumber)

	if err := s.repo.Insert(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateIdentifier
		}
		return nil, err
	}
	return order, nil
}

// List returns one page of orders plus the pagination block. Filters that
// fail their sanity check are dropped rather than rejected.
func (s *OrderService) List(ctx context.Context, query dto.OrderListQuery, page, limit int) ([]*model.Order, dto.Pagination, error) {
	return s.list(ctx, buildOrderFilter(query), page, limit)
}

// ListByCustomer returns the customer's orders with the same pagination
// semantics as List. The status filter, when present, is applied verbatim.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID primitive.ObjectID, status string, page, limit int) ([]*model.Order, dto.Pagination, error) {
	filter := model.OrderFilter{CustomerID: &customerID, Status: status}
	return s.list(ctx, filter, page, limit)
}

func (s *OrderService) list(ctx context.Context, filter model.OrderFilter, page, limit int) ([]*model.Order, dto.Pagination, error) {
	pr := NormalizePage(page, limit)

	orders, total, err := s.repo.Find(ctx, filter, pr)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	if orders == nil {
		orders = []*model.Order{}
	}

	return orders, dto.Pagination{
		Page:       pr.Page,
		Limit:      pr.Limit,
		Total:      total,
		TotalPages: totalPages(total, pr.Limit),
	}, nil
}

func (s *OrderService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// Track resolves the public tracking projection for a tracking number.
func (s *OrderService) Track(ctx context.Context, trackingNumber string) (*dto.TrackingLookupResponse, error) {
	order, err := s.repo.FindByTrackingNumber(ctx, strings.TrimSpace(trackingNumber))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &dto.TrackingLookupResponse{
		BookingNumber:  order.BookingNumber,
		TrackingNumber: order.TrackingNumber,
		Status:         order.Status,
		Shipment: dto.TrackingLookupShipment{
			Destination:           order.Shipment.Destination,
			Weight:                order.Shipment.Weight,
			PickupDate:            order.Shipment.PickupDate,
			EstimatedDeliveryDays: order.Shipment.EstimatedDeliveryDays,
			ActualDeliveryDate:    order.Shipment.ActualDeliveryDate,
		},
		Tracking: order.Tracking,
		Delivery: order.Delivery,
		Recipient: dto.TrackingLookupRecipient{
			Name:    order.Recipient.Name,
			Address: order.Recipient.Address,
		},
	}, nil
}

// UpdateStatus applies a partial status/tracking patch and returns the
// updated document. No transition table is enforced: any enum value may
// replace any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, req *dto.UpdateOrderStatusRequest) (*model.Order, error) {
	patch := model.StatusPatch{
		Status:                model.OrderStatus(req.Status),
		ProgressPercentage:    req.ProgressPercentage,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate.TimePtr(),
		Notes:                 req.Notes,
		IsActive:              req.IsActive,
	}
	if req.CurrentLocation != "" {
		patch.CurrentLocation = &req.CurrentLocation
	}
	if req.Milestones != nil {
		patch.Milestones = &model.Milestones{
			OrderConfirmed:       req.Milestones.OrderConfirmed.TimePtr(),
			PackagePickedUp:      req.Milestones.PackagePickedUp.TimePtr(),
			InTransit:            req.Milestones.InTransit.TimePtr(),
			ArrivedAtDestination: req.Milestones.ArrivedAtDestination.TimePtr(),
			OutForDelivery:       req.Milestones.OutForDelivery.TimePtr(),
			Delivered:            req.Milestones.Delivered.TimePtr(),
		}
	}
	if req.AddEvent != nil {
		ev := toTrackingEvent(req.AddEvent)
		patch.Event = &ev
	}

	order, err := s.repo.ApplyStatusPatch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	s.notifyStatusChanged(ctx, order)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// notifyStatusChanged publishes a status event when the order opted into
// notifications. Publish failures are logged, never surfaced to the caller.
func (s *OrderService) notifyStatusChanged(ctx context.Context, order *model.Order) {
	if s.notifier == nil {
		return
	}
	if !order.Notifications.SMSEnabled && !order.Notifications.EmailEnabled {
		return
	}

	if err := s.notifier.NotifyStatusChanged(ctx, order); err != nil {
		s.logger.Warn("status notification publish failed",
			"orderId", order.ID.Hex(), "error", err)
		return
	}

	now := time.Now().UTC()
	if err := s.repo.SetLastNotificationSent(ctx, order.ID, now); err != nil {
		s.logger.Warn("failed to record notification timestamp",
			"orderId", order.ID.Hex(), "error", err)
		return
	}
	order.Notifications.LastNotificationSent = &now
}

func (s *OrderService) generateIdentifier(ctx context.Context, field, prefix string) (string, error) {
	for attempt := 0; attempt < identifierAttempts; attempt++ {
		id := fmt.Sprintf("%s%d%04d", prefix, time.Now().UnixMilli(), rand.Intn(10000))
		exists, err := s.repo.IdentifierExists(ctx, field, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrIdentifierExhausted, field)
}

// NormalizePage replaces missing values with the defaults (page 1, limit 20)
// and clamps page to >=1 and limit into [1,100].
func NormalizePage(page, limit int) model.PageRequest {
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page < 1 {
		page = 1
	}
	return model.PageRequest{Page: page, Limit: limit}
}

func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// buildOrderFilter sanitizes the raw listing query: a status outside the
// enum and a malformed customer id are ignored, not rejected.
func buildOrderFilter(q dto.OrderListQuery) model.OrderFilter {
	filter := model.OrderFilter{
		TrackingNumber: strings.TrimSpace(q.TrackingNumber),
		BookingNumber:  strings.TrimSpace(q.BookingNumber),
	}
	if model.IsValidOrderStatus(q.Status) {
		filter.Status = q.Status
	}
	switch q.IsActive {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}
	if oid, err := primitive.ObjectIDFromHex(q.CustomerID); err == nil {
		filter.CustomerID = &oid
	}
	return filter
}

func buildOrder(req *dto.CreateOrderRequest, bookingNumber, trackingNumber string) *model.Order {
	status := model.OrderStatusPending
	if req.Status != "" {
		status = model.OrderStatus(req.Status)
	}

	order := &model.Order{
		BookingNumber:  bookingNumber,
		TrackingNumber: trackingNumber,
		Status:         status,
		Shipment: model.Shipment{
			Destination: req.Shipment.Destination,
			Weight:      *req.Shipment.Weight,
			Dimensions: model.Dimensions{
				Length: *req.Shipment.Dimensions.Length,
				Width:  *req.Shipment.Dimensions.Width,
				Height: *req.Shipment.Dimensions.Height,
			},
			PackageDescription:    req.Shipment.PackageDescription,
			PickupDate:            req.Shipment.PickupDate.Time,
			EstimatedDeliveryDays: req.Shipment.EstimatedDeliveryDays,
			ActualDeliveryDate:    req.Shipment.ActualDeliveryDate.TimePtr(),
		},
		Sender:    toContactInfo(req.Sender),
		Recipient: toContactInfo(req.Recipient),
		Pricing: model.Pricing{
			BaseRate:    *req.Pricing.BaseRate,
			WeightCost:  *req.Pricing.WeightCost,
			TotalAmount: *req.Pricing.TotalAmount,
			Currency:    req.Pricing.Currency,
		},
		Tracking:            buildTracking(req.Tracking, status),
		Notifications:       buildNotifications(req.Notifications),
		Payment:             buildPayment(req.Payment),
		Notes:               req.Notes,
		SpecialInstructions: req.SpecialInstructions,
		IsActive:            true,
	}

	if req.IsActive != nil {
		order.IsActive = *req.IsActive
	}
	if oid, err := primitive.ObjectIDFromHex(req.CustomerID); err == nil {
		order.CustomerID = &oid
	}
	if req.Delivery != nil {
		order.Delivery = toDelivery(req.Delivery)
	}
	return order
}

func toContactInfo(c *dto.ContactRequest) model.ContactInfo {
	return model.ContactInfo{
		Name:    c.Name,
		Email:   strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:   c.Phone,
		Address: c.Address,
	}
}

func buildTracking(req *dto.TrackingRequest, status model.OrderStatus) model.Tracking {
	tracking := model.Tracking{
		CurrentStatus:      string(status),
		CurrentLocation:    defaultLocation,
		ProgressPercentage: 0,
		Events:             []model.TrackingEvent{},
	}
	if req == nil {
		return tracking
	}

	if req.CurrentStatus != "" {
		tracking.CurrentStatus = req.CurrentStatus
	}
	if req.CurrentLocation != "" {
		tracking.CurrentLocation = req.CurrentLocation
	}
	if req.ProgressPercentage != nil {
		tracking.ProgressPercentage = *req.ProgressPercentage
	}
	tracking.EstimatedDeliveryDate = req.EstimatedDeliveryDate.TimePtr()
	if req.Milestones != nil {
		tracking.Milestones = model.Milestones{
			OrderConfirmed:       req.Milestones.OrderConfirmed.TimePtr(),
			PackagePickedUp:      req.Milestones.PackagePickedUp.TimePtr(),
			InTransit:            req.Milestones.InTransit.TimePtr(),
			ArrivedAtDestination: req.Milestones.ArrivedAtDestination.TimePtr(),
			OutForDelivery:       req.Milestones.OutForDelivery.TimePtr(),
			Delivered:            req.Milestones.Delivered.TimePtr(),
		}
	}
	for i := range req.Events {
		tracking.Events = append(tracking.Events, toTrackingEvent(&req.Events[i]))
	}
	if req.RealTimeLocation != nil {
		tracking.RealTimeLocation = &model.RealTimeLocation{
			Latitude:     *req.RealTimeLocation.Latitude,
			Longitude:    *req.RealTimeLocation.Longitude,
			Timestamp:    req.RealTimeLocation.Timestamp.Time,
			LocationName: req.RealTimeLocation.LocationName,
			Vessel:       req.RealTimeLocation.Vessel,
			Flight:       req.RealTimeLocation.Flight,
		}
	}
	return tracking
}

func toTrackingEvent(e *dto.TrackingEventRequest) model.TrackingEvent {
	return model.TrackingEvent{
		Timestamp:         e.Timestamp.Time,
		Status:            e.Status,
		Location:          e.Location,
		Description:       e.Description,
		EventType:         model.EventType(e.EventType),
		AgentName:         e.AgentName,
		FacilityCode:      e.FacilityCode,
		NextExpectedEvent: e.NextExpectedEvent,
		Photos:            e.Photos,
		Automated:         e.Automated != nil && *e.Automated,
	}
}

func buildNotifications(req *dto.NotificationsRequest) model.Notifications {
	notifications := model.Notifications{Preferences: []string{}}
	if req == nil {
		return notifications
	}
	notifications.SMSEnabled = req.SMSEnabled
	notifications.EmailEnabled = req.EmailEnabled
	notifications.LastNotificationSent = req.LastNotificationSent.TimePtr()
	if req.Preferences != nil {
		notifications.Preferences = req.Preferences
	}
	return notifications
}

func buildPayment(req *dto.PaymentRequest) model.Payment {
	payment := model.Payment{Status: model.PaymentStatusPending}
	if req == nil {
		return payment
	}
	if req.Status != "" {
		payment.Status = model.PaymentStatus(req.Status)
	}
	payment.Method = req.Method
	payment.TransactionID = req.TransactionID
	payment.PaidAt = req.PaidAt.TimePtr()
	return payment
}

func toDelivery(req *dto.DeliveryRequest) *model.Delivery {
	delivery := &model.Delivery{
		Instructions: req.Instructions,
		Photos:       req.Photos,
		Signature:    req.Signature,
		DeliveredBy:  req.DeliveredBy,
		Notes:        req.Notes,
	}
	if req.Attempts != nil {
		delivery.Attempts = *req.Attempts
	}
	if req.Rating != nil {
		delivery.Rating = &model.DeliveryRating{
			Score:    *req.Rating.Score,
			Feedback: req.Rating.Feedback,
			RatedAt:  req.Rating.RatedAt.Time,
		}
	}
	return delivery
}
