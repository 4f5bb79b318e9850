package dto

import (
	"time"

	"tropical-cargo-api/internal/model"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type DimensionsRequest struct {
	Length *float64 `json:"length" binding:"required,gte=0"`
	Width  *float64 `json:"width" binding:"required,gte=0"`
	Height *float64 `json:"height" binding:"required,gte=0"`
}

type ShipmentRequest struct {
	Destination           string             `json:"destination" binding:"required"`
	Weight                *float64           `json:"weight" binding:"required,gte=0"`
	Dimensions            *DimensionsRequest `json:"dimensions" binding:"required"`
	PackageDescription    string             `json:"packageDescription"`
	PickupDate            DateTime           `json:"pickupDate" binding:"required"`
	EstimatedDeliveryDays string             `json:"estimatedDeliveryDays" binding:"required"`
	ActualDeliveryDate    *DateTime          `json:"actualDeliveryDate"`
}

type PricingRequest struct {
	BaseRate    *float64 `json:"baseRate" binding:"required,gte=0"`
	WeightCost  *float64 `json:"weightCost" binding:"required,gte=0"`
	TotalAmount *float64 `json:"totalAmount" binding:"required,gte=0"`
	Currency    string   `json:"currency" binding:"required"`
}

type MilestonesRequest struct {
	OrderConfirmed       *DateTime `json:"orderConfirmed"`
	PackagePickedUp      *DateTime `json:"packagePickedUp"`
	InTransit            *DateTime `json:"inTransit"`
	ArrivedAtDestination *DateTime `json:"arrivedAtDestination"`
	OutForDelivery       *DateTime `json:"outForDelivery"`
	Delivered            *DateTime `json:"delivered"`
}

type TrackingEventRequest struct {
	Timestamp         DateTime `json:"timestamp" binding:"required"`
	Status            string   `json:"status" binding:"required"`
	Location          string   `json:"location" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	EventType         string   `json:"eventType" binding:"required,oneof=pickup transit customs delivery exception info"`
	AgentName         string   `json:"agentName"`
	FacilityCode      string   `json:"facilityCode"`
	NextExpectedEvent string   `json:"nextExpectedEvent"`
	Photos            []string `json:"photos"`
	Automated         *bool    `json:"automated" binding:"required"`
}

type RealTimeLocationRequest struct {
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	Timestamp    DateTime `json:"timestamp" binding:"required"`
	LocationName string   `json:"locationName"`
	Vessel       string   `json:"vessel"`
	Flight       string   `json:"flight"`
}

type TrackingRequest struct {
	CurrentStatus         string                   `json:"currentStatus"`
	CurrentLocation       string                   `json:"currentLocation"`
	ProgressPercentage    *float64                 `json:"progressPercentage" binding:"omitempty,gte=0,lte=100"`
	EstimatedDeliveryDate *DateTime                `json:"estimatedDeliveryDate"`
	Milestones            *MilestonesRequest       `json:"milestones"`
	Events                []TrackingEventRequest   `json:"events" binding:"omitempty,dive"`
	RealTimeLocation      *RealTimeLocationRequest `json:"realTimeLocation"`
}

type NotificationsRequest struct {
	SMSEnabled           bool      `json:"smsEnabled"`
	EmailEnabled         bool      `json:"emailEnabled"`
	LastNotificationSent *DateTime `json:"lastNotificationSent"`
	Preferences          []string  `json:"preferences"`
}

type DeliveryRatingRequest struct {
	Score    *int     `json:"score" binding:"required,gte=1,lte=5"`
	Feedback string   `json:"feedback"`
	RatedAt  DateTime `json:"ratedAt" binding:"required"`
}

type DeliveryRequest struct {
	Attempts     *int                   `json:"attempts" binding:"omitempty,gte=0"`
	Instructions string                 `json:"instructions"`
	Photos       []string               `json:"photos"`
	Signature    string                 `json:"signature"`
	DeliveredBy  string                 `json:"deliveredBy"`
	Notes        string                 `json:"notes"`
	Rating       *DeliveryRatingRequest `json:"rating"`
}

type PaymentRequest struct {
	Status        string    `json:"status" binding:"omitempty,oneof=pending paid failed refunded"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transactionId"`
	PaidAt        *DateTime `json:"paidAt"`
}

// CreateOrderRequest is the booking submission payload. Booking and tracking
// numbers are generated when absent.
type CreateOrderRequest struct {
	BookingNumber       string                `json:"bookingNumber"`
	TrackingNumber      string                `json:"trackingNumber"`
	CustomerID          string                `json:"customerId" binding:"omitempty,objectid"`
	Status              string                `json:"status" binding:"omitempty,oneof=pending confirmed picked_up in_transit out_for_delivery delivered cancelled"`
	Shipment            *ShipmentRequest      `json:"shipment" binding:"required"`
	Sender              *ContactRequest       `json:"sender" binding:"required"`
	Recipient           *ContactRequest       `json:"recipient" binding:"required"`
	Pricing             *PricingRequest       `json:"pricing" binding:"required"`
	Tracking            *TrackingRequest      `json:"tracking"`
	Notifications       *NotificationsRequest `json:"notifications"`
	Delivery            *DeliveryRequest      `json:"delivery"`
	Payment             *PaymentRequest       `json:"payment"`
	Notes               string                `json:"notes"`
	SpecialInstructions string                `json:"specialInstructions"`
	IsActive            *bool                 `json:"isActive"`
}

// UpdateOrderStatusRequest is the PATCH payload. Only fields present are
// applied; milestones merge into the stored map, addEvent appends.
type UpdateOrderStatusRequest struct {
	Status                string                `json:"status" binding:"required,oneof=pending confirmed picked_up in_transit out_for_delivery delivered cancelled"`
	CurrentLocation       string                `json:"currentLocation"`
	ProgressPercentage    *float64              `json:"progressPercentage" binding:"omitempty,gte=0,lte=100"`
	EstimatedDeliveryDate *DateTime             `json:"estimatedDeliveryDate"`
	Milestones            *MilestonesRequest    `json:"milestones"`
	AddEvent              *TrackingEventRequest `json:"addEvent"`
	Notes                 *string               `json:"notes"`
	IsActive              *bool                 `json:"isActive"`
}

// OrderListQuery carries the raw listing filters before sanitation. Values
// that fail their check (enum membership, object id shape) are dropped, not
// rejected.
type OrderListQuery struct {
	Status         string
	IsActive       string
	CustomerID     string
	TrackingNumber string
	BookingNumber  string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// TrackingLookupResponse is the reduced projection served on the public
// tracking endpoint.
type TrackingLookupResponse struct {
	BookingNumber  string                  `json:"bookingNumber"`
	TrackingNumber string                  `json:"trackingNumber"`
	Status         model.OrderStatus       `json:"status"`
	Shipment       TrackingLookupShipment  `json:"shipment"`
	Tracking       model.Tracking          `json:"tracking"`
	Delivery       *model.Delivery         `json:"delivery,omitempty"`
	Recipient      TrackingLookupRecipient `json:"recipient"`
}

type TrackingLookupShipment struct {
	Destination           string     `json:"destination"`
	Weight                float64    `json:"weight"`
	PickupDate            time.Time  `json:"pickupDate"`
	EstimatedDeliveryDays string     `json:"estimatedDeliveryDays"`
	ActualDeliveryDate    *time.Time `json:"actualDeliveryDate,omitempty"`
}

type TrackingLookupRecipient struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
