package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusInTransit      OrderStatus = "in_transit"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every recognized status value.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPickedUp,
	OrderStatusInTransit,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether s is a member of the status enum.
func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type EventType string

const (
	EventTypePickup    EventType = "pickup"
	EventTypeTransit   EventType = "transit"
	EventTypeCustoms   EventType = "customs"
	EventTypeDelivery  EventType = "delivery"
	EventTypeException EventType = "exception"
	EventTypeInfo      EventType = "info"
)

type ContactInfo struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}

type Dimensions struct {
	Length float64 `bson:"length" json:"length"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
}

type Shipment struct {
	Destination           string     `bson:"destination" json:"destination"`
	Weight                float64    `bson:"weight" json:"weight"`
	Dimensions            Dimensions `bson:"dimensions" json:"dimensions"`
	PackageDescription    string     `bson:"packageDescription,omitempty" json:"packageDescription,omitempty"`
	PickupDate            time.Time  `bson:"pickupDate" json:"pickupDate"`
	EstimatedDeliveryDays string     `bson:"estimatedDeliveryDays" json:"estimatedDeliveryDays"`
	ActualDeliveryDate    *time.Time `bson:"actualDeliveryDate,omitempty" json:"actualDeliveryDate,omitempty"`
}

type Pricing struct {
	BaseRate    float64 `bson:"baseRate" json:"baseRate"`
	WeightCost  float64 `bson:"weightCost" json:"weightCost"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
	Currency    string  `bson:"currency" json:"currency"`
}

// Milestones carries the named lifecycle timestamps. Unset fields stay nil so
// partial merges never clobber previously recorded checkpoints.
type Milestones struct {
	OrderConfirmed       *time.Time `bson:"orderConfirmed,omitempty" json:"orderConfirmed,omitempty"`
	PackagePickedUp      *time.Time `bson:"packagePickedUp,omitempty" json:"packagePickedUp,omitempty"`
	InTransit            *time.Time `bson:"inTransit,omitempty" json:"inTransit,omitempty"`
	ArrivedAtDestination *time.Time `bson:"arrivedAtDestination,omitempty" json:"arrivedAtDestination,omitempty"`
	OutForDelivery       *time.Time `bson:"outForDelivery,omitempty" json:"outForDelivery,omitempty"`
	Delivered            *time.Time `bson:"delivered,omitempty" json:"delivered,omitempty"`
}

type TrackingEvent struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Timestamp         time.Time          `bson:"timestamp" json:"timestamp"`
	Status            string             `bson:"status" json:"status"`
	Location          string             `bson:"location" json:"location"`
	Description       string             `bson:"description" json:"description"`
	EventType         EventType          `bson:"eventType" json:"eventType"`
	AgentName         string             `bson:"agentName,omitempty" json:"agentName,omitempty"`
	FacilityCode      string             `bson:"facilityCode,omitempty" json:"facilityCode,omitempty"`
	NextExpectedEvent string             `bson:"nextExpectedEvent,omitempty" json:"nextExpectedEvent,omitempty"`
	Photos            []string           `bson:"photos,omitempty" json:"photos,omitempty"`
	Automated         bool               `bson:"automated" json:"automated"`
}

type RealTimeLocation struct {
	Latitude     float64   `bson:"latitude" json:"latitude"`
	Longitude    float64   `bson:"longitude" json:"longitude"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	LocationName string    `bson:"locationName,omitempty" json:"locationName,omitempty"`
	Vessel       string    `bson:"vessel,omitempty" json:"vessel,omitempty"`
	Flight       string    `bson:"flight,omitempty" json:"flight,omitempty"`
}

type Tracking struct {
	CurrentStatus         string            `bson:"currentStatus" json:"currentStatus"`
	CurrentLocation       string            `bson:"currentLocation" json:"currentLocation"`
	ProgressPercentage    float64           `bson:"progressPercentage" json:"progressPercentage"`
	EstimatedDeliveryDate *time.Time        `bson:"estimatedDeliveryDate,omitempty" json:"estimatedDeliveryDate,omitempty"`
	Milestones            Milestones        `bson:"milestones" json:"milestones"`
	Events                []TrackingEvent   `bson:"events" json:"events"`
	RealTimeLocation      *RealTimeLocation `bson:"realTimeLocation,omitempty" json:"realTimeLocation,omitempty"`
}

type DeliveryRating struct {
	Score    int       `bson:"score" json:"score"`
	Feedback string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	RatedAt  time.Time `bson:"ratedAt" json:"ratedAt"`
}

type Delivery struct {
	Attempts     int             `bson:"attempts" json:"attempts"`
	Instructions string          `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Photos       []string        `bson:"photos,omitempty" json:"photos,omitempty"`
	Signature    string          `bson:"signature,omitempty" json:"signature,omitempty"`
	DeliveredBy  string          `bson:"deliveredBy,omitempty" json:"deliveredBy,omitempty"`
	Notes        string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Rating       *DeliveryRating `bson:"rating,omitempty" json:"rating,omitempty"`
}

type Payment struct {
	Status        PaymentStatus `bson:"status" json:"status"`
	Method        string        `bson:"method,omitempty" json:"method,omitempty"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

type Notifications struct {
	SMSEnabled           bool       `bson:"smsEnabled" json:"smsEnabled"`
	EmailEnabled         bool       `bson:"emailEnabled" json:"emailEnabled"`
	LastNotificationSent *time.Time `bson:"lastNotificationSent,omitempty" json:"lastNotificationSent,omitempty"`
	Preferences          []string   `bson:"preferences" json:"preferences"`
}

// Order is the central shipment document. Booking and tracking numbers are
// unique across the collection and never regenerated after creation.
type Order struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerID          *primitive.ObjectID `bson:"customerId,omitempty" json:"customerId,omitempty"`
	BookingNumber       string              `bson:"bookingNumber" json:"bookingNumber"`
	TrackingNumber      string              `bson:"trackingNumber" json:"trackingNumber"`
	Status              OrderStatus         `bson:"status" json:"status"`
	Shipment            Shipment            `bson:"shipment" json:"shipment"`
	Sender              ContactInfo         `bson:"sender" json:"sender"`
	Recipient           ContactInfo         `bson:"recipient" json:"recipient"`
	Pricing             Pricing             `bson:"pricing" json:"pricing"`
	Tracking            Tracking            `bson:"tracking" json:"tracking"`
	Notifications       Notifications       `bson:"notifications" json:"notifications"`
	Delivery            *Delivery           `bson:"delivery,omitempty" json:"delivery,omitempty"`
	Payment             Payment             `bson:"payment" json:"payment"`
	Notes               string              `bson:"notes,omitempty" json:"notes,omitempty"`
	SpecialInstructions string              `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	IsActive            bool                `bson:"isActive" json:"isActive"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}
