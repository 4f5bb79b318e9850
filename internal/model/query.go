package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderFilter narrows order listings. Zero-value fields are skipped; set
// fields combine conjunctively.
type OrderFilter struct {
	Status         string
	IsActive       *bool
	CustomerID     *primitive.ObjectID
	TrackingNumber string
	BookingNumber  string
}

// PageRequest is an offset pagination window, already clamped by the caller.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// StatusPatch describes a partial order update. Nil fields are left
// untouched; Milestones merges field-by-field and Event is appended to the
// stored event list.
type StatusPatch struct {
	Status                OrderStatus
	CurrentLocation       *string
	ProgressPercentage    *float64
	EstimatedDeliveryDate *time.Time
	Milestones            *Milestones
	Event                 *TrackingEvent
	Notes                 *string
	IsActive              *bool
}
