package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationType string

const (
	LocationTypeBusiness  LocationType = "Business"
	LocationTypeResidence LocationType = "Residence"
)

// Quote is a one-shot quote request submitted from the website. Quotes are
// created once and never updated or deleted.
type Quote struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName         string             `bson:"firstName" json:"firstName"`
	LastName          string             `bson:"lastName" json:"lastName"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	LocationType      LocationType       `bson:"locationType" json:"locationType"`
	Services          []string           `bson:"services" json:"services"`
	AdditionalDetails string             `bson:"additionalDetails,omitempty" json:"additionalDetails,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
