package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country" json:"country"`
}

type Company struct {
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Department  string `bson:"department,omitempty" json:"department,omitempty"`
	PartnerID   string `bson:"partnerId,omitempty" json:"partnerId,omitempty"`
	TruckNumber string `bson:"truckNumber,omitempty" json:"truckNumber,omitempty"`
}

// User is a customer account. Password holds the bcrypt hash and is excluded
// from JSON and from default repository projections.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password,omitempty" json:"-"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	FirstName       string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName        string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address         Address            `bson:"address" json:"address"`
	Company         *Company           `bson:"company,omitempty" json:"company,omitempty"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	IsEmailVerified bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
