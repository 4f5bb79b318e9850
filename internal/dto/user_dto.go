package dto

// RegisterRequest mirrors the partner registration form: flat fields that the
// service folds into the nested user document.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,password"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Title         string `json:"title"`
	Department    string `json:"department"`
	PrimaryPhone  string `json:"primaryPhone" binding:"required,min=5"`
	PartnerID     string `json:"partnerId" binding:"omitempty,partnerid"`
	CompanyName   string `json:"companyName"`
	StreetAddress string `json:"streetAddress" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country" binding:"required"`
	TruckNumber   string `json:"truckNumber"`
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SessionUser is the public slice of a user returned after sign-in.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}
