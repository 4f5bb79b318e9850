package dto

// QuoteRequest is the get-a-quote form payload.
type QuoteRequest struct {
	FirstName         string   `json:"firstName" binding:"required"`
	LastName          string   `json:"lastName" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             string   `json:"phone" binding:"required"`
	LocationType      string   `json:"locationType" binding:"required,oneof=Business Residence"`
	Services          []string `json:"services"`
	AdditionalDetails string   `json:"additionalDetails"`
}
