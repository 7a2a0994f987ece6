package venues

import "github.com/google/uuid"

type CreateVenueRequest struct {
	Name         string  `json:"name" binding:"required,min=3,max=255"`
	Description  string  `json:"description" binding:"max=1000"`
	Address      string  `json:"address" binding:"required,min=5,max=500"`
	City         string  `json:"city" binding:"required,min=2,max=100"`
	Category     string  `json:"category" binding:"max=100"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
	PricePerHour float64 `json:"price_per_hour" binding:"min=0"`
	Amenities    string  `json:"amenities" binding:"max=1000"`
}

type UpdateVenueRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=3,max=255"`
	Description  *string  `json:"description" binding:"omitempty,max=1000"`
	Address      *string  `json:"address" binding:"omitempty,min=5,max=500"`
	City         *string  `json:"city" binding:"omitempty,min=2,max=100"`
	Category     *string  `json:"category" binding:"omitempty,max=100"`
	Capacity     *int     `json:"capacity" binding:"omitempty,min=1"`
	PricePerHour *float64 `json:"price_per_hour" binding:"omitempty,min=0"`
	Amenities    *string  `json:"amenities" binding:"omitempty,max=1000"`
	IsAvailable  *bool    `json:"is_available"`
}

type VenueFilters struct {
	Page        int     `form:"page" binding:"omitempty,min=1"`
	Limit       int     `form:"limit" binding:"omitempty,min=1,max=100"`
	City        string  `form:"city"`
	Category    string  `form:"category"`
	Search      string  `form:"search"`
	MaxPrice    float64 `form:"max_price" binding:"omitempty,min=0"`
	MinCapacity int     `form:"min_capacity" binding:"omitempty,min=0"`
	VendorID    uuid.UUID
}
