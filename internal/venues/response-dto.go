package venues

type PaginatedVenues struct {
	Venues     []Venue `json:"venues"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

type VenueResponse struct {
	Venue          Venue `json:"venue"`
	RemainingEdits int   `json:"remaining_location_edits"`
}

func toVenueResponse(venue *Venue) *VenueResponse {
	remaining := MaxLocationEdits - venue.LocationEditCount
	if remaining < 0 {
		remaining = 0
	}
	return &VenueResponse{
		Venue:          *venue,
		RemainingEdits: remaining,
	}
}
