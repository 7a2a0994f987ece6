package layout

type SeatLayoutResponse struct {
	EventID       string         `json:"event_id,omitempty"`
	Frozen        bool           `json:"frozen"`
	TotalSeats    int            `json:"total_seats"`
	Seats         []CompiledSeat `json:"seats"`
	BookedSeatIDs []string       `json:"booked_seat_ids"`
}

type ReconcileSelectionResponse struct {
	States          map[string]SeatStatus `json:"states"`
	SelectedSeatIDs []string              `json:"selected_seat_ids"`
	TotalPrice      float64               `json:"total_price"`
	MaxSelectable   int                   `json:"max_selectable"`
}
