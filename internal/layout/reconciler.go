package layout

import "sort"

// DefaultMaxSelectable caps how many seats one viewer can pick at once.
const DefaultMaxSelectable = 10

// Selection is a viewer's in-progress set of seat picks. It is an explicit
// value passed through the reconciler, never ambient state, so everything
// stays testable as plain functions.
type Selection struct {
	seats map[string]bool
	max   int
}

// NewSelection returns an empty selection capped at maxSelectable picks.
// A non-positive cap falls back to DefaultMaxSelectable.
func NewSelection(maxSelectable int) *Selection {
	if maxSelectable <= 0 {
		maxSelectable = DefaultMaxSelectable
	}
	return &Selection{
		seats: make(map[string]bool),
		max:   maxSelectable,
	}
}

// NewSelectionFrom seeds a selection with already-picked seat ids.
func NewSelectionFrom(ids []string, maxSelectable int) *Selection {
	sel := NewSelection(maxSelectable)
	for _, id := range ids {
		sel.seats[id] = true
	}
	return sel
}

// Toggle flips a seat in or out of the selection. It returns a
// SelectionRejected, leaving the selection untouched, when the seat is
// already booked or when adding would exceed the cap.
func (s *Selection) Toggle(seatID string, bookedIDs map[string]bool) error {
	if bookedIDs[seatID] {
		return &SelectionRejected{SeatID: seatID, Reason: "seat is already booked"}
	}
	if s.seats[seatID] {
		delete(s.seats, seatID)
		return nil
	}
	if len(s.seats) >= s.max {
		return &SelectionRejected{SeatID: seatID, Reason: "selection limit reached"}
	}
	s.seats[seatID] = true
	return nil
}

// Has reports whether a seat is currently selected.
func (s *Selection) Has(seatID string) bool {
	return s.seats[seatID]
}

// Count returns the number of selected seats.
func (s *Selection) Count() int {
	return len(s.seats)
}

// Max returns the selection cap.
func (s *Selection) Max() int {
	return s.max
}

// IDs returns the selected seat ids in sorted order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.seats))
	for id := range s.seats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reconcile maps every seat in the inventory to its viewer-visible state.
// BOOKED always wins, even for a stale-selected seat; otherwise SELECTED,
// otherwise AVAILABLE. The selection cap is enforced at toggle time, not
// here, so a reconciliation never mutates the selection.
func Reconcile(inventory []CompiledSeat, bookedIDs map[string]bool, selection *Selection) map[string]SeatStatus {
	states := make(map[string]SeatStatus, len(inventory))
	for _, seat := range inventory {
		switch {
		case bookedIDs[seat.ID]:
			states[seat.ID] = SeatBooked
		case selection != nil && selection.Has(seat.ID):
			states[seat.ID] = SeatSelected
		default:
			states[seat.ID] = SeatAvailable
		}
	}
	return states
}

// TotalPrice sums the price of every selected seat in the inventory. It is
// recomputed from scratch on each call; selection totals are never cached.
func TotalPrice(inventory []CompiledSeat, selection *Selection) float64 {
	if selection == nil {
		return 0
	}
	var total float64
	for _, seat := range inventory {
		if selection.Has(seat.ID) {
			total += seat.Price
		}
	}
	return total
}
