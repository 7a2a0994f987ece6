package events

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// CanBeUpdated reports whether a vendor may still edit the event.
func (s EventStatus) CanBeUpdated() bool {
	return s == EventStatusDraft || s == EventStatusPublished
}

// CanBeDeleted allows hard deletion of drafts only; published events are
// cancelled instead so existing bookings can be refunded.
func (s EventStatus) CanBeDeleted() bool {
	return s == EventStatusDraft
}

func (s EventStatus) CanBeBooked() bool {
	return s == EventStatusPublished
}

type BookingType string

const (
	BookingTypeQuantity      BookingType = "QUANTITY"
	BookingTypeSeatSelection BookingType = "SEAT_SELECTION"
)

func (b BookingType) IsValid() bool {
	return b == BookingTypeQuantity || b == BookingTypeSeatSelection
}
