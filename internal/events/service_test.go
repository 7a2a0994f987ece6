package events

import (
	"context"
	"testing"
	"time"

	"eventvenue/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	events map[uuid.UUID]*Event
}

func newStubRepo() *stubRepo {
	return &stubRepo{events: make(map[uuid.UUID]*Event)}
}

func (r *stubRepo) Create(event *Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *stubRepo) GetByID(id uuid.UUID) (*Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *stubRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			event.Status = value.(EventStatus)
		case "start_time":
			event.StartTime = value.(time.Time)
		case "end_time":
			event.EndTime = value.(time.Time)
		case "was_rescheduled":
			event.WasRescheduled = value.(bool)
		case "venue_id":
			event.VenueID = value.(uuid.UUID)
		case "venue_edit_count":
			event.VenueEditCount = value.(int)
		case "is_venue_edit_locked":
			event.IsVenueEditLocked = value.(bool)
		case "name":
			event.Name = value.(string)
		}
	}
	copied := *event
	return &copied, nil
}

func (r *stubRepo) Delete(id uuid.UUID) error {
	delete(r.events, id)
	return nil
}

func (r *stubRepo) GetAll(_ EventListQuery) ([]Event, int64, error) {
	return nil, 0, nil
}

func (r *stubRepo) GetByVendorID(_ uuid.UUID) ([]Event, error) {
	return nil, nil
}

func (r *stubRepo) GetUpcomingEvents(_ int) ([]Event, error) {
	return nil, nil
}

func (r *stubRepo) DecrementTickets(eventID uuid.UUID, quantity int) error {
	event, ok := r.events[eventID]
	if !ok || event.TicketsAvailable < quantity {
		return gorm.ErrRecordNotFound
	}
	event.TicketsAvailable -= quantity
	return nil
}

func (r *stubRepo) RestoreTickets(eventID uuid.UUID, quantity int) error {
	event, ok := r.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.TicketsAvailable += quantity
	if event.TicketsAvailable > event.TotalTickets {
		event.TicketsAvailable = event.TotalTickets
	}
	return nil
}

func (r *stubRepo) CountBookings(_ uuid.UUID) (int64, error) {
	return 0, nil
}

type stubLayout struct {
	frozenSeats int
	frozenFor   []uuid.UUID
	err         error
}

func (l *stubLayout) FreezeLayout(_ context.Context, eventID uuid.UUID) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	l.frozenFor = append(l.frozenFor, eventID)
	return l.frozenSeats, nil
}

type stubWallet struct {
	charges []int64
}

func (w *stubWallet) ChargeFee(_ context.Context, _ uuid.UUID, points int64, _ string) error {
	w.charges = append(w.charges, points)
	return nil
}

type stubRefunds struct {
	rescheduled []uuid.UUID
	cancelled   []uuid.UUID
}

func (p *stubRefunds) ProcessVendorReschedule(_ context.Context, eventID uuid.UUID) error {
	p.rescheduled = append(p.rescheduled, eventID)
	return nil
}

func (p *stubRefunds) ProcessVendorCancellation(_ context.Context, eventID uuid.UUID) error {
	p.cancelled = append(p.cancelled, eventID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Points: config.PointsConfig{
			ConversionRate: 100,
			PlatformFee:    2,
			SeatEventFee:   20,
		},
	}
}

func seedEvent(repo *stubRepo, vendorID uuid.UUID, bookingType BookingType, status EventStatus) *Event {
	event := &Event{
		ID:          uuid.New(),
		VendorID:    vendorID,
		VenueID:     uuid.New(),
		Name:        "Rock Night",
		StartTime:   time.Now().Add(72 * time.Hour),
		Status:      status,
		BookingType: bookingType,
	}
	if bookingType == BookingTypeQuantity {
		event.TicketPrice = 50
		event.TotalTickets = 100
		event.TicketsAvailable = 100
	}
	repo.events[event.ID] = event
	return event
}

func TestPublishSeatSelectionEventFreezesLayoutAndChargesFee(t *testing.T) {
	repo := newStubRepo()
	layout := &stubLayout{frozenSeats: 10}
	wallet := &stubWallet{}
	svc := NewService(repo, testConfig())
	svc.SetLayoutService(layout)
	svc.SetWalletService(wallet)

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeSeatSelection, EventStatusDraft)

	result, err := svc.PublishEvent(context.Background(), event.ID, vendorID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusPublished, result.Event.Status)
	assert.Equal(t, 10, result.SeatsFrozen)
	assert.Equal(t, int64(20), result.SeatFeePoints)
	assert.Equal(t, []uuid.UUID{event.ID}, layout.frozenFor)
	assert.Equal(t, []int64{20}, wallet.charges)
}

func TestPublishQuantityEventSkipsLayout(t *testing.T) {
	repo := newStubRepo()
	layout := &stubLayout{}
	svc := NewService(repo, testConfig())
	svc.SetLayoutService(layout)

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusDraft)

	result, err := svc.PublishEvent(context.Background(), event.ID, vendorID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusPublished, result.Event.Status)
	assert.Empty(t, layout.frozenFor)
	assert.Zero(t, result.SeatFeePoints)
}

func TestPublishRejectsNonDraft(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusPublished)

	_, err := svc.PublishEvent(context.Background(), event.ID, vendorID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPublishRejectsOtherVendor(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())
	event := seedEvent(repo, uuid.New(), BookingTypeQuantity, EventStatusDraft)

	_, err := svc.PublishEvent(context.Background(), event.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotEventOwner)
}

func TestRescheduleMarksEventAndNotifiesBookings(t *testing.T) {
	repo := newStubRepo()
	refunds := &stubRefunds{}
	svc := NewService(repo, testConfig())
	svc.SetRefundProcessor(refunds)

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusPublished)
	newStart := time.Now().Add(30 * 24 * time.Hour)

	result, err := svc.RescheduleEvent(context.Background(), event.ID, vendorID, RescheduleEventRequest{StartTime: newStart})
	require.NoError(t, err)
	assert.True(t, result.WasRescheduled)
	assert.WithinDuration(t, newStart, result.StartTime, time.Second)
	assert.Equal(t, []uuid.UUID{event.ID}, refunds.rescheduled)
}

func TestCancelEventTriggersFullRefunds(t *testing.T) {
	repo := newStubRepo()
	refunds := &stubRefunds{}
	svc := NewService(repo, testConfig())
	svc.SetRefundProcessor(refunds)

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusPublished)

	result, err := svc.CancelEvent(context.Background(), event.ID, vendorID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusCancelled, result.Status)
	assert.Equal(t, []uuid.UUID{event.ID}, refunds.cancelled)
}

func TestCancelRejectsDraft(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusDraft)

	_, err := svc.CancelEvent(context.Background(), event.ID, vendorID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestVenueChangeLockedAfterTwoEdits(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusDraft)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		newVenue := uuid.New().String()
		_, err := svc.UpdateEvent(ctx, event.ID, vendorID, UpdateEventRequest{VenueID: &newVenue})
		require.NoError(t, err)
	}

	locked := repo.events[event.ID]
	assert.True(t, locked.IsVenueEditLocked)

	thirdVenue := uuid.New().String()
	_, err := svc.UpdateEvent(ctx, event.ID, vendorID, UpdateEventRequest{VenueID: &thirdVenue})
	assert.ErrorIs(t, err, ErrVenueEditLocked)
}

func TestReserveTicketsInsufficient(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())

	vendorID := uuid.New()
	event := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusPublished)
	event.TicketsAvailable = 3

	err := svc.ReserveTickets(context.Background(), event.ID, 5)
	assert.ErrorIs(t, err, ErrTicketsUnavailable)

	require.NoError(t, svc.ReserveTickets(context.Background(), event.ID, 3))
	assert.Equal(t, 0, repo.events[event.ID].TicketsAvailable)
}

func TestDeleteEventDraftOnly(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, testConfig())

	vendorID := uuid.New()
	published := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusPublished)
	err := svc.DeleteEvent(context.Background(), published.ID, vendorID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	draft := seedEvent(repo, vendorID, BookingTypeQuantity, EventStatusDraft)
	require.NoError(t, svc.DeleteEvent(context.Background(), draft.ID, vendorID))
	assert.NotContains(t, repo.events, draft.ID)
}
