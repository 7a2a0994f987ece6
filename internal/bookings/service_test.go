package bookings

import (
	"context"
	"testing"
	"time"

	"eventvenue/internal/events"
	"eventvenue/internal/layout"
	"eventvenue/internal/shared/config"
	"eventvenue/internal/venues"
	"eventvenue/internal/wallet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	bookings      map[uuid.UUID]*Booking
	venueBookings map[uuid.UUID]*VenueBooking
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		bookings:      make(map[uuid.UUID]*Booking),
		venueBookings: make(map[uuid.UUID]*VenueBooking),
	}
}

func (r *stubRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	for i := range booking.BookedSeats {
		booking.BookedSeats[i].BookingID = booking.ID
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *stubRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *stubRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, refundRate float64, refundPoints int64, cancelledAt *time.Time) error {
	booking, ok := r.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	booking.Status = status
	if cancelledAt != nil {
		booking.CancelledAt = cancelledAt
		booking.RefundRate = refundRate
		booking.RefundPoints = refundPoints
	}
	return nil
}

func (r *stubRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRepo) GetEventBookings(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubRepo) GetActiveBookingsForEvent(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.EventID == eventID && b.Status == StatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubRepo) CreateVenueBooking(ctx context.Context, booking *VenueBooking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.venueBookings[booking.ID] = booking
	return nil
}

func (r *stubRepo) GetVenueBookingByID(ctx context.Context, id uuid.UUID) (*VenueBooking, error) {
	booking, ok := r.venueBookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *stubRepo) UpdateVenueBookingStatus(ctx context.Context, id uuid.UUID, status Status, refundRate float64, refundPoints int64, cancelledAt *time.Time) error {
	booking, ok := r.venueBookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	booking.Status = status
	if cancelledAt != nil {
		booking.CancelledAt = cancelledAt
		booking.RefundRate = refundRate
		booking.RefundPoints = refundPoints
	}
	return nil
}

func (r *stubRepo) GetUserVenueBookings(ctx context.Context, userID uuid.UUID) ([]VenueBooking, error) {
	var out []VenueBooking
	for _, b := range r.venueBookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubRepo) GetVenueBookings(ctx context.Context, venueID uuid.UUID) ([]VenueBooking, error) {
	var out []VenueBooking
	for _, b := range r.venueBookings {
		if b.VenueID == venueID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubRepo) HasOverlappingVenueBooking(ctx context.Context, venueID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	for _, b := range r.venueBookings {
		if b.VenueID == venueID && b.Status == StatusConfirmed &&
			b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

type stubEvents struct {
	event       *events.Event
	reserveErr  error
	reserved    int
	released    int
}

func (s *stubEvents) GetEventRecord(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	if s.event == nil || s.event.ID != id {
		return nil, events.ErrEventNotFound
	}
	copied := *s.event
	return &copied, nil
}

func (s *stubEvents) ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	s.reserved += quantity
	return nil
}

func (s *stubEvents) ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) error {
	s.released += quantity
	return nil
}

type stubLayout struct {
	inventory []layout.CompiledSeat
	booked    map[string]bool
	claimErr  error

	claimed  []string
	freed    []string
	marked   []string
	unmarked []string
}

func (s *stubLayout) CompiledInventory(ctx context.Context, eventID uuid.UUID) ([]layout.CompiledSeat, error) {
	return s.inventory, nil
}

func (s *stubLayout) BookedSeatIDs(ctx context.Context, eventID uuid.UUID) (map[string]bool, error) {
	if s.booked == nil {
		return map[string]bool{}, nil
	}
	return s.booked, nil
}

func (s *stubLayout) ClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string) error {
	if s.claimErr != nil {
		return s.claimErr
	}
	s.claimed = append(s.claimed, seatIDs...)
	return nil
}

func (s *stubLayout) ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error {
	s.freed = append(s.freed, seatIDs...)
	return nil
}

func (s *stubLayout) MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	s.marked = append(s.marked, seatIDs...)
	return nil
}

func (s *stubLayout) UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	s.unmarked = append(s.unmarked, seatIDs...)
	return nil
}

type stubVenues struct {
	venue *venues.Venue
}

func (s *stubVenues) GetVenueRecord(ctx context.Context, id uuid.UUID) (*venues.Venue, error) {
	if s.venue == nil || s.venue.ID != id {
		return nil, venues.ErrVenueNotFound
	}
	copied := *s.venue
	return &copied, nil
}

type walletCall struct {
	userID uuid.UUID
	points int64
}

type stubWallet struct {
	balances map[uuid.UUID]int64

	deducts   []walletCall
	credits   []walletCall
	refunds   []walletCall
	clawbacks []walletCall
}

func newStubWallet() *stubWallet {
	return &stubWallet{balances: make(map[uuid.UUID]int64)}
}

func (s *stubWallet) Deduct(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error) {
	if s.balances[userID] < points {
		return nil, wallet.ErrInsufficientPoints
	}
	s.balances[userID] -= points
	s.deducts = append(s.deducts, walletCall{userID, points})
	return &wallet.PointTransaction{UserID: userID, Points: points}, nil
}

func (s *stubWallet) CreditVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error) {
	s.balances[vendorID] += points
	s.credits = append(s.credits, walletCall{vendorID, points})
	return &wallet.PointTransaction{UserID: vendorID, Points: points}, nil
}

func (s *stubWallet) Refund(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error) {
	s.balances[userID] += points
	s.refunds = append(s.refunds, walletCall{userID, points})
	return &wallet.PointTransaction{UserID: userID, Points: points}, nil
}

func (s *stubWallet) ClawbackVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error) {
	clawed := points
	if s.balances[vendorID] < clawed {
		clawed = s.balances[vendorID]
	}
	s.balances[vendorID] -= clawed
	s.clawbacks = append(s.clawbacks, walletCall{vendorID, clawed})
	return &wallet.PointTransaction{UserID: vendorID, Points: clawed}, nil
}

func (s *stubWallet) PointsForAmount(amount float64) int64 {
	return int64(amount * 100)
}

func (s *stubWallet) PlatformFee() int64 {
	return 2
}

func testConfig() *config.Config {
	return &config.Config{
		Booking: config.BookingConfig{
			MaxSeatsPerBooking:  10,
			FullRefundDays:      2,
			PartialRefundRate:   0.75,
			RescheduleRefundPct: 0.95,
		},
	}
}

func seatSelectionEvent(vendorID uuid.UUID, startIn time.Duration) *events.Event {
	return &events.Event{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Name:        "Jazz Night",
		StartTime:   time.Now().Add(startIn),
		Status:      events.EventStatusPublished,
		BookingType: events.BookingTypeSeatSelection,
	}
}

func quantityEvent(vendorID uuid.UUID, price float64, startIn time.Duration) *events.Event {
	return &events.Event{
		ID:               uuid.New(),
		VendorID:         vendorID,
		Name:             "Open Mic",
		StartTime:        time.Now().Add(startIn),
		Status:           events.EventStatusPublished,
		BookingType:      events.BookingTypeQuantity,
		TicketPrice:      price,
		TotalTickets:     100,
		TicketsAvailable: 100,
	}
}

func twoCategoryInventory() []layout.CompiledSeat {
	return []layout.CompiledSeat{
		{ID: "A-1", Row: "A", CategoryName: "VIP", Price: 100},
		{ID: "A-3", Row: "A", CategoryName: "VIP", Price: 100},
		{ID: "B-1", Row: "B", CategoryName: "General", Price: 25},
		{ID: "B-2", Row: "B", CategoryName: "General", Price: 25},
	}
}

func newBookingService(repo *stubRepo, ev *stubEvents, lay *stubLayout, wal *stubWallet) Service {
	return NewService(repo, testConfig(), ev, lay, wal, &stubVenues{})
}

func newVenueBookingService(repo *stubRepo, ven *stubVenues, wal *stubWallet) Service {
	return NewService(repo, testConfig(), &stubEvents{}, &stubLayout{}, wal, ven)
}

func rentableVenue(vendorID uuid.UUID, pricePerHour float64) *venues.Venue {
	return &venues.Venue{
		ID:           uuid.New(),
		VendorID:     vendorID,
		Name:         "Riverside Hall",
		PricePerHour: pricePerHour,
		IsAvailable:  true,
	}
}

func TestBookSeatsChargesWalletAndCreditsVendor(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 72*time.Hour)}
	lay := &stubLayout{inventory: twoCategoryInventory()}
	wal := newStubWallet()
	wal.balances[userID] = 20000

	svc := newBookingService(repo, ev, lay, wal)

	resp, err := svc.BookSeats(context.Background(), userID, ev.event.ID, BookSeatsRequest{
		SeatIDs:     []string{"A-3", "B-1"},
		PointsToUse: 12500,
	})
	require.NoError(t, err)

	assert.Equal(t, 125.0, resp.TotalPrice)
	assert.Equal(t, int64(12500), resp.TotalPoints)
	assert.Equal(t, int64(12500), resp.PointsUsed)
	assert.Equal(t, int64(2), resp.PlatformFeePoints)
	assert.Len(t, resp.Seats, 2)
	assert.Contains(t, resp.BookingRef, "EVT-")

	require.Len(t, wal.deducts, 1)
	assert.Equal(t, int64(12502), wal.deducts[0].points)
	require.Len(t, wal.credits, 1)
	assert.Equal(t, vendorID, wal.credits[0].userID)
	assert.Equal(t, int64(12500), wal.credits[0].points)

	assert.ElementsMatch(t, []string{"A-3", "B-1"}, lay.marked)
	assert.ElementsMatch(t, []string{"A-3", "B-1"}, lay.freed)
}

func TestBookSeatsRejectsBookedSeat(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: seatSelectionEvent(uuid.New(), 72*time.Hour)}
	lay := &stubLayout{
		inventory: twoCategoryInventory(),
		booked:    map[string]bool{"A-3": true},
	}
	wal := newStubWallet()
	wal.balances[userID] = 20000

	svc := newBookingService(newStubRepo(), ev, lay, wal)

	_, err := svc.BookSeats(context.Background(), userID, ev.event.ID, BookSeatsRequest{
		SeatIDs: []string{"A-3"}, PointsToUse: 10000,
	})
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Empty(t, lay.claimed)
}

func TestBookSeatsRejectsUnknownSeat(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: seatSelectionEvent(uuid.New(), 72*time.Hour)}
	lay := &stubLayout{inventory: twoCategoryInventory()}

	svc := newBookingService(newStubRepo(), ev, lay, newStubWallet())

	_, err := svc.BookSeats(context.Background(), userID, ev.event.ID, BookSeatsRequest{
		SeatIDs: []string{"Z-99"}, PointsToUse: 0, PaypalTransactionID: "PAY-12345",
	})
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestBookSeatsEnforcesSeatCap(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: seatSelectionEvent(uuid.New(), 72*time.Hour)}
	lay := &stubLayout{inventory: twoCategoryInventory()}

	svc := newBookingService(newStubRepo(), ev, lay, newStubWallet())

	seatIDs := make([]string, 11)
	for i := range seatIDs {
		seatIDs[i] = "A-" + string(rune('1'+i))
	}
	_, err := svc.BookSeats(context.Background(), userID, ev.event.ID, BookSeatsRequest{
		SeatIDs: seatIDs, PaypalTransactionID: "PAY-12345",
	})
	assert.ErrorIs(t, err, ErrTooManySeats)
}

func TestBookSeatsInsufficientPointsReleasesClaims(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: seatSelectionEvent(uuid.New(), 72*time.Hour)}
	lay := &stubLayout{inventory: twoCategoryInventory()}
	wal := newStubWallet()
	wal.balances[userID] = 100

	repo := newStubRepo()
	svc := newBookingService(repo, ev, lay, wal)

	_, err := svc.BookSeats(context.Background(), userID, ev.event.ID, BookSeatsRequest{
		SeatIDs: []string{"A-3", "B-1"}, PointsToUse: 12500,
	})
	assert.ErrorIs(t, err, wallet.ErrInsufficientPoints)
	assert.ElementsMatch(t, []string{"A-3", "B-1"}, lay.freed)
	assert.Empty(t, repo.bookings)
}

func TestBookSeatsRequiresPaymentWhenPointsShort(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: seatSelectionEvent(uuid.New(), 72*time.Hour)}
	lay := &stubLayout{inventory: twoCategoryInventory()}
	wal := newStubWallet()
	wal.balances[userID] = 20000

	svc := newBookingService(newStubRepo(), ev, lay, wal)

	_, err := svc.BookSeats(context.Background(), userID, ev.event.ID, BookSeatsRequest{
		SeatIDs: []string{"A-3"}, PointsToUse: 5000,
	})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestBookSeatsRejectsDraftEvent(t *testing.T) {
	userID := uuid.New()
	event := seatSelectionEvent(uuid.New(), 72*time.Hour)
	event.Status = events.EventStatusDraft
	ev := &stubEvents{event: event}

	svc := newBookingService(newStubRepo(), ev, &stubLayout{}, newStubWallet())

	_, err := svc.BookSeats(context.Background(), userID, event.ID, BookSeatsRequest{
		SeatIDs: []string{"A-3"}, PaypalTransactionID: "PAY-12345",
	})
	assert.ErrorIs(t, err, ErrEventNotBookable)
}

func TestBookTicketsReservesAndCharges(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	ev := &stubEvents{event: quantityEvent(vendorID, 50, 72*time.Hour)}
	wal := newStubWallet()
	wal.balances[userID] = 20000

	repo := newStubRepo()
	svc := newBookingService(repo, ev, &stubLayout{}, wal)

	resp, err := svc.BookTickets(context.Background(), userID, ev.event.ID, BookTicketsRequest{
		Quantity: 3, PointsToUse: 15000,
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, resp.TotalPrice)
	assert.Equal(t, int64(15000), resp.TotalPoints)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, 3, ev.reserved)
	assert.Equal(t, 0, ev.released)
}

func TestBookTicketsRejectsSeatSelectionEvent(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: seatSelectionEvent(uuid.New(), 72*time.Hour)}

	svc := newBookingService(newStubRepo(), ev, &stubLayout{}, newStubWallet())

	_, err := svc.BookTickets(context.Background(), userID, ev.event.ID, BookTicketsRequest{
		Quantity: 2, PaypalTransactionID: "PAY-12345",
	})
	assert.ErrorIs(t, err, ErrWrongBookingType)
}

func TestBookTicketsFailedPaymentRestoresTickets(t *testing.T) {
	userID := uuid.New()
	ev := &stubEvents{event: quantityEvent(uuid.New(), 50, 72*time.Hour)}
	wal := newStubWallet()
	wal.balances[userID] = 10

	svc := newBookingService(newStubRepo(), ev, &stubLayout{}, wal)

	_, err := svc.BookTickets(context.Background(), userID, ev.event.ID, BookTicketsRequest{
		Quantity: 2, PointsToUse: 10000,
	})
	assert.ErrorIs(t, err, wallet.ErrInsufficientPoints)
	assert.Equal(t, 2, ev.released)
}

func cancellableBooking(repo *stubRepo, userID, vendorID, eventID uuid.UUID) *Booking {
	booking := &Booking{
		ID:          uuid.New(),
		BookingRef:  "EVT-20260901-ABCDEF",
		UserID:      userID,
		VendorID:    vendorID,
		EventID:     eventID,
		BookingType: string(events.BookingTypeSeatSelection),
		Quantity:    2,
		TotalPrice:  125,
		TotalPoints: 12500,
		PointsUsed:  12500,
		Status:      StatusConfirmed,
		BookedSeats: []BookedSeat{
			{EventID: eventID, SeatID: "A-3", CategoryName: "VIP", Price: 100},
			{EventID: eventID, SeatID: "B-1", CategoryName: "General", Price: 25},
		},
	}
	repo.bookings[booking.ID] = booking
	return booking
}

func TestCancelBookingFullRefundOutsideWindow(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 72*time.Hour)}
	lay := &stubLayout{}
	wal := newStubWallet()
	wal.balances[vendorID] = 12500

	booking := cancellableBooking(repo, userID, vendorID, ev.event.ID)
	svc := newBookingService(repo, ev, lay, wal)

	result, err := svc.CancelBooking(context.Background(), booking.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, RefundFull, result.RefundReason)
	assert.Equal(t, 1.0, result.RefundRate)
	assert.Equal(t, int64(12500), result.RefundPoints)
	assert.Equal(t, int64(12500), wal.balances[userID])
	assert.Equal(t, int64(0), wal.balances[vendorID])
	assert.ElementsMatch(t, []string{"A-3", "B-1"}, lay.unmarked)
}

func TestCancelBookingPartialRefundInsideWindow(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 24*time.Hour)}
	wal := newStubWallet()
	wal.balances[vendorID] = 12500

	booking := cancellableBooking(repo, userID, vendorID, ev.event.ID)
	svc := newBookingService(repo, ev, &stubLayout{}, wal)

	result, err := svc.CancelBooking(context.Background(), booking.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, RefundPartial, result.RefundReason)
	assert.Equal(t, 0.75, result.RefundRate)
	assert.Equal(t, int64(9375), result.RefundPoints)
}

func TestCancelBookingAfterRescheduleUsesRescheduleRate(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	event := seatSelectionEvent(vendorID, 72*time.Hour)
	event.WasRescheduled = true
	ev := &stubEvents{event: event}
	wal := newStubWallet()
	wal.balances[vendorID] = 12500

	booking := cancellableBooking(repo, userID, vendorID, event.ID)
	svc := newBookingService(repo, ev, &stubLayout{}, wal)

	result, err := svc.CancelBooking(context.Background(), booking.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, RefundAfterReschedule, result.RefundReason)
	assert.Equal(t, 0.95, result.RefundRate)
	assert.Equal(t, int64(11875), result.RefundPoints)
}

func TestCancelBookingTwiceRejected(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 72*time.Hour)}
	wal := newStubWallet()
	wal.balances[vendorID] = 12500

	booking := cancellableBooking(repo, userID, vendorID, ev.event.ID)
	svc := newBookingService(repo, ev, &stubLayout{}, wal)

	_, err := svc.CancelBooking(context.Background(), booking.ID, userID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), booking.ID, userID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingOwnershipEnforced(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 72*time.Hour)}

	booking := cancellableBooking(repo, userID, vendorID, ev.event.ID)
	svc := newBookingService(repo, ev, &stubLayout{}, newStubWallet())

	_, err := svc.CancelBooking(context.Background(), booking.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestVendorCancellationRefundsEveryActiveBooking(t *testing.T) {
	vendorID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 24*time.Hour)}
	wal := newStubWallet()
	wal.balances[vendorID] = 25000

	first := cancellableBooking(repo, userA, vendorID, ev.event.ID)
	second := cancellableBooking(repo, userB, vendorID, ev.event.ID)
	svc := newBookingService(repo, ev, &stubLayout{}, wal)

	require.NoError(t, svc.ProcessVendorCancellation(context.Background(), ev.event.ID))

	assert.Equal(t, StatusCancelled, repo.bookings[first.ID].Status)
	assert.Equal(t, StatusCancelled, repo.bookings[second.ID].Status)
	// Vendor cancellation always refunds in full, even inside the window.
	assert.Equal(t, int64(12500), wal.balances[userA])
	assert.Equal(t, int64(12500), wal.balances[userB])
	assert.Equal(t, int64(0), wal.balances[vendorID])
}

func TestVendorClawbackNeverGoesNegative(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ev := &stubEvents{event: seatSelectionEvent(vendorID, 72*time.Hour)}
	wal := newStubWallet()
	wal.balances[vendorID] = 3000

	booking := cancellableBooking(repo, userID, vendorID, ev.event.ID)
	svc := newBookingService(repo, ev, &stubLayout{}, wal)

	result, err := svc.CancelBooking(context.Background(), booking.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, int64(12500), result.RefundPoints)
	assert.Equal(t, int64(0), wal.balances[vendorID])
	require.Len(t, wal.clawbacks, 1)
	assert.Equal(t, int64(3000), wal.clawbacks[0].points)
}

func TestComputeRefundBranches(t *testing.T) {
	cfg := testConfig().Booking
	booking := &Booking{TotalPoints: 10000}
	now := time.Now()

	tests := []struct {
		name            string
		start           time.Time
		wasRescheduled  bool
		vendorCancelled bool
		wantReason      RefundReason
		wantPoints      int64
	}{
		{"vendor cancelled", now.Add(time.Hour), false, true, RefundVendorCancelled, 10000},
		{"after reschedule", now.Add(96 * time.Hour), true, false, RefundAfterReschedule, 9500},
		{"outside window", now.Add(48 * time.Hour), false, false, RefundFull, 10000},
		{"inside window", now.Add(47 * time.Hour), false, false, RefundPartial, 7500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := ComputeRefund(booking, tt.start, tt.wasRescheduled, tt.vendorCancelled, now, cfg)
			assert.Equal(t, tt.wantReason, quote.Reason)
			assert.Equal(t, tt.wantPoints, quote.Points)
		})
	}
}

func TestBookVenueChargesHourlyRateWithRoundedHours(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ven := &stubVenues{venue: rentableVenue(vendorID, 200)}
	wal := newStubWallet()
	wal.balances[userID] = 70000

	svc := newVenueBookingService(repo, ven, wal)

	checkIn := time.Now().Add(96 * time.Hour)
	resp, err := svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
		CheckIn:     checkIn,
		CheckOut:    checkIn.Add(2*time.Hour + 30*time.Minute),
		PointsToUse: 60000,
	})
	require.NoError(t, err)

	// 2.5 hours bill as 3 full hours.
	assert.Equal(t, 3, resp.DurationHours)
	assert.Equal(t, 600.0, resp.TotalPrice)
	assert.Equal(t, int64(60000), resp.TotalPoints)
	assert.Equal(t, int64(2), resp.PlatformFeePoints)
	assert.Contains(t, resp.BookingRef, "VEN-")

	require.Len(t, wal.deducts, 1)
	assert.Equal(t, int64(60002), wal.deducts[0].points)
	require.Len(t, wal.credits, 1)
	assert.Equal(t, vendorID, wal.credits[0].userID)
	assert.Equal(t, int64(60000), wal.credits[0].points)
}

func TestBookVenueRejectsOverlappingSlot(t *testing.T) {
	userID := uuid.New()
	vendorID := uuid.New()
	repo := newStubRepo()
	ven := &stubVenues{venue: rentableVenue(vendorID, 100)}
	wal := newStubWallet()
	wal.balances[userID] = 50000

	svc := newVenueBookingService(repo, ven, wal)

	checkIn := time.Now().Add(96 * time.Hour)
	_, err := svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
		CheckIn: checkIn, CheckOut: checkIn.Add(4 * time.Hour), PointsToUse: 40000,
	})
	require.NoError(t, err)

	other := uuid.New()
	wal.balances[other] = 50000
	_, err = svc.BookVenue(context.Background(), other, ven.venue.ID, BookVenueRequest{
		CheckIn: checkIn.Add(2 * time.Hour), CheckOut: checkIn.Add(6 * time.Hour), PointsToUse: 40000,
	})
	assert.ErrorIs(t, err, ErrVenueSlotTaken)
}

func TestBookVenueBackToBackSlotsAllowed(t *testing.T) {
	userID := uuid.New()
	repo := newStubRepo()
	ven := &stubVenues{venue: rentableVenue(uuid.New(), 100)}
	wal := newStubWallet()
	wal.balances[userID] = 100000

	svc := newVenueBookingService(repo, ven, wal)

	checkIn := time.Now().Add(96 * time.Hour)
	_, err := svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
		CheckIn: checkIn, CheckOut: checkIn.Add(4 * time.Hour), PointsToUse: 40000,
	})
	require.NoError(t, err)

	// A slot starting exactly at the previous check-out does not overlap.
	_, err = svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
		CheckIn: checkIn.Add(4 * time.Hour), CheckOut: checkIn.Add(8 * time.Hour), PointsToUse: 40000,
	})
	assert.NoError(t, err)
}

func TestBookVenueRejectsUnavailableVenue(t *testing.T) {
	userID := uuid.New()
	venue := rentableVenue(uuid.New(), 100)
	venue.IsAvailable = false
	ven := &stubVenues{venue: venue}

	svc := newVenueBookingService(newStubRepo(), ven, newStubWallet())

	checkIn := time.Now().Add(96 * time.Hour)
	_, err := svc.BookVenue(context.Background(), userID, venue.ID, BookVenueRequest{
		CheckIn: checkIn, CheckOut: checkIn.Add(time.Hour), PaypalTransactionID: "PAY-12345",
	})
	assert.ErrorIs(t, err, ErrVenueNotBookable)
}

func TestBookVenueRejectsPastCheckIn(t *testing.T) {
	userID := uuid.New()
	ven := &stubVenues{venue: rentableVenue(uuid.New(), 100)}

	svc := newVenueBookingService(newStubRepo(), ven, newStubWallet())

	checkIn := time.Now().Add(-time.Hour)
	_, err := svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
		CheckIn: checkIn, CheckOut: checkIn.Add(2 * time.Hour), PaypalTransactionID: "PAY-12345",
	})
	assert.ErrorIs(t, err, ErrPastCheckIn)
}

func TestCancelVenueBookingRefundWindows(t *testing.T) {
	tests := []struct {
		name       string
		checkInIn  time.Duration
		wantReason RefundReason
		wantPoints int64
	}{
		{"outside window", 96 * time.Hour, RefundFull, 40000},
		{"inside window", 24 * time.Hour, RefundPartial, 30000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			vendorID := uuid.New()
			repo := newStubRepo()
			ven := &stubVenues{venue: rentableVenue(vendorID, 100)}
			wal := newStubWallet()
			wal.balances[userID] = 50000

			svc := newVenueBookingService(repo, ven, wal)

			checkIn := time.Now().Add(tt.checkInIn)
			resp, err := svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
				CheckIn: checkIn, CheckOut: checkIn.Add(4 * time.Hour), PointsToUse: 40000,
			})
			require.NoError(t, err)

			bookingID, err := uuid.Parse(resp.BookingID)
			require.NoError(t, err)

			result, err := svc.CancelVenueBooking(context.Background(), bookingID, userID)
			require.NoError(t, err)

			assert.Equal(t, tt.wantReason, result.RefundReason)
			assert.Equal(t, tt.wantPoints, result.RefundPoints)
			require.Len(t, wal.clawbacks, 1)
			assert.Equal(t, tt.wantPoints, wal.clawbacks[0].points)
		})
	}
}

func TestCancelVenueBookingOwnershipEnforced(t *testing.T) {
	userID := uuid.New()
	repo := newStubRepo()
	ven := &stubVenues{venue: rentableVenue(uuid.New(), 100)}
	wal := newStubWallet()
	wal.balances[userID] = 50000

	svc := newVenueBookingService(repo, ven, wal)

	checkIn := time.Now().Add(96 * time.Hour)
	resp, err := svc.BookVenue(context.Background(), userID, ven.venue.ID, BookVenueRequest{
		CheckIn: checkIn, CheckOut: checkIn.Add(2 * time.Hour), PointsToUse: 20000,
	})
	require.NoError(t, err)

	bookingID, err := uuid.Parse(resp.BookingID)
	require.NoError(t, err)

	_, err = svc.CancelVenueBooking(context.Background(), bookingID, uuid.New())
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestBookingReferenceFormat(t *testing.T) {
	ref, err := generateBookingReference()
	require.NoError(t, err)
	assert.Regexp(t, `^EVT-\d{8}-[A-Z]{6}$`, ref)
}

func TestTransactionIDFormat(t *testing.T) {
	assert.Regexp(t, `^TXN_\d+_[0-9A-F]{8}$`, generateTransactionID())
}
