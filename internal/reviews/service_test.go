package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	reviews   map[uuid.UUID]*Review
	attendees map[uuid.UUID]map[uuid.UUID]bool
	renters   map[uuid.UUID]map[uuid.UUID]bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		reviews:   make(map[uuid.UUID]*Review),
		attendees: make(map[uuid.UUID]map[uuid.UUID]bool),
		renters:   make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *stubRepo) markAttendee(eventID, userID uuid.UUID) {
	if r.attendees[eventID] == nil {
		r.attendees[eventID] = make(map[uuid.UUID]bool)
	}
	r.attendees[eventID][userID] = true
}

func (r *stubRepo) markRenter(venueID, userID uuid.UUID) {
	if r.renters[venueID] == nil {
		r.renters[venueID] = make(map[uuid.UUID]bool)
	}
	r.renters[venueID][userID] = true
}

func (r *stubRepo) Create(ctx context.Context, review *Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *stubRepo) GetBySubjectAndUser(ctx context.Context, subject ReviewSubject, subjectID, userID uuid.UUID) (*Review, error) {
	for _, review := range r.reviews {
		if review.SubjectType == subject && review.SubjectID == subjectID && review.UserID == userID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) Update(ctx context.Context, review *Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.reviews, id)
	return nil
}

func (r *stubRepo) GetApprovedBySubject(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID, page, limit int) ([]Review, int64, error) {
	var out []Review
	for _, review := range r.reviews {
		if review.SubjectType == subject && review.SubjectID == subjectID && review.Status == StatusApproved {
			out = append(out, *review)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRepo) GetPending(ctx context.Context, page, limit int) ([]Review, int64, error) {
	var out []Review
	for _, review := range r.reviews {
		if review.Status == StatusPending {
			out = append(out, *review)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRepo) GetSummary(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID) (*RatingSummary, error) {
	var sum, count int64
	for _, review := range r.reviews {
		if review.SubjectType == subject && review.SubjectID == subjectID && review.Status == StatusApproved {
			sum += int64(review.Rating)
			count++
		}
	}
	avg := 0.0
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	return &RatingSummary{SubjectType: subject.String(), SubjectID: subjectID.String(), AverageRating: avg, ReviewCount: count}, nil
}

func (r *stubRepo) HasConfirmedBooking(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	return r.attendees[eventID][userID], nil
}

func (r *stubRepo) HasConfirmedVenueBooking(ctx context.Context, userID, venueID uuid.UUID) (bool, error) {
	return r.renters[venueID][userID], nil
}

func TestCreateReviewRequiresConfirmedBooking(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotAttendee)
}

func TestCreateReviewStartsPending(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	userID := uuid.New()
	repo.markAttendee(eventID, userID)

	review, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{
		Rating: 4, Comment: "Great sound, cramped seats",
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", review.Status)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	userID := uuid.New()
	repo.markAttendee(eventID, userID)

	_, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: 2})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestModerationFlow(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	userID := uuid.New()
	adminID := uuid.New()
	repo.markAttendee(eventID, userID)

	created, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	approved, err := svc.ApproveReview(context.Background(), reviewID, adminID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	// A moderated review cannot be ruled on twice.
	_, err = svc.RejectReview(context.Background(), reviewID, adminID)
	assert.ErrorIs(t, err, ErrAlreadyModerated)
}

func TestPublicListingShowsOnlyApproved(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	adminID := uuid.New()

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	var ids []uuid.UUID
	for _, userID := range users {
		repo.markAttendee(eventID, userID)
		created, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: 4})
		require.NoError(t, err)
		ids = append(ids, uuid.MustParse(created.ID))
	}

	_, err := svc.ApproveReview(context.Background(), ids[0], adminID)
	require.NoError(t, err)
	_, err = svc.RejectReview(context.Background(), ids[1], adminID)
	require.NoError(t, err)

	result, err := svc.GetEventReviews(context.Background(), eventID, ReviewListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)

	pending, err := svc.GetPendingReviews(context.Background(), ReviewListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.TotalCount)
}

func TestSummaryAveragesApprovedOnly(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	adminID := uuid.New()

	ratings := []int{5, 3}
	for _, rating := range ratings {
		userID := uuid.New()
		repo.markAttendee(eventID, userID)
		created, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
		_, err = svc.ApproveReview(context.Background(), uuid.MustParse(created.ID), adminID)
		require.NoError(t, err)
	}

	// Pending review must not shift the average.
	extra := uuid.New()
	repo.markAttendee(eventID, extra)
	_, err := svc.CreateReview(context.Background(), extra, eventID, CreateReviewRequest{Rating: 1})
	require.NoError(t, err)

	summary, err := svc.GetEventSummary(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, int64(2), summary.ReviewCount)
}

func TestEditResetsModeration(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	userID := uuid.New()
	adminID := uuid.New()
	repo.markAttendee(eventID, userID)

	created, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	_, err = svc.ApproveReview(context.Background(), reviewID, adminID)
	require.NoError(t, err)

	newRating := 2
	updated, err := svc.UpdateReview(context.Background(), reviewID, userID, UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", updated.Status)
	assert.Equal(t, 2, updated.Rating)
}

func TestUpdateReviewOwnershipEnforced(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	eventID := uuid.New()
	userID := uuid.New()
	repo.markAttendee(eventID, userID)

	created, err := svc.CreateReview(context.Background(), userID, eventID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	rating := 1
	_, err = svc.UpdateReview(context.Background(), uuid.MustParse(created.ID), uuid.New(), UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, ErrNotReviewOwner)
}

func TestCreateVenueReviewRequiresConfirmedRental(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	venueID := uuid.New()
	userID := uuid.New()

	_, err := svc.CreateVenueReview(context.Background(), userID, venueID, CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotAttendee)

	// A confirmed event booking does not unlock venue reviews.
	repo.markAttendee(venueID, userID)
	_, err = svc.CreateVenueReview(context.Background(), userID, venueID, CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotAttendee)

	repo.markRenter(venueID, userID)
	review, err := svc.CreateVenueReview(context.Background(), userID, venueID, CreateReviewRequest{
		Rating: 4, Comment: "Good acoustics, parking is tight",
	})
	require.NoError(t, err)
	assert.Equal(t, "VENUE", review.SubjectType)
	assert.Equal(t, "PENDING", review.Status)
}

func TestCreateVenueReviewRejectsDuplicate(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	venueID := uuid.New()
	userID := uuid.New()
	repo.markRenter(venueID, userID)

	_, err := svc.CreateVenueReview(context.Background(), userID, venueID, CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = svc.CreateVenueReview(context.Background(), userID, venueID, CreateReviewRequest{Rating: 2})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestVenueAndEventReviewsKeptSeparate(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	adminID := uuid.New()

	// Same UUID as event and venue subject; listings and summaries must
	// not bleed into each other.
	subjectID := uuid.New()

	eventUser := uuid.New()
	repo.markAttendee(subjectID, eventUser)
	created, err := svc.CreateReview(context.Background(), eventUser, subjectID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = svc.ApproveReview(context.Background(), uuid.MustParse(created.ID), adminID)
	require.NoError(t, err)

	venueUser := uuid.New()
	repo.markRenter(subjectID, venueUser)
	created, err = svc.CreateVenueReview(context.Background(), venueUser, subjectID, CreateReviewRequest{Rating: 1})
	require.NoError(t, err)
	_, err = svc.ApproveReview(context.Background(), uuid.MustParse(created.ID), adminID)
	require.NoError(t, err)

	eventSummary, err := svc.GetEventSummary(context.Background(), subjectID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, eventSummary.AverageRating)
	assert.Equal(t, int64(1), eventSummary.ReviewCount)

	venueSummary, err := svc.GetVenueSummary(context.Background(), subjectID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, venueSummary.AverageRating)

	venueReviews, err := svc.GetVenueReviews(context.Background(), subjectID, ReviewListQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), venueReviews.TotalCount)
	assert.Equal(t, "VENUE", venueReviews.Reviews[0].SubjectType)
}
