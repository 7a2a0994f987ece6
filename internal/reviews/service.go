package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventvenue/internal/shared/constants"
	"eventvenue/pkg/cache"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrNotReviewOwner   = errors.New("review belongs to a different user")
	ErrNotAttendee      = errors.New("only users with a confirmed booking can post a review")
	ErrAlreadyReviewed  = errors.New("user has already reviewed this")
	ErrAlreadyModerated = errors.New("review has already been moderated")
)

type Service interface {
	CreateReview(ctx context.Context, userID, eventID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error)
	CreateVenueReview(ctx context.Context, userID, venueID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error)
	UpdateReview(ctx context.Context, id, userID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error)
	DeleteReview(ctx context.Context, id, userID uuid.UUID) error

	GetEventReviews(ctx context.Context, eventID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error)
	GetEventSummary(ctx context.Context, eventID uuid.UUID) (*RatingSummary, error)
	GetVenueReviews(ctx context.Context, venueID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error)
	GetVenueSummary(ctx context.Context, venueID uuid.UUID) (*RatingSummary, error)

	// Admin moderation
	GetPendingReviews(ctx context.Context, query ReviewListQuery) (*PaginatedReviews, error)
	ApproveReview(ctx context.Context, id, adminID uuid.UUID) (*ReviewResponse, error)
	RejectReview(ctx context.Context, id, adminID uuid.UUID) (*ReviewResponse, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// CreateReview posts a review of an event the user attended.
func (s *service) CreateReview(ctx context.Context, userID, eventID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	attended, err := s.repo.HasConfirmedBooking(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking: %w", err)
	}
	if !attended {
		return nil, ErrNotAttendee
	}
	return s.createForSubject(ctx, SubjectEvent, eventID, userID, req)
}

// CreateVenueReview posts a review of a venue the user rented. The gate is
// a confirmed venue booking, not an event ticket.
func (s *service) CreateVenueReview(ctx context.Context, userID, venueID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	rented, err := s.repo.HasConfirmedVenueBooking(ctx, userID, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to check venue booking: %w", err)
	}
	if !rented {
		return nil, ErrNotAttendee
	}
	return s.createForSubject(ctx, SubjectVenue, venueID, userID, req)
}

func (s *service) createForSubject(ctx context.Context, subject ReviewSubject, subjectID, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	existing, err := s.repo.GetBySubjectAndUser(ctx, subject, subjectID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &Review{
		SubjectType: subject,
		SubjectID:   subjectID,
		UserID:      userID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	resp := review.ToResponse()
	return &resp, nil
}

// UpdateReview edits an own review. Any edit sends the review back to the
// moderation queue.
func (s *service) UpdateReview(ctx context.Context, id, userID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.ownedReview(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	review.Status = StatusPending
	review.ModeratedBy = nil
	review.ModeratedAt = nil

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.invalidateSubjectCache(ctx, review.SubjectType, review.SubjectID)
	resp := review.ToResponse()
	return &resp, nil
}

func (s *service) DeleteReview(ctx context.Context, id, userID uuid.UUID) error {
	review, err := s.ownedReview(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidateSubjectCache(ctx, review.SubjectType, review.SubjectID)
	return nil
}

func (s *service) GetEventReviews(ctx context.Context, eventID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error) {
	return s.listForSubject(ctx, SubjectEvent, eventID, query)
}

func (s *service) GetVenueReviews(ctx context.Context, venueID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error) {
	return s.listForSubject(ctx, SubjectVenue, venueID, query)
}

func (s *service) listForSubject(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	cacheKey := listCacheKey(subject, subjectID, query.Page)
	if s.cacheService != nil {
		var cached PaginatedReviews
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	reviews, totalCount, err := s.repo.GetApprovedBySubject(ctx, subject, subjectID, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	result := &PaginatedReviews{
		Reviews:    toResponses(reviews),
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}

	if s.cacheService != nil {
		ttl := constants.TTL_REVIEWS_BY_EVENT
		if subject == SubjectVenue {
			ttl = constants.TTL_REVIEWS_BY_VENUE
		}
		if err := s.cacheService.Set(ctx, cacheKey, result, ttl); err != nil {
			logger.GetDefault().Debug("failed to cache reviews:", err)
		}
	}
	return result, nil
}

func (s *service) GetEventSummary(ctx context.Context, eventID uuid.UUID) (*RatingSummary, error) {
	return s.summaryForSubject(ctx, SubjectEvent, eventID)
}

func (s *service) GetVenueSummary(ctx context.Context, venueID uuid.UUID) (*RatingSummary, error) {
	return s.summaryForSubject(ctx, SubjectVenue, venueID)
}

func (s *service) summaryForSubject(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID) (*RatingSummary, error) {
	cacheKey := constants.CACHE_KEY_REVIEW_SUMMARY + subjectID.String()
	if s.cacheService != nil {
		var cached RatingSummary
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.repo.GetSummary(ctx, subject, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating summary: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, summary, constants.TTL_REVIEW_SUMMARY); err != nil {
			logger.GetDefault().Debug("failed to cache rating summary:", err)
		}
	}
	return summary, nil
}

func (s *service) GetPendingReviews(ctx context.Context, query ReviewListQuery) (*PaginatedReviews, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	reviews, totalCount, err := s.repo.GetPending(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending reviews: %w", err)
	}

	return &PaginatedReviews{
		Reviews:    toResponses(reviews),
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

func (s *service) ApproveReview(ctx context.Context, id, adminID uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, adminID, StatusApproved)
}

func (s *service) RejectReview(ctx context.Context, id, adminID uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, adminID, StatusRejected)
}

func (s *service) moderate(ctx context.Context, id, adminID uuid.UUID, status ReviewStatus) (*ReviewResponse, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review.Status.IsModerated() {
		return nil, ErrAlreadyModerated
	}

	now := time.Now()
	review.Status = status
	review.ModeratedBy = &adminID
	review.ModeratedAt = &now

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to moderate review: %w", err)
	}

	s.invalidateSubjectCache(ctx, review.SubjectType, review.SubjectID)
	resp := review.ToResponse()
	return &resp, nil
}

func (s *service) ownedReview(ctx context.Context, id, userID uuid.UUID) (*Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}
	return review, nil
}

func (s *service) invalidateSubjectCache(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	prefix := constants.CACHE_KEY_REVIEWS_BY_EVENT
	if subject == SubjectVenue {
		prefix = constants.CACHE_KEY_REVIEWS_BY_VENUE
	}
	if err := s.cacheService.DeletePattern(ctx, prefix+subjectID.String()+"*"); err != nil {
		logger.GetDefault().Debug("failed to invalidate review cache:", err)
	}
	if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_REVIEW_SUMMARY+subjectID.String()); err != nil {
		logger.GetDefault().Debug("failed to invalidate rating summary cache:", err)
	}
}

func listCacheKey(subject ReviewSubject, subjectID uuid.UUID, page int) string {
	if subject == SubjectVenue {
		return constants.BuildReviewsByVenueKey(subjectID.String(), page)
	}
	return constants.BuildReviewsByEventKey(subjectID.String(), page)
}

func toResponses(reviews []Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviews[i].ToResponse())
	}
	return out
}
