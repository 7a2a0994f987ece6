package reviews

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetBySubjectAndUser(ctx context.Context, subject ReviewSubject, subjectID, userID uuid.UUID) (*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetApprovedBySubject(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID, page, limit int) ([]Review, int64, error)
	GetPending(ctx context.Context, page, limit int) ([]Review, int64, error)
	GetSummary(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID) (*RatingSummary, error)

	// The attendance checks query the booking tables directly; the reviews
	// module never imports the bookings package.
	HasConfirmedBooking(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	HasConfirmedVenueBooking(ctx context.Context, userID, venueID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *repository) GetBySubjectAndUser(ctx context.Context, subject ReviewSubject, subjectID, userID uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ? AND user_id = ?", subject, subjectID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *repository) Update(ctx context.Context, review *Review) error {
	review.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Review{}).Error
}

func (r *repository) GetApprovedBySubject(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID, page, limit int) ([]Review, int64, error) {
	var reviews []Review
	var totalCount int64

	base := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("subject_type = ? AND subject_id = ? AND status = ?", subject, subjectID, StatusApproved)

	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error

	return reviews, totalCount, err
}

func (r *repository) GetPending(ctx context.Context, page, limit int) ([]Review, int64, error) {
	var reviews []Review
	var totalCount int64

	base := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("status = ?", StatusPending)

	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error

	return reviews, totalCount, err
}

func (r *repository) GetSummary(ctx context.Context, subject ReviewSubject, subjectID uuid.UUID) (*RatingSummary, error) {
	var result struct {
		AverageRating float64
		ReviewCount   int64
	}

	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("subject_type = ? AND subject_id = ? AND status = ?", subject, subjectID, StatusApproved).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &RatingSummary{
		SubjectType:   subject.String(),
		SubjectID:     subjectID.String(),
		AverageRating: math.Round(result.AverageRating*10) / 10,
		ReviewCount:   result.ReviewCount,
	}, nil
}

func (r *repository) HasConfirmedBooking(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("user_id = ? AND event_id = ? AND status = ?", userID, eventID, "CONFIRMED").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasConfirmedVenueBooking(ctx context.Context, userID, venueID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("venue_bookings").
		Where("user_id = ? AND venue_id = ? AND status = ?", userID, venueID, "CONFIRMED").
		Count(&count).Error
	return count > 0, err
}

func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
