package reviews

import (
	"time"

	"github.com/google/uuid"
)

// ReviewSubject is the kind of thing a review rates.
type ReviewSubject string

const (
	SubjectEvent ReviewSubject = "EVENT"
	SubjectVenue ReviewSubject = "VENUE"
)

func (s ReviewSubject) String() string {
	return string(s)
}

// Review rates a single subject, either an attended event or a rented
// venue. One review per user per subject.
type Review struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SubjectType ReviewSubject `json:"subject_type" gorm:"type:varchar(10);not null;index;uniqueIndex:idx_review_subject_user"`
	SubjectID   uuid.UUID     `json:"subject_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_review_subject_user"`
	UserID      uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_review_subject_user"`

	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string `json:"comment" gorm:"size:2000"`

	Status      ReviewStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	ModeratedBy *uuid.UUID   `json:"moderated_by,omitempty" gorm:"type:uuid"`
	ModeratedAt *time.Time   `json:"moderated_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:          r.ID.String(),
		SubjectType: r.SubjectType.String(),
		SubjectID:   r.SubjectID.String(),
		UserID:      r.UserID.String(),
		Rating:      r.Rating,
		Comment:     r.Comment,
		Status:      r.Status.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
