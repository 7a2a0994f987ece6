package reviews

type ReviewStatus string

const (
	StatusPending  ReviewStatus = "PENDING"
	StatusApproved ReviewStatus = "APPROVED"
	StatusRejected ReviewStatus = "REJECTED"
)

// IsValid checks if the review status is valid
func (s ReviewStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ReviewStatus
func (s ReviewStatus) String() string {
	return string(s)
}

// IsModerated reports whether an admin has already ruled on the review.
func (s ReviewStatus) IsModerated() bool {
	return s == StatusApproved || s == StatusRejected
}
