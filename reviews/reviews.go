package reviews

import (
	"github.com/pkg/errors"

	"github.com/jinsdrum/petplace/businesses"
	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/users"
)

// SortOrder selects the ordering of a review listing.
type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortRatingHigh SortOrder = "rating_high"
	SortRatingLow  SortOrder = "rating_low"
)

// Review is a user's review of a facility.
type Review struct {
	ID             int64                `json:"id"`
	UserID         int64                `json:"user_id"`
	BusinessID     int64                `json:"business_id"`
	Rating         int                  `json:"rating"`
	Content        string               `json:"content"`
	PetType        string               `json:"pet_type,omitempty"`
	VisitDate      string               `json:"visit_date,omitempty"`
	Recommendation string               `json:"recommendation,omitempty"`
	Images         []string             `json:"images,omitempty"`
	HelpfulCount   int                  `json:"helpful_count,omitempty"`
	Status         string               `json:"status,omitempty"`
	CreatedAt      string               `json:"created_at,omitempty"`
	UpdatedAt      string               `json:"updated_at,omitempty"`
	User           *users.Profile       `json:"user,omitempty"`
	Business       *businesses.Business `json:"business,omitempty"`
}

// Draft is the writable review payload.
type Draft struct {
	BusinessID     int64    `json:"business_id"`
	Rating         int      `json:"rating"`
	Content        string   `json:"content"`
	PetType        string   `json:"pet_type,omitempty"`
	VisitDate      string   `json:"visit_date,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Images         []string `json:"images,omitempty"`
}

// ValidateDraft checks the review form before submission.
func ValidateDraft(draft Draft) error {
	if draft.BusinessID == 0 {
		return errors.Wrap(apperrors.ErrMissingField, "business_id is required")
	}
	if draft.Rating < 1 || draft.Rating > 5 {
		return apperrors.ErrInvalidRating
	}
	if draft.Content == "" {
		return errors.Wrap(apperrors.ErrMissingField, "content is required")
	}
	return nil
}
