package businesses

import (
	"strings"

	"github.com/pkg/errors"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
)

// Business is a pet-friendly facility listing.
type Business struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Category         string            `json:"category"`
	Phone            string            `json:"phone,omitempty"`
	Email            string            `json:"email,omitempty"`
	Website          string            `json:"website,omitempty"`
	Address          string            `json:"address"`
	AddressDetail    string            `json:"address_detail,omitempty"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	BusinessHours    map[string]string `json:"business_hours,omitempty"`
	HolidayInfo      string            `json:"holiday_info,omitempty"`
	ParkingAvailable bool              `json:"parking_available"`
	WifiAvailable    bool              `json:"wifi_available"`
	OutdoorSeating   bool              `json:"outdoor_seating"`
	PetAllowedTypes  []string          `json:"pet_allowed_types,omitempty"`
	PetSizeLimit     string            `json:"pet_size_limit,omitempty"`
	PetFee           float64           `json:"pet_fee,omitempty"`
	PetFacilities    []string          `json:"pet_facilities,omitempty"`
	PetRules         string            `json:"pet_rules,omitempty"`
	MainImage        string            `json:"main_image,omitempty"`
	GalleryImages    []string          `json:"gallery_images,omitempty"`
	Status           string            `json:"status,omitempty"`
	IsPremium        bool              `json:"is_premium"`
	IsFeatured       bool              `json:"is_featured"`
	ViewCount        int               `json:"view_count"`
	FavoriteCount    int               `json:"favorite_count"`
	ReviewCount      int               `json:"review_count"`
	AverageRating    float64           `json:"average_rating"`
	CreatedAt        string            `json:"created_at,omitempty"`
	UpdatedAt        string            `json:"updated_at,omitempty"`
}

// Registration is the writable subset of Business submitted by the
// facility-registration wizard.
type Registration struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Category         string            `json:"category"`
	Phone            string            `json:"phone,omitempty"`
	Email            string            `json:"email,omitempty"`
	Website          string            `json:"website,omitempty"`
	Address          string            `json:"address"`
	AddressDetail    string            `json:"address_detail,omitempty"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	BusinessHours    map[string]string `json:"business_hours,omitempty"`
	HolidayInfo      string            `json:"holiday_info,omitempty"`
	ParkingAvailable bool              `json:"parking_available,omitempty"`
	WifiAvailable    bool              `json:"wifi_available,omitempty"`
	OutdoorSeating   bool              `json:"outdoor_seating,omitempty"`
	PetAllowedTypes  []string          `json:"pet_allowed_types,omitempty"`
	PetSizeLimit     string            `json:"pet_size_limit,omitempty"`
	PetFee           float64           `json:"pet_fee,omitempty"`
	PetFacilities    []string          `json:"pet_facilities,omitempty"`
	PetRules         string            `json:"pet_rules,omitempty"`
	MainImage        string            `json:"main_image,omitempty"`
	GalleryImages    []string          `json:"gallery_images,omitempty"`
}

// Update carries a partial facility edit. Nil fields are left untouched
// server-side.
type Update struct {
	Name             *string           `json:"name,omitempty"`
	Description      *string           `json:"description,omitempty"`
	Category         *string           `json:"category,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	Email            *string           `json:"email,omitempty"`
	Website          *string           `json:"website,omitempty"`
	Address          *string           `json:"address,omitempty"`
	AddressDetail    *string           `json:"address_detail,omitempty"`
	BusinessHours    map[string]string `json:"business_hours,omitempty"`
	HolidayInfo      *string           `json:"holiday_info,omitempty"`
	ParkingAvailable *bool             `json:"parking_available,omitempty"`
	WifiAvailable    *bool             `json:"wifi_available,omitempty"`
	OutdoorSeating   *bool             `json:"outdoor_seating,omitempty"`
	PetAllowedTypes  []string          `json:"pet_allowed_types,omitempty"`
	PetSizeLimit     *string           `json:"pet_size_limit,omitempty"`
	PetFee           *float64          `json:"pet_fee,omitempty"`
	PetFacilities    []string          `json:"pet_facilities,omitempty"`
	PetRules         *string           `json:"pet_rules,omitempty"`
	MainImage        *string           `json:"main_image,omitempty"`
	GalleryImages    []string          `json:"gallery_images,omitempty"`
}

// ValidateRegistration checks the wizard's required fields and coordinate
// ranges before the payload is sent.
func ValidateRegistration(registration Registration) error {
	if strings.TrimSpace(registration.Name) == "" {
		return errors.Wrap(apperrors.ErrMissingField, "name is required")
	}
	if strings.TrimSpace(registration.Category) == "" {
		return errors.Wrap(apperrors.ErrMissingField, "category is required")
	}
	if strings.TrimSpace(registration.Address) == "" {
		return errors.Wrap(apperrors.ErrMissingField, "address is required")
	}
	if registration.Latitude < -90 || registration.Latitude > 90 {
		return errors.Wrap(apperrors.ErrInvalidCoordinates, "latitude must be between -90 and 90")
	}
	if registration.Longitude < -180 || registration.Longitude > 180 {
		return errors.Wrap(apperrors.ErrInvalidCoordinates, "longitude must be between -180 and 180")
	}
	if registration.PetFee < 0 {
		return errors.Wrap(apperrors.ErrMissingField, "pet fee cannot be negative")
	}
	return nil
}
