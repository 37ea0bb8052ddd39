package session

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks the address shape before a round trip to the backend.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// ValidatePasswordStrength enforces the backend's password rules locally:
// at least 8 characters, containing at least one letter and one number.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.Wrap(apperrors.ErrWeakPassword, "password must be at least 8 characters long")
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasLetter {
		return errors.Wrap(apperrors.ErrWeakPassword, "password must contain at least one letter")
	}
	if !hasNumber {
		return errors.Wrap(apperrors.ErrWeakPassword, "password must contain at least one number")
	}
	return nil
}

// ValidateCredentials checks that a login attempt is worth sending. Password
// rules are not re-checked here; the server's verdict is what matters for an
// existing account.
func ValidateCredentials(credentials Credentials) error {
	if err := ValidateEmail(credentials.Email); err != nil {
		return err
	}
	if credentials.Password == "" {
		return errors.Wrap(apperrors.ErrMissingField, "password is required")
	}
	return nil
}

// ValidateRegistration mirrors the backend's account creation rules so the
// caller gets immediate feedback on the required fields.
func ValidateRegistration(details RegisterDetails) error {
	if strings.TrimSpace(details.Name) == "" {
		return errors.Wrap(apperrors.ErrMissingField, "name is required")
	}
	if err := ValidateEmail(details.Email); err != nil {
		return err
	}
	return ValidatePasswordStrength(details.Password)
}
