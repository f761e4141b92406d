package authsvc

import (
	"errors"
	"regexp"
)

// Credential rules differ between registration and login: the original
// login form never enforced the minimum length, only the character
// classes. Both contexts share one validator instead of two drifting
// copies.
type Mode int

const (
	ModeRegister Mode = iota
	ModeLogin
)

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// ValidateUserID requires at least one letter and one digit.
func ValidateUserID(userID string) error {
	if !hasLetter.MatchString(userID) || !hasDigit.MatchString(userID) {
		return errors.New("user ID must contain both letters and numbers")
	}
	return nil
}

// ValidatePassword requires at least one letter and one digit; in
// registration mode it additionally enforces the 8-character minimum.
func ValidatePassword(password string, mode Mode) error {
	if mode == ModeRegister && len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return errors.New("password must contain both letters and numbers")
	}
	return nil
}
