package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/EscoLessgo/word-craft-arena/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateGameDate checks that a date string is a well-formed calendar day
func ValidateGameDate(date string) error {
	if date == "" {
		return ValidationError{Field: "date", Message: "date is required"}
	}
	if _, err := models.ParseGameDate(date); err != nil {
		return ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD form"}
	}
	return nil
}

// ValidateProgress checks the fields of a progress submission: the score must
// be non-negative, the max score positive, and every pangram must also be a
// found word.
func ValidateProgress(score, maxScore int, wordsFound, pangramsFound []string) error {
	if score < 0 {
		return ValidationError{Field: "score", Message: "score must not be negative"}
	}
	if maxScore <= 0 {
		return ValidationError{Field: "max_score", Message: "max_score must be positive"}
	}

	found := make(map[string]bool, len(wordsFound))
	for _, w := range wordsFound {
		found[strings.ToLower(w)] = true
	}
	for _, p := range pangramsFound {
		if !found[strings.ToLower(p)] {
			return ValidationError{Field: "pangrams_found", Message: fmt.Sprintf("pangram %q is not among the found words", p)}
		}
	}
	return nil
}
