// Package validate holds the caller-facing input checks performed before
// any store mutation. Messages are user-facing and surfaced verbatim.
package validate

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is a failed input check with a message suitable for display.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Email checks the address against a standard pattern.
func Email(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &Error{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}

// Password enforces the minimum length policy.
func Password(password string) error {
	if len(password) < 6 {
		return &Error{Field: "password", Message: "Password must be at least 6 characters long"}
	}
	return nil
}

// Name enforces the minimum display-name length.
func Name(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return &Error{Field: "name", Message: "Name must be at least 2 characters long"}
	}
	return nil
}
