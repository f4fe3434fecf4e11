package service

import (
	"fmt"

	"skilltrack/internal/domain"
)

// EnsureEmailAvailable fails with a conflict when a user already holds the
// email. Pure check, no side effects.
func EnsureEmailAvailable(existing *domain.User, email string) error {
	if existing != nil {
		return fmt.Errorf("%w: email %s is already in use", domain.ErrConflict, email)
	}
	return nil
}
