package repository

import (
	"context"
	"time"

	"skilltrack/internal/domain"
)

// Repositories come in two flavors: in-memory maps for local/dev use and
// postgres-backed for production. The composition root in cmd/app picks one.

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
}

type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id, userID string) error
	// SweepOverdue flips not-done past-due tasks to overdue and previously
	// overdue tasks whose due date moved to the future back to todo.
	// Returns the number of tasks changed.
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)
}

type SkillRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Skill, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Skill, error)
	Create(ctx context.Context, s *domain.Skill) error
	Update(ctx context.Context, s *domain.Skill) error
	Delete(ctx context.Context, id, userID string) error
	// IncrementTotalMinutes adjusts the accumulated total by delta,
	// clamping the result at zero.
	IncrementTotalMinutes(ctx context.Context, id, userID string, delta int) error
}
