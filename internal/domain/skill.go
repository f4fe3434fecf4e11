package domain

import "time"

// DefaultTargetMinutes is assigned when a skill is created without a goal.
const DefaultTargetMinutes = 600000

// Skill accumulates learning minutes from the tasks linked to it.
// TotalMinutes never goes negative; decrements are clamped at zero.
type Skill struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	TotalMinutes  int       `db:"total_minutes" json:"total_minutes"`
	TargetMinutes int       `db:"target_minutes" json:"target_minutes"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
