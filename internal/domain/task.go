package domain

import "time"

// TaskStatus - lifecycle state of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusOverdue    TaskStatus = "overdue"
)

// Task is a single tracked item owned by one user. Priority values are kept
// dense per user: after any write the set of priorities is exactly 1..N.
type Task struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	Title           string     `db:"title" json:"title"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Status          TaskStatus `db:"status" json:"status"`
	Priority        int        `db:"priority" json:"priority"`
	LearningMinutes int        `db:"learning_minutes" json:"learning_minutes"`
	DueDate         time.Time  `db:"due_date" json:"due_date"`
	SkillID         *string    `db:"skill_id" json:"skill_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
