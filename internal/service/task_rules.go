package service

import (
	"fmt"
	"time"

	"skilltrack/internal/domain"
)

// ValidStatus rejects anything outside the task status enum.
func ValidStatus(status domain.TaskStatus) error {
	switch status {
	case domain.StatusTodo, domain.StatusInProgress, domain.StatusDone, domain.StatusOverdue:
		return nil
	}
	return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
}

// ParseDueDate coerces an input string into a timestamp. Accepts RFC 3339
// and plain dates.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid due date %q", domain.ErrValidation, value)
}

// EnforceStatusForDueDate derives overdue status from the due date. A task
// that is not done flips to overdue once its due date passes, and back to
// todo when a previously-overdue due date moves to the future. Done tasks
// are untouched.
func EnforceStatusForDueDate(t *domain.Task, now time.Time) {
	if t.Status == domain.StatusDone {
		return
	}
	if t.DueDate.Before(now) {
		t.Status = domain.StatusOverdue
	} else if t.Status == domain.StatusOverdue {
		t.Status = domain.StatusTodo
	}
}

// TaskPatch carries the optional fields of a task update. Nil means the
// field is left as is.
type TaskPatch struct {
	Title           *string
	Description     *string
	Status          *domain.TaskStatus
	Priority        *int
	LearningMinutes *int
	DueDate         *time.Time
	SkillID         *string
}

// ApplyTaskPatch mutates the task in place: only provided fields change,
// status and minutes are re-validated, overdue status is re-derived and
// UpdatedAt is stamped. Callers must not rely on the pre-image.
func ApplyTaskPatch(t *domain.Task, p TaskPatch, now time.Time) error {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Status != nil {
		if err := ValidStatus(*p.Status); err != nil {
			return err
		}
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.LearningMinutes != nil {
		if *p.LearningMinutes < 0 {
			return fmt.Errorf("%w: learning minutes cannot be negative", domain.ErrValidation)
		}
		t.LearningMinutes = *p.LearningMinutes
	}
	if p.SkillID != nil {
		t.SkillID = p.SkillID
	}
	EnforceStatusForDueDate(t, now)
	t.UpdatedAt = now
	return nil
}
