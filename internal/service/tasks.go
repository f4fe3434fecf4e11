package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skilltrack/internal/domain"
	"skilltrack/internal/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	tasks  repository.TaskRepository
	skills repository.SkillRepository
}

func NewTaskService(tasks repository.TaskRepository, skills repository.SkillRepository) *TaskService {
	return &TaskService{tasks: tasks, skills: skills}
}

type CreateTaskInput struct {
	Title           string
	Description     *string
	Status          *domain.TaskStatus
	Priority        *int
	LearningMinutes *int
	DueDate         string
	SkillID         *string
}

type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Status          *domain.TaskStatus
	Priority        *int
	LearningMinutes *int
	DueDate         *string
	SkillID         *string
}

func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*domain.Task, error) {
	if in.DueDate == "" {
		return nil, fmt.Errorf("%w: due date is required", domain.ErrValidation)
	}
	dueDate, err := ParseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	minutes := 0
	if in.LearningMinutes != nil {
		if *in.LearningMinutes < 0 {
			return nil, fmt.Errorf("%w: learning minutes cannot be negative", domain.ErrValidation)
		}
		minutes = *in.LearningMinutes
	}

	if in.SkillID != nil {
		if err := s.ensureSkillOwned(ctx, *in.SkillID, userID); err != nil {
			return nil, err
		}
	}

	status := domain.StatusTodo
	if in.Status != nil {
		status = *in.Status
	}
	if err := ValidStatus(status); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           in.Title,
		Description:     in.Description,
		Status:          status,
		LearningMinutes: minutes,
		DueDate:         dueDate,
		SkillID:         in.SkillID,
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	EnforceStatusForDueDate(task, time.Now())

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.SkillID != nil && minutes > 0 {
		if err := s.skills.IncrementTotalMinutes(ctx, *task.SkillID, userID, minutes); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id string, in UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	prevSkillID := task.SkillID
	prevMinutes := task.LearningMinutes

	patch := TaskPatch{
		Title:           in.Title,
		Description:     in.Description,
		Status:          in.Status,
		Priority:        in.Priority,
		LearningMinutes: in.LearningMinutes,
		SkillID:         in.SkillID,
	}
	if in.DueDate != nil {
		dueDate, err := ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = &dueDate
	}

	nextSkillID := prevSkillID
	if in.SkillID != nil {
		nextSkillID = in.SkillID
	}
	if nextSkillID != nil {
		if err := s.ensureSkillOwned(ctx, *nextSkillID, userID); err != nil {
			return nil, err
		}
	}

	if err := ApplyTaskPatch(task, patch, time.Now()); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	// Reconcile skill minutes: same skill gets the delta, a reassignment
	// subtracts the old contribution and adds the new one.
	newMinutes := task.LearningMinutes
	if equalSkillID(task.SkillID, prevSkillID) {
		if task.SkillID != nil {
			if delta := newMinutes - prevMinutes; delta != 0 {
				if err := s.skills.IncrementTotalMinutes(ctx, *task.SkillID, userID, delta); err != nil {
					return nil, err
				}
			}
		}
	} else {
		if prevSkillID != nil && prevMinutes > 0 {
			if err := s.skills.IncrementTotalMinutes(ctx, *prevSkillID, userID, -prevMinutes); err != nil {
				return nil, err
			}
		}
		if task.SkillID != nil && newMinutes > 0 {
			if err := s.skills.IncrementTotalMinutes(ctx, *task.SkillID, userID, newMinutes); err != nil {
				return nil, err
			}
		}
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	task, err := s.tasks.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		return err
	}
	if task.SkillID != nil && task.LearningMinutes > 0 {
		return s.skills.IncrementTotalMinutes(ctx, *task.SkillID, userID, -task.LearningMinutes)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *TaskService) ensureSkillOwned(ctx context.Context, skillID, userID string) error {
	_, err := s.skills.FindByID(ctx, skillID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: skill not found for this user", domain.ErrNotFound)
	}
	return err
}

func equalSkillID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
