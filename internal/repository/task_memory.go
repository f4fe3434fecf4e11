package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skilltrack/internal/domain"

	"github.com/google/uuid"
)

// MemoryTaskRepository keeps tasks in a mutex-guarded map and renumbers
// priorities densely after every write, mirroring the postgres variant.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (r *MemoryTaskRepository) ListByUser(_ context.Context, userID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			res = append(res, *t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Priority < res[j].Priority })
	return res, nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id, userID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, fmt.Errorf("%w: task", domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryTaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Priority <= 0 {
		t.Priority = r.countByUser(t.UserID) + 1
	}
	cp := *t
	r.tasks[t.ID] = &cp
	r.renumber(t.UserID)
	t.Priority = r.tasks[t.ID].Priority
	return nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return fmt.Errorf("%w: task", domain.ErrNotFound)
	}
	cp := *t
	r.tasks[t.ID] = &cp
	r.renumber(t.UserID)
	t.Priority = r.tasks[t.ID].Priority
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return fmt.Errorf("%w: task", domain.ErrNotFound)
	}
	delete(r.tasks, id)
	r.renumber(userID)
	return nil
}

func (r *MemoryTaskRepository) SweepOverdue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for _, t := range r.tasks {
		if t.Status == domain.StatusDone {
			continue
		}
		switch {
		case t.DueDate.Before(now) && t.Status != domain.StatusOverdue:
			t.Status = domain.StatusOverdue
		case !t.DueDate.Before(now) && t.Status == domain.StatusOverdue:
			t.Status = domain.StatusTodo
		default:
			continue
		}
		t.UpdatedAt = now
		changed++
	}
	return changed, nil
}

func (r *MemoryTaskRepository) countByUser(userID string) int {
	n := 0
	for _, t := range r.tasks {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// renumber reassigns dense ranks 1..N ordered by (priority, createdAt).
// Caller must hold the write lock.
func (r *MemoryTaskRepository) renumber(userID string) {
	var owned []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].Priority != owned[j].Priority {
			return owned[i].Priority < owned[j].Priority
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	for i, t := range owned {
		t.Priority = i + 1
	}
}
