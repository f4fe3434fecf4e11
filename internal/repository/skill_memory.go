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

// MemorySkillRepository keeps skills in a mutex-guarded map.
type MemorySkillRepository struct {
	mu     sync.RWMutex
	skills map[string]*domain.Skill
	tasks  *MemoryTaskRepository
}

// NewMemorySkillRepository wires the task repository so deleting a skill can
// unlink tasks that reference it, like the postgres FK does.
func NewMemorySkillRepository(tasks *MemoryTaskRepository) *MemorySkillRepository {
	return &MemorySkillRepository{skills: make(map[string]*domain.Skill), tasks: tasks}
}

func (r *MemorySkillRepository) ListByUser(_ context.Context, userID string) ([]domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []domain.Skill
	for _, s := range r.skills {
		if s.UserID == userID {
			res = append(res, *s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (r *MemorySkillRepository) FindByID(_ context.Context, id, userID string) (*domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.skills[id]
	if !ok || s.UserID != userID {
		return nil, fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *MemorySkillRepository) Create(_ context.Context, s *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	if s.TotalMinutes < 0 {
		s.TotalMinutes = 0
	}
	cp := *s
	r.skills[s.ID] = &cp
	return nil
}

func (r *MemorySkillRepository) Update(_ context.Context, s *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.skills[s.ID]
	if !ok || existing.UserID != s.UserID {
		return fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	s.UpdatedAt = time.Now()
	cp := *s
	r.skills[s.ID] = &cp
	return nil
}

func (r *MemorySkillRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.skills[id]
	if !ok || s.UserID != userID {
		return fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	delete(r.skills, id)

	if r.tasks != nil {
		r.tasks.mu.Lock()
		for _, t := range r.tasks.tasks {
			if t.SkillID != nil && *t.SkillID == id {
				t.SkillID = nil
			}
		}
		r.tasks.mu.Unlock()
	}
	return nil
}

func (r *MemorySkillRepository) IncrementTotalMinutes(_ context.Context, id, userID string, delta int) error {
	if delta == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.skills[id]
	if !ok || s.UserID != userID {
		return fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	next := s.TotalMinutes + delta
	if next < 0 {
		next = 0
	}
	s.TotalMinutes = next
	s.UpdatedAt = time.Now()
	return nil
}
