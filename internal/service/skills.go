package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skilltrack/internal/domain"
	"skilltrack/internal/repository"

	"github.com/google/uuid"
)

type SkillService struct {
	skills repository.SkillRepository
}

func NewSkillService(skills repository.SkillRepository) *SkillService {
	return &SkillService{skills: skills}
}

func (s *SkillService) Create(ctx context.Context, userID, name string, targetMinutes *int) (*domain.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: skill name is required", domain.ErrValidation)
	}

	target := domain.DefaultTargetMinutes
	if targetMinutes != nil {
		if *targetMinutes <= 0 {
			return nil, fmt.Errorf("%w: target minutes must be positive", domain.ErrValidation)
		}
		target = *targetMinutes
	}

	skill := &domain.Skill{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		TotalMinutes:  0,
		TargetMinutes: target,
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, userID, id string, name *string, targetMinutes *int) (*domain.Skill, error) {
	skill, err := s.skills.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: skill name is required", domain.ErrValidation)
		}
		skill.Name = trimmed
	}
	if targetMinutes != nil {
		if *targetMinutes <= 0 {
			return nil, fmt.Errorf("%w: target minutes must be positive", domain.ErrValidation)
		}
		skill.TargetMinutes = *targetMinutes
	}
	skill.UpdatedAt = time.Now()

	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, userID, id string) error {
	return s.skills.Delete(ctx, id, userID)
}

func (s *SkillService) List(ctx context.Context, userID string) ([]domain.Skill, error) {
	return s.skills.ListByUser(ctx, userID)
}
