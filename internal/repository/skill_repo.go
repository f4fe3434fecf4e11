package repository

import (
	"context"
	"errors"
	"fmt"

	"skilltrack/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSkillRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSkillRepository(db *pgxpool.Pool) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, user_id, name, total_minutes, target_minutes, created_at, updated_at`

func scanSkill(row pgx.Row) (*domain.Skill, error) {
	var s domain.Skill
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.TotalMinutes,
		&s.TargetMinutes,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: skill", domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSkillRepository) ListByUser(ctx context.Context, userID string) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id, userID string) (*domain.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s *domain.Skill) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO skills (id, user_id, name, total_minutes, target_minutes)
		 VALUES ($1, $2, $3, GREATEST($4, 0), $5)
		 RETURNING total_minutes, created_at, updated_at`,
		s.ID, s.UserID, s.Name, s.TotalMinutes, s.TargetMinutes,
	).Scan(&s.TotalMinutes, &s.CreatedAt, &s.UpdatedAt)
}

func (r *PostgresSkillRepository) Update(ctx context.Context, s *domain.Skill) error {
	result, err := r.db.Exec(ctx,
		`UPDATE skills
		 SET name = $1, target_minutes = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4`,
		s.Name, s.TargetMinutes, s.ID, s.UserID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id, userID string) error {
	// tasks.skill_id carries ON DELETE SET NULL, so linked tasks are unlinked
	result, err := r.db.Exec(ctx,
		`DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresSkillRepository) IncrementTotalMinutes(ctx context.Context, id, userID string, delta int) error {
	if delta == 0 {
		return nil
	}
	result, err := r.db.Exec(ctx,
		`UPDATE skills
		 SET total_minutes = GREATEST(total_minutes + $1, 0), updated_at = now()
		 WHERE id = $2 AND user_id = $3`,
		delta, id, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: skill", domain.ErrNotFound)
	}
	return nil
}
