package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skilltrack/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTaskRepository runs every write together with a dense priority
// renumber in one transaction, so the 1..N invariant holds even if the
// process dies between the two statements.
type PostgresTaskRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTaskRepository(db *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, status, priority, learning_minutes, due_date, skill_id, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.LearningMinutes,
		&t.DueDate,
		&t.SkillID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task", domain.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY priority`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *t)
	}
	return res, rows.Err()
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return r.withRenumber(ctx, t.UserID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO tasks (id, user_id, title, description, status, priority, learning_minutes, due_date, skill_id)
			 VALUES ($1, $2, $3, $4, $5,
			         CASE WHEN $6 > 0 THEN $6
			              ELSE (SELECT COALESCE(MAX(priority), 0) + 1 FROM tasks WHERE user_id = $2) END,
			         $7, $8, $9)
			 RETURNING priority, created_at, updated_at`,
			t.ID, t.UserID, t.Title, t.Description, t.Status,
			t.Priority, t.LearningMinutes, t.DueDate, t.SkillID,
		).Scan(&t.Priority, &t.CreatedAt, &t.UpdatedAt)
	})
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t *domain.Task) error {
	return r.withRenumber(ctx, t.UserID, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE tasks
			 SET title = $1, description = $2, status = $3, priority = $4,
			     learning_minutes = $5, due_date = $6, skill_id = $7, updated_at = $8
			 WHERE id = $9 AND user_id = $10`,
			t.Title, t.Description, t.Status, t.Priority,
			t.LearningMinutes, t.DueDate, t.SkillID, t.UpdatedAt,
			t.ID, t.UserID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("%w: task", domain.ErrNotFound)
		}
		return nil
	})
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id, userID string) error {
	return r.withRenumber(ctx, userID, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("%w: task", domain.ErrNotFound)
		}
		return nil
	})
}

func (r *PostgresTaskRepository) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET status = CASE WHEN due_date < $1 THEN 'overdue' ELSE 'todo' END,
		     updated_at = $1
		 WHERE status <> 'done'
		   AND ((due_date < $1 AND status <> 'overdue')
		     OR (due_date >= $1 AND status = 'overdue'))`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// withRenumber runs fn and a dense renumber of the user's priorities inside
// one transaction.
func (r *PostgresTaskRepository) withRenumber(ctx context.Context, userID string, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tasks t
		 SET priority = ranked.rn
		 FROM (
		     SELECT id, ROW_NUMBER() OVER (ORDER BY priority, created_at) AS rn
		     FROM tasks WHERE user_id = $1
		 ) ranked
		 WHERE t.id = ranked.id AND t.priority <> ranked.rn`,
		userID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
