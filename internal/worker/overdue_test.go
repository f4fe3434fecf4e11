package worker

import (
	"context"
	"testing"
	"time"

	"skilltrack/internal/domain"
	"skilltrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepFlipsPastDueTasks(t *testing.T) {
	repo := repository.NewMemoryTaskRepository()
	ctx := context.Background()

	late := &domain.Task{UserID: "u1", Title: "late", Status: domain.StatusInProgress, DueDate: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, late))

	w := NewOverdueSweeper(repo, time.Minute)
	w.sweep()

	got, err := repo.FindByID(ctx, late.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, got.Status)
}

func TestSweeperStartStop(t *testing.T) {
	repo := repository.NewMemoryTaskRepository()
	w := NewOverdueSweeper(repo, time.Hour)

	require.NoError(t, w.Start())
	w.Stop()
}
