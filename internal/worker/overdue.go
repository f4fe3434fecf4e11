package worker

import (
	"context"
	"fmt"
	"time"

	"skilltrack/internal/logger"
	"skilltrack/internal/repository"

	"github.com/robfig/cron/v3"
)

// OverdueSweeper periodically re-derives overdue status from due dates, so
// task lists stay correct even when nobody writes to them.
type OverdueSweeper struct {
	tasks    repository.TaskRepository
	interval time.Duration
	cron     *cron.Cron
}

func NewOverdueSweeper(tasks repository.TaskRepository, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{tasks: tasks, interval: interval, cron: cron.New()}
}

func (w *OverdueSweeper) Start() error {
	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, w.sweep); err != nil {
		return err
	}
	w.cron.Start()
	logger.Info("overdue sweeper started", "interval", w.interval.String())
	return nil
}

func (w *OverdueSweeper) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *OverdueSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	changed, err := w.tasks.SweepOverdue(ctx, time.Now())
	if err != nil {
		logger.Error("overdue sweep failed", "error", err)
		return
	}
	if changed > 0 {
		logger.Info("overdue sweep updated tasks", "count", changed)
	}
}
