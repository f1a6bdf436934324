package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	sweepSpec string
}

// NewScheduler sweepSpec là cron spec, vd: "@every 1h"
func NewScheduler(redisOpt asynq.RedisClientOpt, sweepSpec string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		sweepSpec: sweepSpec,
	}
}

// RegisterJobs - sweep artifact ảnh bìa không còn book tương ứng
func (s *Scheduler) RegisterJobs() error {
	if s.sweepSpec == "" || s.sweepSpec == "off" {
		logger.Info("[Scheduler] Orphan cover sweep disabled", nil)
		return nil
	}

	task := asynq.NewTask(shared.TypeSweepOrphanCovers, nil,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	entryID, err := s.scheduler.Register(s.sweepSpec, task)
	if err != nil {
		return fmt.Errorf("register %s: %w", shared.TypeSweepOrphanCovers, err)
	}

	logger.Info("[Scheduler] Registered job", map[string]interface{}{
		"task":     shared.TypeSweepOrphanCovers,
		"spec":     s.sweepSpec,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
