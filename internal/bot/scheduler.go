package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/cogisbot/internal/bot/tasks"
	"github.com/edgard/cogisbot/internal/config"
)

// Scheduler runs the configured background tasks on gocron cron schedules
// (six-field, with seconds). Task functions come from the registry in the
// tasks package; which of them run, and when, is decided by configuration.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a scheduler over the given task registry.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler()
	if err != nil {
		// Only fails when the local timezone cannot be loaded.
		log.Error("Failed to create gocron scheduler", "error", err)
		panic(fmt.Sprintf("failed to create gocron scheduler: %v", err))
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
	}
}

// Start registers every enabled, known task and starts ticking. Tasks that
// are disabled, unknown, or missing a schedule are skipped with a log line
// rather than failing startup.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	scheduled := 0
	if s.cfg != nil {
		for name, tc := range s.cfg.Tasks {
			if s.scheduleTask(name, tc) {
				scheduled++
			}
		}
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "tasks_scheduled", scheduled)

	return nil
}

func (s *Scheduler) scheduleTask(name string, tc config.TaskConfig) bool {
	log := s.logger.With("task_name", name)

	if !tc.Enabled {
		log.Info("Skipping disabled task")
		return false
	}
	fn, known := s.taskMap[name]
	if !known {
		log.Warn("Task configured but not in registry, skipping")
		return false
	}
	if tc.Schedule == "" {
		log.Warn("Task enabled but has no schedule, skipping")
		return false
	}

	_, err := s.scheduler.NewJob(
		gocron.CronJob(tc.Schedule, true),
		gocron.NewTask(func(ctx context.Context) {
			log.Info("Running scheduled task")
			start := time.Now()
			if taskErr := fn(ctx); taskErr != nil {
				log.Error("Scheduled task failed", "error", taskErr)
			}
			log.Info("Finished scheduled task", "duration", time.Since(start))
		}, context.Background()),
		gocron.WithName(name),
	)
	if err != nil {
		log.Error("Failed to schedule task", "schedule", tc.Schedule, "error", err)
		return false
	}

	log.Info("Scheduled task", "schedule", tc.Schedule)
	return true
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
		return err
	}

	s.logger.Info("Scheduler stopped.")
	return nil
}
