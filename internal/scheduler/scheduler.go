// Package scheduler runs periodic retraining so deployed artifacts track the
// current season.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/logger"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/pipeline"
)

// retrainTimeout bounds a single scheduled training run
const retrainTimeout = 2 * time.Hour

// Scheduler manages the periodic retraining job
type Scheduler struct {
	cron      *cron.Cron
	train     *pipeline.TrainPipeline
	cfg       config.SchedulerConfig
	logger    *logrus.Entry
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(train *pipeline.TrainPipeline, cfg config.SchedulerConfig, baseLogger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		train:  train,
		cfg:    cfg,
		logger: logger.WithComponent(baseLogger, "scheduler"),
		jobIDs: make([]cron.EntryID, 0),
	}
}

// ScheduleRetrain registers the retraining job from config. The job trains
// over the current season and the configured number of seasons before it.
func (s *Scheduler) ScheduleRetrain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	sport, err := models.ParseSport(s.cfg.Sport)
	if err != nil {
		return err
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), retrainTimeout)
		defer cancel()

		seasons := recentSeasons(time.Now().UTC(), s.cfg.SeasonLookback)
		s.logger.WithFields(logrus.Fields{
			"sport":   sport,
			"seasons": seasons,
		}).Info("Starting scheduled retraining")

		runID, err := s.train.Run(ctx, sport, seasons)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled retraining failed")
			return
		}
		s.logger.WithField("run_id", runID).Info("Scheduled retraining complete")
	}

	entryID, err := s.cron.AddFunc(s.cfg.RetrainCron, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add retrain job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", s.cfg.RetrainCron).Info("Scheduled retraining job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning reports whether the scheduler is active
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// recentSeasons returns the season containing now plus lookback prior
// seasons. Seasons are labeled by the year they end in, rolling over in
// August.
func recentSeasons(now time.Time, lookback int) []int {
	current := now.Year()
	if now.Month() >= time.August {
		current++
	}
	if lookback < 0 {
		lookback = 0
	}
	seasons := make([]int, 0, lookback+1)
	for y := current - lookback; y <= current; y++ {
		seasons = append(seasons, y)
	}
	return seasons
}
