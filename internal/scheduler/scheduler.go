package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Sweeper evicts expired entries and reports how many were removed
type Sweeper interface {
	Sweep() int
}

// Scheduler manages background maintenance tasks
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a new scheduler instance
func New(sweeper Sweeper, interval time.Duration, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
		log:       log,
	}
}

// Start begins running all scheduled tasks in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.sweepSessions); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweepSessions evicts abandoned quiz sessions
func (s *Scheduler) sweepSessions() {
	if removed := s.sweeper.Sweep(); removed > 0 {
		s.log.WithField("removed", removed).Info("Swept expired quiz sessions")
	}
}
