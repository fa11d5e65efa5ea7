package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/utils"
)

// Roller performs the once-a-day bookkeeping. Load refreshes its state from
// storage, which other processes may have written since the last run.
type Roller interface {
	Load() error
	Rollover() error
}

// Scheduler runs Rollover every day at a fixed local time.
type Scheduler struct {
	cron   gocron.Scheduler
	job    gocron.Job
	roller Roller
	mu     sync.Mutex
	runs   int
}

// New registers the daily job at "HH:MM". Nothing runs until Start.
func New(roller Roller, at string, clock clockwork.Clock) (*Scheduler, error) {
	t, err := utils.ParseTime(at)
	if err != nil {
		return nil, fmt.Errorf("invalid rollover time %q: %w", at, err)
	}

	cron, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{cron: cron, roller: roller}
	s.job, err = cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(t.Hour()), uint(t.Minute()), 0))),
		gocron.NewTask(s.run),
		gocron.WithName("rollover"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = cron.Shutdown()
		return nil, fmt.Errorf("failed to register rollover job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	if err := s.roller.Load(); err != nil {
		logger.Error("failed to reload state before rollover", "error", err)
		return
	}
	if err := s.roller.Rollover(); err != nil {
		logger.Error("rollover failed", "error", err)
		return
	}
	logger.Info("rollover completed")
}

// Start runs a catch-up rollover for any day missed while stopped, then
// hands control to the daily job.
func (s *Scheduler) Start() {
	s.run()
	s.cron.Start()
	if next, err := s.job.NextRun(); err == nil {
		logger.Info("rollover scheduled", "next", next)
	}
}

func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

// Runs reports how many rollovers have been attempted.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
