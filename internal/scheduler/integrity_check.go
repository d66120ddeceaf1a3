package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is the work a scheduler runs on every tick.
type JobFunc func(ctx context.Context) error

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// DescribeSchedule returns a human-readable description of common schedules.
func DescribeSchedule(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return schedule
	}
}

// IntegrityCheckScheduler triggers periodic catalog integrity checks
type IntegrityCheckScheduler struct {
	schedule string
	job      JobFunc

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// NewIntegrityCheckScheduler creates a scheduler that calls job on schedule.
func NewIntegrityCheckScheduler(schedule string, job JobFunc) *IntegrityCheckScheduler {
	return &IntegrityCheckScheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the job and starts the cron loop. It stops when ctx is done.
func (s *IntegrityCheckScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.job == nil {
		return fmt.Errorf("integrity check scheduler: no job configured")
	}
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run(s.ctx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule integrity check: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	cancelCtx := s.ctx
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	log.Printf("Integrity check scheduler: started with schedule '%s' (%s)",
		s.schedule, DescribeSchedule(s.schedule))
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *IntegrityCheckScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Remove(s.entryID)
	done := s.cron.Stop()
	<-done.Done()

	s.cancelFunc()
	s.isRunning = false
	log.Printf("Integrity check scheduler: stopped")
}

// RunNow runs the job immediately on the caller's goroutine.
func (s *IntegrityCheckScheduler) RunNow(ctx context.Context) error {
	if s.job == nil {
		return fmt.Errorf("integrity check scheduler: no job configured")
	}
	return s.job(ctx)
}

// IsRunning returns whether the scheduler is active
func (s *IntegrityCheckScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next check will occur
func (s *IntegrityCheckScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	return &next
}

func (s *IntegrityCheckScheduler) run(ctx context.Context) {
	start := time.Now()
	if err := s.job(ctx); err != nil {
		log.Printf("Integrity check scheduler: run failed: %v", err)
		return
	}
	log.Printf("Integrity check scheduler: run dispatched in %v", time.Since(start).Round(time.Millisecond))
}
