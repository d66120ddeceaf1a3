package integrity

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/novelzone/internal/database"
)

// HandleRunner runs fn on a connection it releases afterwards.
type HandleRunner interface {
	WithHandle(ctx context.Context, fn func(h *database.Handle) error) error
}

// Result is the outcome of one integrity check run.
type Result struct {
	Trigger   string    `json:"trigger"`
	CheckedAt time.Time `json:"checked_at"`
	Report    *Report   `json:"report,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Monitor remembers the most recent check result.
type Monitor struct {
	mu   sync.RWMutex
	last *Result
	now  func() time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

// Run performs a check on its own connection and records the result.
func (m *Monitor) Run(ctx context.Context, runner HandleRunner, trigger string) (*Report, error) {
	var report *Report
	err := runner.WithHandle(ctx, func(h *database.Handle) error {
		var err error
		report, err = NewChecker(h.DB()).Check()
		return err
	})
	m.Record(trigger, report, err)
	return report, err
}

// Record stores a result produced elsewhere.
func (m *Monitor) Record(trigger string, report *Report, err error) Result {
	result := Result{Trigger: trigger, CheckedAt: m.now().UTC()}
	switch {
	case err != nil:
		result.Error = err.Error()
		log.Printf("Integrity check (%s): failed: %v", trigger, err)
	case report.Clean():
		result.Report = report
		log.Printf("Integrity check (%s): no orphaned rows", trigger)
	default:
		result.Report = report
		log.Printf("Integrity check (%s): found %d orphaned rows (%s)", trigger, report.Total(), report)
	}

	m.mu.Lock()
	m.last = &result
	m.mu.Unlock()
	return result
}

// Last returns the most recent result. ok is false before the first run.
func (m *Monitor) Last() (result Result, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return Result{}, false
	}
	return *m.last, true
}
