package learner

import (
	"sync"
	"time"
)

// Record is one completed workflow outcome as seen by the learner.
type Record struct {
	WorkflowID string
	Primary    string
	Success    bool
	Partial    bool
	Duration   time.Duration
	RecordedAt time.Time
}

const (
	defaultHistorySize = 500
	baselineScore      = 0.5
	successNudge       = 0.01
)

// Learner keeps a bounded outcome history and an aggregate optimization
// score. It does not feed weights back into the generator; per-label
// success rates are exposed as the hook for that extension.
type Learner struct {
	mu      sync.RWMutex
	history []Record
	maxSize int
	score   float64

	perLabel map[string]*labelStats
}

type labelStats struct {
	total     int
	succeeded int
}

// New creates a Learner with the given history bound; zero or negative
// uses the default.
func New(historySize int) *Learner {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Learner{
		maxSize:  historySize,
		score:    baselineScore,
		perLabel: make(map[string]*labelStats),
	}
}

// RecordOutcome appends one outcome and nudges the optimization score:
// a small increase on full success, flat on partial or failure. The score
// stays within [0,1].
func (l *Learner) RecordOutcome(rec Record) {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.history = append(l.history, rec)
	if len(l.history) > l.maxSize {
		l.history = l.history[len(l.history)-l.maxSize:]
	}

	stats, ok := l.perLabel[rec.Primary]
	if !ok {
		stats = &labelStats{}
		l.perLabel[rec.Primary] = stats
	}
	stats.total++
	if rec.Success && !rec.Partial {
		stats.succeeded++
		l.score += successNudge
		if l.score > 1 {
			l.score = 1
		}
	}
}

// OptimizationScore returns the aggregate health score in [0,1].
func (l *Learner) OptimizationScore() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.score
}

// SuccessRate returns the full-success fraction for a primary label, or 0
// when the label has no recorded outcomes.
func (l *Learner) SuccessRate(label string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats, ok := l.perLabel[label]
	if !ok || stats.total == 0 {
		return 0
	}
	return float64(stats.succeeded) / float64(stats.total)
}

// HistoryLen returns the number of retained outcome records.
func (l *Learner) HistoryLen() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.history)
}
