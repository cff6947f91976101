package intent

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"aiAutomate/domain"
)

const (
	// MaxSignals bounds the per-session history; oldest signals are evicted first.
	MaxSignals = 50
	// MinSignals is the smallest history that gets scored at all.
	MinSignals = 3
	// RecentWindow is how many of the latest signals an IntentScore carries.
	RecentWindow = 10

	// DecisionMargin is the score gap one audience needs over the other
	// before the visitor stops being "universal".
	DecisionMargin = 0.15

	neutralScore = 0.5
)

var ErrInvalidSignal = errors.New("invalid behavior signal")

// Detector keeps the behavior history of one visitor session.
type Detector struct {
	mu      sync.Mutex
	signals []domain.BehaviorSignal
	now     func() time.Time
}

func NewDetector() *Detector {
	return &Detector{
		signals: make([]domain.BehaviorSignal, 0, MaxSignals),
		now:     time.Now,
	}
}

// NewDetectorFromHistory rebuilds a detector from a stored history,
// keeping only the newest MaxSignals entries.
func NewDetectorFromHistory(history []domain.BehaviorSignal) *Detector {
	d := NewDetector()
	if len(history) > MaxSignals {
		history = history[len(history)-MaxSignals:]
	}
	d.signals = append(d.signals, history...)
	return d
}

// ValidateSignal rejects unknown types and non-finite values.
func ValidateSignal(sig domain.BehaviorSignal) error {
	if !sig.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidSignal, sig.Type)
	}
	if math.IsNaN(sig.Value) || math.IsInf(sig.Value, 0) {
		return fmt.Errorf("%w: value must be finite", ErrInvalidSignal)
	}
	if sig.Value < 0 {
		return fmt.Errorf("%w: value must not be negative", ErrInvalidSignal)
	}
	return nil
}

func (d *Detector) RecordSignal(sig domain.BehaviorSignal) error {
	if err := ValidateSignal(sig); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if sig.Timestamp.IsZero() {
		sig.Timestamp = d.now()
	}

	if len(d.signals) >= MaxSignals {
		copy(d.signals, d.signals[len(d.signals)-MaxSignals+1:])
		d.signals = d.signals[:MaxSignals-1]
	}
	d.signals = append(d.signals, sig)
	return nil
}

// Signals returns a copy of the history, oldest first.
func (d *Detector) Signals() []domain.BehaviorSignal {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]domain.BehaviorSignal, len(d.signals))
	copy(out, d.signals)
	return out
}

func (d *Detector) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.signals)
}

func (d *Detector) DetectIntent() domain.IntentScore {
	return Score(d.Signals())
}

// Score classifies a history into startup, sme or universal.
func Score(signals []domain.BehaviorSignal) domain.IntentScore {
	recent := recentSignals(signals)

	if len(signals) < MinSignals {
		return domain.IntentScore{
			Type:       domain.IntentUniversal,
			Confidence: neutralScore,
			Signals:    recent,
			Scores:     neutral(),
		}
	}

	scores := combine(signals)

	intentType := domain.IntentUniversal
	switch {
	case scores.Startup > scores.SME+DecisionMargin:
		intentType = domain.IntentStartup
	case scores.SME > scores.Startup+DecisionMargin:
		intentType = domain.IntentSME
	}

	return domain.IntentScore{
		Type:       intentType,
		Confidence: math.Min(math.Max(scores.Startup, scores.SME), 1.0),
		Signals:    recent,
		Scores:     scores,
	}
}

func recentSignals(signals []domain.BehaviorSignal) []domain.BehaviorSignal {
	start := 0
	if len(signals) > RecentWindow {
		start = len(signals) - RecentWindow
	}
	out := make([]domain.BehaviorSignal, len(signals)-start)
	copy(out, signals[start:])
	return out
}
