package intent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aiAutomate/domain"
	"aiAutomate/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session id")

// SignalStore keeps the bounded signal history per visitor session.
// Implementations must cap a session at MaxSignals, dropping the oldest.
type SignalStore interface {
	Append(ctx context.Context, sessionID string, sig domain.BehaviorSignal) error
	History(ctx context.Context, sessionID string) ([]domain.BehaviorSignal, error)
}

type Service struct {
	store SignalStore
	now   func() time.Time
}

func NewService(store SignalStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) StartSession(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}
	id := uuid.New().String()
	SessionsStarted.Inc()
	return id, nil
}

func ParseSessionID(sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSession, sessionID)
	}
	return nil
}

func (s *Service) RecordSignal(ctx context.Context, sessionID string, sig domain.BehaviorSignal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if err := ParseSessionID(sessionID); err != nil {
		return err
	}
	if err := ValidateSignal(sig); err != nil {
		return err
	}
	if sig.Timestamp.IsZero() {
		sig.Timestamp = s.now().UTC()
	}

	if err := s.store.Append(ctx, sessionID, sig); err != nil {
		return fmt.Errorf("append signal: %w", err)
	}

	SignalsRecorded.WithLabelValues(string(sig.Type)).Inc()
	return nil
}

// RecordSignals validates the whole batch before appending any of it. On a
// store failure it returns how many signals were appended.
func (s *Service) RecordSignals(ctx context.Context, sessionID string, sigs []domain.BehaviorSignal) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if err := ParseSessionID(sessionID); err != nil {
		return 0, err
	}
	for i, sig := range sigs {
		if err := ValidateSignal(sig); err != nil {
			return 0, fmt.Errorf("signal %d: %w", i, err)
		}
	}

	for i, sig := range sigs {
		if err := s.RecordSignal(ctx, sessionID, sig); err != nil {
			return i, err
		}
	}
	return len(sigs), nil
}

func (s *Service) DetectIntent(ctx context.Context, sessionID string) (domain.IntentScore, error) {
	if err := ctx.Err(); err != nil {
		return domain.IntentScore{}, fmt.Errorf("context error: %w", err)
	}
	if err := ParseSessionID(sessionID); err != nil {
		return domain.IntentScore{}, err
	}

	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		return domain.IntentScore{}, fmt.Errorf("load signal history: %w", err)
	}

	score := NewDetectorFromHistory(history).DetectIntent()

	logger.Debug("intent_detected",
		"session_id", sessionID,
		"signals", len(history),
		"type", score.Type,
		"confidence", score.Confidence,
		"startup", score.Scores.Startup,
		"sme", score.Scores.SME,
	)
	Detections.WithLabelValues(string(score.Type)).Inc()

	return score, nil
}
