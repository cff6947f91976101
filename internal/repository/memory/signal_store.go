package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"aiAutomate/business/intent"
	"aiAutomate/domain"
)

const defaultMaxSessions = 10000

type session struct {
	detector    *intent.Detector
	lastUpdated time.Time
}

// SignalStore keeps session histories in process memory. Sessions expire
// after ttl without activity; beyond maxSessions the least recently
// active are dropped.
type SignalStore struct {
	mu          sync.Mutex
	sessions    map[string]*session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

var _ intent.SignalStore = (*SignalStore)(nil)

func NewSignalStore(ttl time.Duration, maxSessions int) *SignalStore {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &SignalStore{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

func (s *SignalStore) Append(ctx context.Context, sessionID string, sig domain.BehaviorSignal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess, now) {
		sess = &session{detector: intent.NewDetector()}
		s.sessions[sessionID] = sess
	}
	sess.lastUpdated = now

	if err := sess.detector.RecordSignal(sig); err != nil {
		return err
	}

	s.capSessions()
	return nil
}

func (s *SignalStore) History(ctx context.Context, sessionID string) ([]domain.BehaviorSignal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, sessionID)
		return nil, nil
	}
	return sess.detector.Signals(), nil
}

func (s *SignalStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SignalStore) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastUpdated) > s.ttl
}

// capSessions drops expired sessions first, then the least recently updated.
// Caller holds s.mu.
func (s *SignalStore) capSessions() {
	if len(s.sessions) <= s.maxSessions {
		return
	}

	now := s.now()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}

	toDrop := len(s.sessions) - s.maxSessions
	if toDrop <= 0 {
		return
	}

	type sessionInfo struct {
		id          string
		lastUpdated time.Time
	}
	infos := make([]sessionInfo, 0, len(s.sessions))
	for id, sess := range s.sessions {
		infos = append(infos, sessionInfo{id: id, lastUpdated: sess.lastUpdated})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].lastUpdated.Before(infos[j].lastUpdated)
	})

	for i := 0; i < toDrop; i++ {
		delete(s.sessions, infos[i].id)
	}
}
