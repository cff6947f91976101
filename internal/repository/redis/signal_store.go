package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aiAutomate/business/intent"
	"aiAutomate/domain"

	"github.com/redis/go-redis/v9"
)

type SignalStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ intent.SignalStore = (*SignalStore)(nil)

func NewSignalStore(client *redis.Client, ttl time.Duration) *SignalStore {
	return &SignalStore{
		client: client,
		ttl:    ttl,
	}
}

func signalsKey(sessionID string) string {
	// key format: "session:signals:{session_id}"
	return fmt.Sprintf("session:signals:%s", sessionID)
}

// Append pushes the signal, trims the list to the newest MaxSignals and
// refreshes the session TTL in one MULTI block.
func (r *SignalStore) Append(ctx context.Context, sessionID string, sig domain.BehaviorSignal) error {
	raw, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("failed to marshal signal: %w", err)
	}

	key := signalsKey(sessionID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, raw)
		pipe.LTrim(ctx, key, -intent.MaxSignals, -1)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append signal in Redis: %w", err)
	}

	return nil
}

func (r *SignalStore) History(ctx context.Context, sessionID string) ([]domain.BehaviorSignal, error) {
	vals, err := r.client.LRange(ctx, signalsKey(sessionID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read signals from Redis: %w", err)
	}

	out := make([]domain.BehaviorSignal, 0, len(vals))
	for _, v := range vals {
		var sig domain.BehaviorSignal
		if err := json.Unmarshal([]byte(v), &sig); err != nil {
			return nil, fmt.Errorf("failed to unmarshal signal: %w", err)
		}
		out = append(out, sig)
	}

	return out, nil
}
