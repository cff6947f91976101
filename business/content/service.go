package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aiAutomate/domain"
	"aiAutomate/pkg/logger"

	"gorm.io/datatypes"
)

var ErrInvalidFeedback = errors.New("invalid content feedback")

type EventRepository interface {
	SaveEvent(ctx context.Context, event domain.ContentEvent) error
	RecentEvents(ctx context.Context, audience domain.IntentType, variantID string, limit int) ([]domain.ContentEvent, error)
}

type StatsRepository interface {
	Increment(ctx context.Context, audience domain.IntentType, variantID string, impressions, conversions int64) error
	LoadAll(ctx context.Context) ([]domain.ContentVariantStats, error)
}

// Feedback identifies the variant a session reacted to, either by explicit
// ids or by the conversion token handed out when the content was served.
type Feedback struct {
	SessionID string
	VariantID string
	Audience  domain.IntentType
	Token     string
	Context   map[string]any
}

type Service struct {
	optimizer *Optimizer
	events    EventRepository
	stats     StatsRepository
	tokens    *TokenCodec
}

func NewService(optimizer *Optimizer, events EventRepository, stats StatsRepository, tokens *TokenCodec) *Service {
	return &Service{
		optimizer: optimizer,
		events:    events,
		stats:     stats,
		tokens:    tokens,
	}
}

// Warm loads persisted counters into the optimizer. Rows for variants that
// are no longer in the catalog are skipped.
func (s *Service) Warm(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if s.stats == nil {
		return 0, nil
	}

	rows, err := s.stats.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load content stats: %w", err)
	}

	restored := 0
	for _, row := range rows {
		err := s.optimizer.Restore(domain.IntentType(row.Audience), row.VariantID, row.Impressions, row.Conversions)
		if errors.Is(err, ErrVariantNotFound) {
			logger.Warn("content_stats_orphan", "audience", row.Audience, "variant_id", row.VariantID)
			continue
		}
		if err != nil {
			return restored, err
		}
		restored++
	}
	return restored, nil
}

func (s *Service) Variants(audience domain.IntentType) []domain.ContentVariant {
	return s.optimizer.Variants(audience)
}

func (s *Service) RecentEvents(ctx context.Context, audience domain.IntentType, variantID string, limit int) ([]domain.ContentEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if s.events == nil {
		return []domain.ContentEvent{}, nil
	}
	events, err := s.events.RecentEvents(ctx, audience, variantID, limit)
	if err != nil {
		return nil, fmt.Errorf("load content events: %w", err)
	}
	return events, nil
}

func (s *Service) RegisterVariant(ctx context.Context, v domain.ContentVariant) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if err := s.optimizer.Register(v); err != nil {
		return err
	}
	logger.Info("content_variant_registered", "audience", v.Audience, "variant_id", v.ID)
	return nil
}

// Serve picks a variant for the detected intent and renders it in locale.
func (s *Service) Serve(ctx context.Context, sessionID string, score domain.IntentScore, locale string) (domain.ServedContent, error) {
	if err := ctx.Err(); err != nil {
		return domain.ServedContent{}, fmt.Errorf("context error: %w", err)
	}

	variant, sel, err := s.optimizer.GetOptimizedContent(score)
	if err != nil {
		return domain.ServedContent{}, err
	}
	if locale != domain.LocaleNL {
		locale = domain.LocaleEN
	}

	token, err := s.tokens.Encode(ConversionToken{
		VariantID: variant.ID,
		Audience:  variant.Audience,
		SessionID: sessionID,
	})
	if err != nil {
		return domain.ServedContent{}, err
	}

	SelectionsTotal.WithLabelValues(string(variant.Audience), sel.Mode).Inc()
	logger.Debug("content_serve",
		"trace_id", logger.TraceIDFromContext(ctx),
		"session_id", sessionID,
		"audience", variant.Audience,
		"variant_id", variant.ID,
		"mode", sel.Mode,
		"score", sel.Score,
		"confidence", score.Confidence,
	)

	return domain.ServedContent{
		SessionID:       sessionID,
		VariantID:       variant.ID,
		Audience:        variant.Audience,
		Locale:          locale,
		Copy:            variant.CopyFor(locale),
		Mode:            sel.Mode,
		ConversionToken: token,
		Intent:          score,
	}, nil
}

func (s *Service) RecordImpression(ctx context.Context, fb Feedback) (domain.VariantPerformance, error) {
	return s.record(ctx, fb, domain.ContentEventImpression)
}

func (s *Service) RecordConversion(ctx context.Context, fb Feedback) (domain.VariantPerformance, error) {
	return s.record(ctx, fb, domain.ContentEventConversion)
}

func (s *Service) resolve(fb Feedback) (Feedback, error) {
	if fb.Token == "" {
		if fb.VariantID == "" || !fb.Audience.Valid() {
			return fb, fmt.Errorf("%w: variant_id and audience or a token are required", ErrInvalidFeedback)
		}
		return fb, nil
	}

	t, err := s.tokens.Decode(fb.Token)
	if err != nil {
		return fb, err
	}
	if fb.SessionID != "" && fb.SessionID != t.SessionID {
		return fb, fmt.Errorf("%w: session mismatch", ErrInvalidToken)
	}
	fb.VariantID = t.VariantID
	fb.Audience = t.Audience
	fb.SessionID = t.SessionID
	return fb, nil
}

func (s *Service) record(ctx context.Context, fb Feedback, eventType string) (domain.VariantPerformance, error) {
	if err := ctx.Err(); err != nil {
		return domain.VariantPerformance{}, fmt.Errorf("context error: %w", err)
	}

	fb, err := s.resolve(fb)
	if err != nil {
		return domain.VariantPerformance{}, err
	}

	var perf domain.VariantPerformance
	var impressions, conversions int64
	switch eventType {
	case domain.ContentEventImpression:
		perf, err = s.optimizer.RecordImpression(fb.VariantID, fb.Audience)
		impressions = 1
	default:
		perf, err = s.optimizer.RecordConversion(fb.VariantID, fb.Audience)
		conversions = 1
	}
	if err != nil {
		return domain.VariantPerformance{}, err
	}

	audience := string(fb.Audience)
	if impressions > 0 {
		ImpressionsTotal.WithLabelValues(audience, fb.VariantID).Inc()
	} else {
		ConversionsTotal.WithLabelValues(audience, fb.VariantID).Inc()
	}

	// in-memory counters are authoritative for serving; persistence is best effort
	if s.stats != nil {
		if err := s.stats.Increment(ctx, fb.Audience, fb.VariantID, impressions, conversions); err != nil {
			logger.Warn("content_stats_increment_failed", "variant_id", fb.VariantID, "error", err)
		}
	}
	if s.events != nil {
		event := domain.ContentEvent{
			SessionID: fb.SessionID,
			VariantID: fb.VariantID,
			Audience:  audience,
			EventType: eventType,
			Context:   buildEventContext(time.Now(), fb.Context),
		}
		if err := s.events.SaveEvent(ctx, event); err != nil {
			logger.Warn("content_event_save_failed", "variant_id", fb.VariantID, "error", err)
		}
	}

	logger.Debug("content_feedback",
		"trace_id", logger.TraceIDFromContext(ctx),
		"session_id", fb.SessionID,
		"audience", audience,
		"variant_id", fb.VariantID,
		"event_type", eventType,
		"impressions", perf.Impressions,
		"conversions", perf.Conversions,
	)
	return perf, nil
}

// buildEventContext merges the client context with server-side fields.
func buildEventContext(now time.Time, clientCtx map[string]any) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range clientCtx {
		out[k] = v
	}
	out["event_time"] = now.UTC().Format(time.RFC3339)
	out["dow"] = int(now.Weekday())
	return out
}
