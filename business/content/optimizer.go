package content

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"aiAutomate/domain"
)

var (
	ErrNoVariantsAvailable = errors.New("no content variants available")
	ErrVariantNotFound     = errors.New("content variant not found")
	ErrInvalidVariant      = errors.New("invalid content variant")
)

const (
	ModeExplore = "explore"
	ModeExploit = "exploit"
)

type Selection struct {
	Mode  string  `json:"mode"`
	Score float64 `json:"score"`
}

// Optimizer picks a content variant per audience with an epsilon-greedy
// policy that falls back to UCB once every candidate is warmed up.
// Counters are shared by all sessions and guarded by mu.
type Optimizer struct {
	mu       sync.Mutex
	cfg      Config
	variants map[domain.IntentType][]*domain.ContentVariant
	rng      *rand.Rand
}

// NewOptimizer builds an empty optimizer. A nil rng gets a time-seeded source.
func NewOptimizer(cfg Config, rng *rand.Rand) *Optimizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Optimizer{
		cfg:      cfg,
		variants: make(map[domain.IntentType][]*domain.ContentVariant),
		rng:      rng,
	}
}

func validateVariant(v domain.ContentVariant) error {
	if v.ID == "" || strings.Contains(v.ID, "|") {
		return fmt.Errorf("%w: id %q", ErrInvalidVariant, v.ID)
	}
	if !v.Audience.Valid() {
		return fmt.Errorf("%w: audience %q", ErrInvalidVariant, v.Audience)
	}
	if _, ok := v.Copy[domain.LocaleEN]; !ok {
		return fmt.Errorf("%w: %s has no %q copy", ErrInvalidVariant, v.ID, domain.LocaleEN)
	}
	if v.Performance.Impressions < 0 || v.Performance.Conversions < 0 {
		return fmt.Errorf("%w: negative counters", ErrInvalidVariant)
	}
	return nil
}

// Register adds a variant to its audience. Registering an existing id
// replaces its copy and keeps the live counters.
func (o *Optimizer) Register(v domain.ContentVariant) error {
	if err := validateVariant(v); err != nil {
		return err
	}

	v = snapshot(&v)
	v.Performance.ConversionRate = conversionRate(v.Performance.Impressions, v.Performance.Conversions)

	o.mu.Lock()
	defer o.mu.Unlock()

	list := o.variants[v.Audience]
	for i, existing := range list {
		if existing.ID == v.ID {
			v.Performance = existing.Performance
			list[i] = &v
			return nil
		}
	}
	o.variants[v.Audience] = append(list, &v)
	return nil
}

// Restore overwrites the counters of a registered variant.
func (o *Optimizer) Restore(audience domain.IntentType, variantID string, impressions, conversions int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	v, err := o.find(audience, variantID)
	if err != nil {
		return err
	}
	v.Performance = domain.VariantPerformance{
		Impressions:    impressions,
		Conversions:    conversions,
		ConversionRate: conversionRate(impressions, conversions),
	}
	return nil
}

// Variants lists copies of the variants registered for audience, in order.
func (o *Optimizer) Variants(audience domain.IntentType) []domain.ContentVariant {
	o.mu.Lock()
	defer o.mu.Unlock()

	list := o.variants[audience]
	out := make([]domain.ContentVariant, 0, len(list))
	for _, v := range list {
		out = append(out, snapshot(v))
	}
	return out
}

func (o *Optimizer) GetOptimizedContent(score domain.IntentScore) (domain.ContentVariant, Selection, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	candidates := o.variants[score.Type]
	if len(candidates) == 0 {
		return domain.ContentVariant{}, Selection{}, fmt.Errorf("%w for audience %q", ErrNoVariantsAvailable, score.Type)
	}

	explore := o.rng.Float64() < o.cfg.Epsilon
	var total int64
	for _, v := range candidates {
		if v.Performance.Impressions < o.cfg.MinImpressions {
			explore = true
		}
		total += v.Performance.Impressions
	}

	if explore {
		v := candidates[o.rng.Intn(len(candidates))]
		return snapshot(v), Selection{Mode: ModeExplore}, nil
	}

	bestIdx := 0
	bestScore := ucbScore(candidates[0].Performance.ConversionRate, total, candidates[0].Performance.Impressions)
	for i := 1; i < len(candidates); i++ {
		p := candidates[i].Performance
		if s := ucbScore(p.ConversionRate, total, p.Impressions); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}

	return snapshot(candidates[bestIdx]), Selection{Mode: ModeExploit, Score: bestScore}, nil
}

func (o *Optimizer) RecordImpression(variantID string, audience domain.IntentType) (domain.VariantPerformance, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	v, err := o.find(audience, variantID)
	if err != nil {
		return domain.VariantPerformance{}, err
	}
	v.Performance.Impressions++
	v.Performance.ConversionRate = conversionRate(v.Performance.Impressions, v.Performance.Conversions)
	return v.Performance, nil
}

func (o *Optimizer) RecordConversion(variantID string, audience domain.IntentType) (domain.VariantPerformance, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	v, err := o.find(audience, variantID)
	if err != nil {
		return domain.VariantPerformance{}, err
	}
	v.Performance.Conversions++
	v.Performance.ConversionRate = conversionRate(v.Performance.Impressions, v.Performance.Conversions)
	return v.Performance, nil
}

// find requires o.mu to be held.
func (o *Optimizer) find(audience domain.IntentType, variantID string) (*domain.ContentVariant, error) {
	for _, v := range o.variants[audience] {
		if v.ID == variantID {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, audience, variantID)
}

// snapshot copies a variant including its copy map.
func snapshot(v *domain.ContentVariant) domain.ContentVariant {
	out := *v
	out.Copy = make(map[string]domain.VariantCopy, len(v.Copy))
	for locale, c := range v.Copy {
		out.Copy[locale] = c
	}
	return out
}
