package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	LocaleEN = "en"
	LocaleNL = "nl"
)

// VariantCopy is the headline/CTA text of a variant in one language.
type VariantCopy struct {
	Headline    string `json:"headline" yaml:"headline"`
	Subheadline string `json:"subheadline" yaml:"subheadline"`
	CTA         string `json:"cta" yaml:"cta"`
}

type VariantPerformance struct {
	Impressions    int64   `json:"impressions"`
	Conversions    int64   `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

type ContentVariant struct {
	ID          string                 `json:"id" validate:"required"`
	Audience    IntentType             `json:"audience" validate:"required,oneof=startup sme universal"`
	Copy        map[string]VariantCopy `json:"copy" validate:"required,min=1"`
	Performance VariantPerformance     `json:"performance"`
}

// CopyFor returns the copy in locale, falling back to English.
func (v ContentVariant) CopyFor(locale string) VariantCopy {
	if c, ok := v.Copy[locale]; ok {
		return c
	}
	return v.Copy[LocaleEN]
}

const (
	ContentEventImpression = "impression"
	ContentEventConversion = "conversion"
)

type ContentEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SessionID string            `gorm:"column:session_id;index" json:"session_id"`
	VariantID string            `gorm:"column:variant_id;not null" json:"variant_id"`
	Audience  string            `gorm:"column:audience;not null" json:"audience"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentEvent) TableName() string {
	return "content_events"
}

// ContentVariantStats is the aggregated counter row per (audience, variant).
type ContentVariantStats struct {
	Audience    string    `gorm:"column:audience;primaryKey" json:"audience"`
	VariantID   string    `gorm:"column:variant_id;primaryKey" json:"variant_id"`
	Impressions int64     `gorm:"column:impressions;not null;default:0" json:"impressions"`
	Conversions int64     `gorm:"column:conversions;not null;default:0" json:"conversions"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentVariantStats) TableName() string {
	return "content_variant_stats"
}

// ServedContent is what the site renders for a session, plus the token it
// sends back when the visitor converts.
type ServedContent struct {
	SessionID       string      `json:"session_id"`
	VariantID       string      `json:"variant_id"`
	Audience        IntentType  `json:"audience"`
	Locale          string      `json:"locale"`
	Copy            VariantCopy `json:"copy"`
	Mode            string      `json:"mode"`
	ConversionToken string      `json:"conversion_token"`
	Intent          IntentScore `json:"intent"`
}
