package domain

import "time"

type SignalType string

const (
	SignalScroll          SignalType = "scroll"
	SignalClick           SignalType = "click"
	SignalHover           SignalType = "hover"
	SignalNavigation      SignalType = "navigation"
	SignalContentView     SignalType = "content-view"
	SignalTimeOnPage      SignalType = "time-on-page"
	SignalFormInteraction SignalType = "form-interaction"
)

func (t SignalType) Valid() bool {
	switch t {
	case SignalScroll, SignalClick, SignalHover, SignalNavigation,
		SignalContentView, SignalTimeOnPage, SignalFormInteraction:
		return true
	}
	return false
}

type BehaviorSignal struct {
	Type      SignalType        `json:"type"`
	Value     float64           `json:"value"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type IntentType string

const (
	IntentStartup   IntentType = "startup"
	IntentSME       IntentType = "sme"
	IntentUniversal IntentType = "universal"
)

func (t IntentType) Valid() bool {
	return t == IntentStartup || t == IntentSME || t == IntentUniversal
}

// AudienceScores holds one score per candidate audience, each in [0, 1].
type AudienceScores struct {
	Startup float64 `json:"startup"`
	SME     float64 `json:"sme"`
}

type IntentScore struct {
	Type       IntentType       `json:"type"`
	Confidence float64          `json:"confidence"`
	Signals    []BehaviorSignal `json:"signals"`
	Scores     AudienceScores   `json:"scores"`
}
