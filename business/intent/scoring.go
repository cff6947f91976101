package intent

import (
	"strconv"
	"strings"

	"aiAutomate/domain"
)

// Sub-score weights. They must sum to 1.
const (
	WeightScrollDepth        = 0.25
	WeightTimeOnPage         = 0.20
	WeightInteractionPattern = 0.25
	WeightContentEngagement  = 0.15
	WeightNavigationPath     = 0.15
)

// Hand-tuned thresholds.
const (
	fastScrollSpeed = 50.0 // px/s
	slowScrollSpeed = 20.0 // px/s
	deepScrollDepth = 0.75 // fraction of page
	depthNudge      = 0.10

	shortVisitSeconds = 30.0
	longVisitSeconds  = 120.0

	decisiveClickRatio   = 1.5
	deliberateClickRatio = 0.5

	leaningHigh = 0.70
	leaningLow  = 0.30
)

// Keywords are matched against lowercase topics and paths, English and Dutch.
var (
	startupKeywords = []string{
		"startup", "start-up", "starter", "mvp", "funding", "investor",
		"scaleup", "scale-up", "launch", "quick-start", "pricing", "groei",
		"financiering", "lancering",
	}
	smeKeywords = []string{
		"sme", "mkb", "enterprise", "case-stud", "casestud", "integration",
		"integratie", "compliance", "gdpr", "roi", "support", "ondersteuning",
		"security", "beveiliging", "process", "proces", "klantcase",
	}
)

type scorer struct {
	weight float64
	score  func([]domain.BehaviorSignal) domain.AudienceScores
}

var scorers = []scorer{
	{WeightScrollDepth, scrollDepthScore},
	{WeightTimeOnPage, timeOnPageScore},
	{WeightInteractionPattern, interactionPatternScore},
	{WeightContentEngagement, contentEngagementScore},
	{WeightNavigationPath, navigationPathScore},
}

func neutral() domain.AudienceScores {
	return domain.AudienceScores{Startup: neutralScore, SME: neutralScore}
}

func leanStartup() domain.AudienceScores {
	return domain.AudienceScores{Startup: leaningHigh, SME: leaningLow}
}

func leanSME() domain.AudienceScores {
	return domain.AudienceScores{Startup: leaningLow, SME: leaningHigh}
}

func combine(signals []domain.BehaviorSignal) domain.AudienceScores {
	var out domain.AudienceScores
	for _, s := range scorers {
		sub := s.score(signals)
		out.Startup += s.weight * sub.Startup
		out.SME += s.weight * sub.SME
	}
	return out
}

func filter(signals []domain.BehaviorSignal, types ...domain.SignalType) []domain.BehaviorSignal {
	var out []domain.BehaviorSignal
	for _, sig := range signals {
		for _, t := range types {
			if sig.Type == t {
				out = append(out, sig)
				break
			}
		}
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// scrollDepthScore: fast skimming reads as startup, slow reading as sme.
// Scrolling deep into a page nudges towards sme.
func scrollDepthScore(signals []domain.BehaviorSignal) domain.AudienceScores {
	scrolls := filter(signals, domain.SignalScroll)
	if len(scrolls) == 0 {
		return neutral()
	}

	total, maxDepth := 0.0, 0.0
	for _, s := range scrolls {
		total += s.Value
		if d, err := strconv.ParseFloat(s.Metadata["depth"], 64); err == nil && d > maxDepth {
			maxDepth = d
		}
	}
	avgSpeed := total / float64(len(scrolls))

	out := neutral()
	switch {
	case avgSpeed > fastScrollSpeed:
		out = leanStartup()
	case avgSpeed < slowScrollSpeed:
		out = leanSME()
	}

	if maxDepth >= deepScrollDepth {
		out.Startup = clamp01(out.Startup - depthNudge)
		out.SME = clamp01(out.SME + depthNudge)
	}
	return out
}

// timeOnPageScore uses the latest reported dwell time in seconds.
func timeOnPageScore(signals []domain.BehaviorSignal) domain.AudienceScores {
	visits := filter(signals, domain.SignalTimeOnPage)
	if len(visits) == 0 {
		return neutral()
	}

	seconds := visits[len(visits)-1].Value
	switch {
	case seconds < shortVisitSeconds:
		return domain.AudienceScores{Startup: 0.65, SME: 0.35}
	case seconds > longVisitSeconds:
		return leanSME()
	}
	return neutral()
}

// interactionPatternScore compares clicks to hovers: decisive visitors click,
// evaluating visitors hover around first.
func interactionPatternScore(signals []domain.BehaviorSignal) domain.AudienceScores {
	clicks := len(filter(signals, domain.SignalClick))
	hovers := len(filter(signals, domain.SignalHover))
	if clicks+hovers == 0 {
		return neutral()
	}
	if hovers == 0 {
		return leanStartup()
	}

	ratio := float64(clicks) / float64(hovers)
	switch {
	case ratio > decisiveClickRatio:
		return leanStartup()
	case ratio < deliberateClickRatio:
		return leanSME()
	}
	return neutral()
}

// contentEngagementScore weighs which topics were viewed. Form interactions
// (calculator, contact form) count towards sme.
func contentEngagementScore(signals []domain.BehaviorSignal) domain.AudienceScores {
	engaged := filter(signals, domain.SignalContentView, domain.SignalFormInteraction)
	if len(engaged) == 0 {
		return neutral()
	}

	var startupHits, smeHits float64
	for _, s := range engaged {
		if s.Type == domain.SignalFormInteraction {
			smeHits++
			continue
		}
		topic := s.Metadata["topic"]
		if topic == "" {
			topic = s.Metadata["section"]
		}
		st, sm := keywordHits(topic)
		startupHits += st
		smeHits += sm
	}
	return ratioScore(startupHits, smeHits)
}

// navigationPathScore looks at which audience pages were visited.
func navigationPathScore(signals []domain.BehaviorSignal) domain.AudienceScores {
	navs := filter(signals, domain.SignalNavigation)
	if len(navs) == 0 {
		return neutral()
	}

	var startupHits, smeHits float64
	for _, s := range navs {
		st, sm := keywordHits(s.Metadata["path"])
		startupHits += st
		smeHits += sm
	}
	return ratioScore(startupHits, smeHits)
}

func keywordHits(text string) (startup, sme float64) {
	text = strings.ToLower(text)
	if text == "" {
		return 0, 0
	}
	for _, k := range startupKeywords {
		if strings.Contains(text, k) {
			startup++
			break
		}
	}
	for _, k := range smeKeywords {
		if strings.Contains(text, k) {
			sme++
			break
		}
	}
	return startup, sme
}

func ratioScore(startupHits, smeHits float64) domain.AudienceScores {
	total := startupHits + smeHits
	if total == 0 {
		return neutral()
	}
	return domain.AudienceScores{
		Startup: startupHits / total,
		SME:     smeHits / total,
	}
}
