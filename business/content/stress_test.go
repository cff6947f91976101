//go:build !integration

package content

import (
	"math/rand"
	"testing"

	"aiAutomate/domain"
)

// scenario params
const (
	stressVisitors = 10000
)

var stressTrueRates = map[string]float64{
	"weak":   0.05,
	"strong": 0.30,
}

func TestOptimizer_ConvergesOnBestVariant(t *testing.T) {
	o := newTestOptimizer(t, DefaultConfig(),
		variant("weak", domain.IntentStartup, 0, 0),
		variant("strong", domain.IntentStartup, 0, 0),
	)
	visitor := rand.New(rand.NewSource(99))

	modes := map[string]int{}
	for i := 0; i < stressVisitors; i++ {
		v, sel, err := o.GetOptimizedContent(startupIntent())
		if err != nil {
			t.Fatal(err)
		}
		modes[sel.Mode]++

		if _, err := o.RecordImpression(v.ID, v.Audience); err != nil {
			t.Fatal(err)
		}
		if visitor.Float64() < stressTrueRates[v.ID] {
			if _, err := o.RecordConversion(v.ID, v.Audience); err != nil {
				t.Fatal(err)
			}
		}
	}

	perf := map[string]domain.VariantPerformance{}
	var total int64
	for _, v := range o.Variants(domain.IntentStartup) {
		perf[v.ID] = v.Performance
		total += v.Performance.Impressions
	}

	t.Logf("weak=%+v strong=%+v modes=%v", perf["weak"], perf["strong"], modes)

	if total != stressVisitors {
		t.Fatalf("impressions = %d, want %d", total, stressVisitors)
	}
	if perf["strong"].Impressions < 2*perf["weak"].Impressions {
		t.Fatalf("strong variant under-served: strong=%d weak=%d", perf["strong"].Impressions, perf["weak"].Impressions)
	}
	if modes[ModeExploit] < modes[ModeExplore] {
		t.Fatalf("expected mostly exploitation once warm, got %v", modes)
	}
}
