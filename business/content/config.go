package content

type Config struct {
	// probability of picking a uniformly random variant
	Epsilon float64
	// every candidate needs this many impressions before UCB takes over
	MinImpressions int64
}

const (
	defaultEpsilon        = 0.10
	defaultMinImpressions = 10
)

func DefaultConfig() Config {
	return Config{
		Epsilon:        defaultEpsilon,
		MinImpressions: defaultMinImpressions,
	}
}
