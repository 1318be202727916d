package vocab

// builtin returns a fresh copy of the built-in vocabulary and its domain
// order. Exposure order matters: the first entry is the fallback when no
// entry matches a claim.
func builtin() (map[string][]Exposure, []string) {
	domains := map[string][]Exposure{
		"health": {
			{
				Name:        "coffee",
				Outcomes:    []string{"sleep quality", "focus", "anxiety"},
				Confounders: []string{"sleep", "age", "stress", "workload"},
			},
			{
				Name:        "caffeine",
				Outcomes:    []string{"sleep quality", "alertness", "anxiety"},
				Confounders: []string{"sleep", "age", "stress"},
			},
			{
				Name:        "exercise",
				Outcomes:    []string{"anxiety", "weight", "mood"},
				Confounders: []string{"diet", "age", "baseline health"},
			},
			{
				Name:        "sugar",
				Outcomes:    []string{"weight gain", "energy", "metabolism"},
				Confounders: []string{"metabolism", "activity level", "age"},
			},
			{
				Name:        "screen time",
				Outcomes:    []string{"sleep quality", "focus"},
				Confounders: []string{"age", "stress", "time of day"},
			},
		},
		"finance": {
			{
				Name:        "positive news",
				Outcomes:    []string{"stock return", "volume"},
				Confounders: []string{"market trend", "sector shock", "macro conditions"},
			},
			{
				Name:        "tweet sentiment",
				Outcomes:    []string{"stock return", "volume", "volatility"},
				Confounders: []string{"market trend", "bot activity", "fake accounts", "macro data"},
			},
			{
				Name:        "earnings surprise",
				Outcomes:    []string{"stock return", "volatility"},
				Confounders: []string{"guidance revisions", "macroeconomic conditions", "sector performance"},
			},
			{
				Name:        "rate cut",
				Outcomes:    []string{"stock return", "volatility", "market stability"},
				Confounders: []string{"inflation", "economic growth", "global market signals"},
			},
		},
	}

	return domains, []string{"health", "finance"}
}
