package calibra

// Optional is an indicator value that may not be available yet, such as a
// moving average whose lookback window has not filled. Unavailable entries
// never produce a signal and never contribute to a score.
type Optional struct {
	Value float64
	Available bool
}

func Some(value float64) Optional {
	return Optional{
		Value: value,
		Available: true,
	}
}

func None() Optional {
	return Optional{}
}
