package calibra

// Position signal values per timestep.
const (
	SignalLong = 1.0
	SignalShort = -1.0
	SignalFlat = 0.0
)

// CrossoverSignal is long wherever the fast average is above the slow one
// and short otherwise. Indices where either input is unavailable carry no
// signal.
func CrossoverSignal(fast, slow []Optional) []Optional {
	length := min(len(fast), len(slow))
	signal := make([]Optional, length)
	for i := 0; i < length; i++ {
		if !fast[i].Available || !slow[i].Available {
			continue
		}
		if fast[i].Value > slow[i].Value {
			signal[i] = Some(SignalLong)
		} else {
			signal[i] = Some(SignalShort)
		}
	}
	return signal
}

// ThresholdSignal is long at or below the oversold threshold, short at or
// above the overbought threshold, and flat in between. The flat default is
// not carried forward from the previous step.
func ThresholdSignal(values []Optional, oversold, overbought float64) []Optional {
	signal := make([]Optional, len(values))
	for i, value := range values {
		if !value.Available {
			continue
		}
		switch {
		case value.Value <= oversold:
			signal[i] = Some(SignalLong)
		case value.Value >= overbought:
			signal[i] = Some(SignalShort)
		default:
			signal[i] = Some(SignalFlat)
		}
	}
	return signal
}
