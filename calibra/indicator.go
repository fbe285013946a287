package calibra

import (
	"fmt"

	"github.com/gammazero/deque"
)

// SMA computes the simple moving average of the closes over a trailing
// window. Entries before the window has filled are unavailable.
func SMA(closes []float64, window int) ([]Optional, error) {
	if window < 1 {
		return nil, fmt.Errorf("invalid moving average window: %d", window)
	}
	output := make([]Optional, len(closes))
	var trailing deque.Deque[float64]
	sum := 0.0
	for i, close := range closes {
		trailing.PushBack(close)
		sum += close
		if trailing.Len() > window {
			sum -= trailing.PopFront()
		}
		if trailing.Len() == window {
			output[i] = Some(sum / float64(window))
		}
	}
	return output, nil
}

// RSI computes the relative-strength index over a trailing period of
// per-step gains and losses. The first defined value appears at index
// period, once that many close-to-close deltas exist. A period with zero
// average loss saturates to 100 rather than dividing by zero.
func RSI(closes []float64, period int) ([]Optional, error) {
	if period < 1 {
		return nil, fmt.Errorf("invalid RSI period: %d", period)
	}
	output := make([]Optional, len(closes))
	var gains deque.Deque[float64]
	var losses deque.Deque[float64]
	gainSum := 0.0
	lossSum := 0.0
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i - 1]
		gains.PushBack(max(delta, 0.0))
		losses.PushBack(max(-delta, 0.0))
		gainSum += max(delta, 0.0)
		lossSum += max(-delta, 0.0)
		if gains.Len() > period {
			gainSum -= gains.PopFront()
			lossSum -= losses.PopFront()
		}
		if gains.Len() < period {
			continue
		}
		averageGain := gainSum / float64(period)
		averageLoss := lossSum / float64(period)
		if averageLoss == 0.0 {
			output[i] = Some(100.0)
			continue
		}
		rs := averageGain / averageLoss
		output[i] = Some(100.0 - 100.0 / (1.0 + rs))
	}
	return output, nil
}
