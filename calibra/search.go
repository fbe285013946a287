package calibra

import (
	"errors"
	"time"

	"github.com/cheggaaa/pb"
)

var ErrEmptyGrid = errors.New("empty search space")

// Batch size between deadline checks during parallel evaluation.
const searchBatchSize = 256

type SearchOptions struct {
	Progress bool
	// Deadline aborts the sweep after the given duration; zero disables it.
	// A truncated search still reports the best point seen so far.
	Deadline time.Duration
}

type SearchResult[P any] struct {
	Best P
	Score float64
	Evaluated int
	Truncated bool
}

// Search exhaustively evaluates every point and returns the one with the
// maximum score. Points are scored in parallel but reduced in enumeration
// order with a strict greater-than comparison, so the first point to attain
// the maximum wins ties and identical inputs always yield identical results.
func Search[P any](points []P, evaluate func(P) float64, options SearchOptions) (SearchResult[P], error) {
	if len(points) == 0 {
		return SearchResult[P]{}, ErrEmptyGrid
	}
	var bar *pb.ProgressBar
	if options.Progress {
		bar = pb.StartNew(len(points))
	}
	start := time.Now()
	scores := make([]float64, 0, len(points))
	truncated := false
	for offset := 0; offset < len(points); offset += searchBatchSize {
		end := min(offset + searchBatchSize, len(points))
		batch := parallelMap(points[offset:end], evaluate)
		scores = append(scores, batch...)
		if bar != nil {
			bar.Add(end - offset)
		}
		if options.Deadline > 0 && time.Since(start) >= options.Deadline && end < len(points) {
			truncated = true
			break
		}
	}
	if bar != nil {
		bar.Finish()
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	result := SearchResult[P]{
		Best: points[best],
		Score: scores[best],
		Evaluated: len(scores),
		Truncated: truncated,
	}
	return result, nil
}
