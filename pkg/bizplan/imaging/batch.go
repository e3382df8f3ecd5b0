package imaging

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Failure records an image that could not be processed.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// BatchResult aggregates OptimizeBatch. One failing image never stops the
// rest of the batch.
type BatchResult struct {
	Processed       []*Result     `json:"processed"`
	Failed          []Failure     `json:"failed"`
	TotalSizeBefore int64         `json:"total_size_before"`
	TotalSizeAfter  int64         `json:"total_size_after"`
	ProcessingTime  time.Duration `json:"processing_time"`
}

// Success reports whether every image was processed.
func (b *BatchResult) Success() bool {
	return len(b.Failed) == 0
}

// OptimizeBatch optimizes each path in order.
func OptimizeBatch(paths []string, opts Options) *BatchResult {
	start := time.Now()
	out := &BatchResult{}
	for _, p := range paths {
		res, err := OptimizeFile(p, opts)
		if err != nil {
			log.Debug().Err(err).Str("path", p).Msg("image skipped")
			out.Failed = append(out.Failed, Failure{Path: p, Error: err.Error()})
			continue
		}
		out.Processed = append(out.Processed, res)
		out.TotalSizeBefore += res.SizeBefore
		out.TotalSizeAfter += res.SizeAfter
	}
	out.ProcessingTime = time.Since(start)
	return out
}
