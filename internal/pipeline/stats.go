package pipeline

import "github.com/backmassage/resmerge/internal/merge"

// RunStats tracks aggregate counters across one batch invocation.
type RunStats struct {
	Strategies   int // Strategies configured for this run.
	Completed    int
	Failed       int
	Targets      int
	Sources      int // Sources merged (self-merge skips excluded).
	Deleted      int
	BytesWritten int64

	// Reports holds every per-target report, in execution order, for the
	// summary table.
	Reports []merge.TargetReport
}

// absorb folds one strategy result into the aggregate counters.
func (s *RunStats) absorb(res merge.Result) {
	s.Targets += len(res.Targets)
	s.Sources += res.TotalSources()
	s.Deleted += res.TotalDeleted()
	s.BytesWritten += res.TotalBytes()
	s.Reports = append(s.Reports, res.Targets...)
}
