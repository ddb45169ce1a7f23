package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/resmerge/internal/merge"
)

func TestRunStatsAbsorb(t *testing.T) {
	var stats RunStats
	stats.absorb(merge.Result{Targets: []merge.TargetReport{
		{Path: "/t/a", Sources: 2, Deleted: 2, Bytes: 10},
		{Path: "/t/b", Sources: 1, Deleted: 0, Bytes: 5},
	}})
	stats.absorb(merge.Result{})

	assert.Equal(t, 2, stats.Targets)
	assert.Equal(t, 3, stats.Sources)
	assert.Equal(t, 2, stats.Deleted)
	assert.Equal(t, int64(15), stats.BytesWritten)
	assert.Len(t, stats.Reports, 2)
}
