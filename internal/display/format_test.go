package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/resmerge/internal/merge"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{-7, "0 B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable([]merge.TargetReport{
		{Path: "/target/classes/message.properties", Sources: 3, Deleted: 3, Bytes: 2048},
		{Path: "/target/merged/all.conf", Sources: 1, Deleted: 0, Bytes: 10},
	})

	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, "SOURCES")
	assert.Contains(t, out, "/target/classes/message.properties")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "10 B")
}

func TestSummaryTable_Empty(t *testing.T) {
	out := SummaryTable(nil)
	assert.Contains(t, out, "TARGET")
}
