package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/resmerge/internal/config"
)

func newTestStrategy(t *testing.T, sc config.StrategyConfig) *RegexStrategy {
	t.Helper()
	s, err := NewRegexStrategy(sc)
	require.NoError(t, err)
	return s
}

func TestResolveTarget_CaptureGroups(t *testing.T) {
	tests := []struct {
		name     string
		regex    string
		filename string
		want     string
		wantSkip bool
	}{
		{
			name:     "locale bundle base",
			regex:    `.*(message)(_.*)?(\.properties)`,
			filename: "base_message.properties",
			want:     "message.properties",
		},
		{
			name:     "locale bundle variant",
			regex:    `.*(message)(_.*)?(\.properties)`,
			filename: "biz1_message_en.properties",
			want:     "message_en.properties",
		},
		{
			name:     "non-participating group contributes nothing",
			regex:    `(base)?(app)\.conf`,
			filename: "app.conf",
			want:     "app",
		},
		{
			name:     "unrelated non-capturing parts do not change the target",
			regex:    `(?:prefix|other)-(core)(\.txt)`,
			filename: "other-core.txt",
			want:     "core.txt",
		},
		{
			name:     "no match is a skip",
			regex:    `.*(message)(\.properties)`,
			filename: "readme.md",
			wantSkip: true,
		},
		{
			name:     "substring match is not enough",
			regex:    `a(b)c`,
			filename: "xabcx",
			wantSkip: true,
		},
		{
			name:     "matching is case-sensitive",
			regex:    `(MESSAGE)\.properties`,
			filename: "message.properties",
			wantSkip: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStrategy(t, config.StrategyConfig{FilesRegex: tt.regex})

			got, ok, err := s.resolveTarget("/origin/"+tt.filename, &testLogger{})
			require.NoError(t, err)
			if tt.wantSkip {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTarget_StaticMergeFile(t *testing.T) {
	s := newTestStrategy(t, config.StrategyConfig{
		FilesRegex: `.*(message)(\.properties)`,
		MergeFile:  "xxx.yyy",
	})

	got, ok, err := s.resolveTarget("/origin/base_message.properties", &testLogger{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "xxx.yyy", got)
}

func TestResolveTarget_EmptyConcatenation(t *testing.T) {
	s := newTestStrategy(t, config.StrategyConfig{FilesRegex: `file(x?)\.txt`})

	// The only group matches the empty string, so no target can be derived.
	_, _, err := s.resolveTarget("/origin/file.txt", &testLogger{})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "file.txt")
	assert.Contains(t, err.Error(), `file(x?)\.txt`)
}

func TestResolveTarget_NoCaptureGroups(t *testing.T) {
	s := newTestStrategy(t, config.StrategyConfig{FilesRegex: `.*\.properties`})

	_, _, err := s.resolveTarget("/origin/base_message.properties", &testLogger{})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewRegexStrategy_EmptyRegex(t *testing.T) {
	_, err := NewRegexStrategy(config.StrategyConfig{})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewRegexStrategy_InvalidRegex(t *testing.T) {
	_, err := NewRegexStrategy(config.StrategyConfig{FilesRegex: `([`})
	require.ErrorIs(t, err, ErrConfiguration)
}
