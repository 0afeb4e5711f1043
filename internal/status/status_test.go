package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressKnownStatuses(t *testing.T) {
	for s, want := range taxonomy {
		got := Progress(s)
		assert.Equal(t, want, got, "status %s", s)
		assert.GreaterOrEqual(t, got.Percent, 0, "status %s", s)
		assert.LessOrEqual(t, got.Percent, 100, "status %s", s)
		assert.NotEmpty(t, got.Label, "status %s", s)
	}
}

func TestProgressUnknownStatusFallsBack(t *testing.T) {
	for _, s := range []string{"", "unknown", "PENDING", "in-production", "shipped "} {
		got := Progress(s)
		assert.Equal(t, Info{DefaultPercent, DefaultLabel}, got, "input %q", s)
	}
}

func TestProgressFixedPoints(t *testing.T) {
	assert.Equal(t, 100, Progress(Completed).Percent)
	assert.Equal(t, 10, Progress(Pending).Percent)
	assert.Equal(t, 95, Progress(Shipped).Percent)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Cutting))
	assert.True(t, Valid(Cancelled))
	assert.False(t, Valid("dispatched"))
	assert.False(t, Valid(""))
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(Completed))
	assert.True(t, Terminal(Cancelled))
	assert.True(t, Terminal(Rejected))
	assert.False(t, Terminal(Shipped))
	assert.False(t, Terminal(Pending))
}

func TestOverallProgress(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want int
	}{
		{"empty", nil, 0},
		{"single", []int{40}, 40},
		{"three stages", []int{0, 50, 100}, 50},
		{"rounds up", []int{50, 51}, 51}, // 50.5 rounds to 51
		{"rounds down", []int{33, 33, 34}, 33},
		{"all complete", []int{100, 100, 100}, 100},
		{"all zero", []int{0, 0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallProgress(tt.in))
		})
	}
}

func TestOverallProgressBoundsAndPurity(t *testing.T) {
	in := []int{0, 13, 27, 55, 81, 100}
	first := OverallProgress(in)
	require.GreaterOrEqual(t, first, 0)
	require.LessOrEqual(t, first, 100)
	// Same unmodified input yields the same result.
	assert.Equal(t, first, OverallProgress(in))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, ClampPercent(-5))
	assert.Equal(t, 0, ClampPercent(0))
	assert.Equal(t, 73, ClampPercent(73))
	assert.Equal(t, 100, ClampPercent(100))
	assert.Equal(t, 100, ClampPercent(130))
}
