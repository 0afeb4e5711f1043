package leads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.AddDate(0, 0, -d)
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name       string
		quotes     int
		orders     int
		last       time.Time
		wantLevel  string
		wantFollow bool
	}{
		{"active this week", 3, 0, daysAgo(2), Hot, false},
		{"exactly 7 days", 1, 0, daysAgo(7), Hot, false},
		{"8 days quiet", 1, 0, daysAgo(8), Warm, true},
		{"exactly 30 days", 2, 0, daysAgo(30), Warm, true},
		{"31 days quiet", 2, 0, daysAgo(31), Cold, true},
		{"no quotes ever", 0, 0, daysAgo(1), Cold, false},
		{"quoted and ordered", 4, 2, daysAgo(12), Warm, false},
		{"ordered recently", 1, 1, daysAgo(3), Hot, false},
		{"long gone", 5, 0, daysAgo(400), Cold, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.quotes, tt.orders, tt.last, now)
			assert.Equal(t, tt.wantLevel, got.InterestLevel)
			assert.Equal(t, tt.wantFollow, got.FollowUpNeeded)
		})
	}
}

// Holding quote count fixed and positive, growing the contact gap must never
// move a buyer from cold back toward hot.
func TestClassifyMonotonicInDays(t *testing.T) {
	rank := map[string]int{Hot: 2, Warm: 1, Cold: 0}
	prev := rank[Hot]
	for d := 0; d <= 120; d++ {
		got := Classify(3, 0, daysAgo(d), now)
		r := rank[got.InterestLevel]
		assert.LessOrEqual(t, r, prev, "day %d", d)
		prev = r
	}
}

func TestClassifyFutureTimestamp(t *testing.T) {
	got := Classify(1, 0, now.Add(48*time.Hour), now)
	assert.Equal(t, 0, got.DaysSinceContact)
	assert.Equal(t, Hot, got.InterestLevel)
}

func TestLastActivityFallbackChain(t *testing.T) {
	orderTS := daysAgo(1)
	quoteTS := daysAgo(5)
	profileTS := daysAgo(90)

	assert.Equal(t, orderTS, LastActivity(&orderTS, &quoteTS, &profileTS, now))
	assert.Equal(t, quoteTS, LastActivity(nil, &quoteTS, &profileTS, now))
	assert.Equal(t, profileTS, LastActivity(nil, nil, &profileTS, now))
	assert.Equal(t, now, LastActivity(nil, nil, nil, now))

	var zero time.Time
	assert.Equal(t, quoteTS, LastActivity(&zero, &quoteTS, nil, now))
}
