package leads

import "time"

// Interest levels derived from quote activity recency and volume.
const (
	Hot  = "hot"
	Warm = "warm"
	Cold = "cold"
)

type Classification struct {
	InterestLevel    string `json:"interest_level"`
	FollowUpNeeded   bool   `json:"follow_up_needed"`
	DaysSinceContact int    `json:"days_since_contact"`
}

// Classify derives a coarse interest label for a buyer from their quote and
// order counts and the time of their last activity.
//
// Thresholds: contacted within 7 days with at least one quote is hot, within
// 30 days is warm, everything else is cold. Follow-up is flagged when a buyer
// has quoted but never ordered and has gone quiet for more than a week.
func Classify(quoteCount, orderCount int, lastActivity, now time.Time) Classification {
	days := daysBetween(lastActivity, now)

	level := Cold
	if quoteCount > 0 {
		switch {
		case days <= 7:
			level = Hot
		case days <= 30:
			level = Warm
		}
	}

	return Classification{
		InterestLevel:    level,
		FollowUpNeeded:   days > 7 && quoteCount > 0 && orderCount == 0,
		DaysSinceContact: days,
	}
}

// LastActivity picks the most relevant activity timestamp for a buyer,
// falling through order-update time, quote-creation time, and
// profile-creation time in that priority order. A buyer with no recorded
// activity at all gets the current time, so classification never sees a
// zero date.
func LastActivity(orderUpdated, quoteCreated, profileCreated *time.Time, now time.Time) time.Time {
	for _, ts := range []*time.Time{orderUpdated, quoteCreated, profileCreated} {
		if ts != nil && !ts.IsZero() {
			return *ts
		}
	}
	return now
}

// daysBetween returns the whole number of days from a to b, floored.
// Negative spans (clock skew, future timestamps) count as zero days.
func daysBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
