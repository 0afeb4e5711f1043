package status

import "math"

// Order lifecycle statuses. The taxonomy is a lookup table only: transitions
// are asserted by whichever writer (supplier, admin) updates the order row,
// not enforced here.
const (
	Pending        = "pending"
	Confirmed      = "confirmed"
	FabricSourcing = "fabric_sourcing"
	Cutting        = "cutting"
	Sewing         = "sewing"
	InProduction   = "in_production"
	QualityCheck   = "quality_check"
	Packaging      = "packaging"
	Shipped        = "shipped"
	Completed      = "completed"
	Cancelled      = "cancelled"
	Rejected       = "rejected"
)

// Quote statuses
const (
	QuoteDraft     = "draft"
	QuotePending   = "pending"
	QuoteConverted = "converted"
)

// Production stage statuses
const (
	StagePending    = "pending"
	StageInProgress = "in_progress"
	StageCompleted  = "completed"
)

// Default pair returned for any status outside the taxonomy. Unknown values
// are treated as "still being processed" rather than surfacing an error, so
// a bad row never breaks a dashboard.
const (
	DefaultPercent = 10
	DefaultLabel   = "Processing"
)

type Info struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

var taxonomy = map[string]Info{
	Pending:        {10, "Order Received"},
	Confirmed:      {20, "Order Confirmed"},
	FabricSourcing: {25, "Fabric Sourcing"},
	Cutting:        {35, "Cutting"},
	Sewing:         {50, "Sewing"},
	InProduction:   {50, "In Production"},
	QualityCheck:   {70, "Quality Check"},
	Packaging:      {85, "Packaging"},
	Shipped:        {95, "Shipped"},
	Completed:      {100, "Completed"},
	Cancelled:      {0, "Cancelled"},
	Rejected:       {0, "Rejected"},
}

// Progress maps a lifecycle status to its fixed progress percentage and
// display label. Unrecognized statuses map to the default pair; this never
// returns an error.
func Progress(s string) Info {
	if info, ok := taxonomy[s]; ok {
		return info
	}
	return Info{DefaultPercent, DefaultLabel}
}

// Valid reports whether s is one of the enumerated lifecycle statuses.
func Valid(s string) bool {
	_, ok := taxonomy[s]
	return ok
}

// Terminal reports whether s is a final status. Orders are never deleted,
// only terminal-stated.
func Terminal(s string) bool {
	return s == Completed || s == Cancelled || s == Rejected
}

// OverallProgress computes the overall completion of an order as the
// unweighted arithmetic mean of its stage percentages, rounded to the
// nearest integer. Every stage counts equally regardless of stage number or
// expected duration. Returns 0 for an empty collection.
func OverallProgress(percentages []int) int {
	if len(percentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(percentages))))
}

// ClampPercent bounds a completion percentage to [0, 100].
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
