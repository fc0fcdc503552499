package quota

// Legal quota rates, in percent of the active workforce.
const (
	protectedRateLarge = 5 // more than largeWorkforce employees
	protectedRateSmall = 2
	apprenticeRate     = 5
	largeWorkforce     = 1000
)

// Thresholds are the organisation-wide minimum headcounts required by quota rules.
type Thresholds struct {
	ProtectedClass  int `json:"protected_class"`
	YoungApprentice int `json:"young_apprentice"`
}

// ComputeThresholds derives the quota minimums from the active headcount.
// Protected class: 5% above 1000 employees, 2% otherwise. Young apprentice: 5%.
// Both round up.
func ComputeThresholds(totalActive int) Thresholds {
	if totalActive <= 0 {
		return Thresholds{}
	}

	rate := protectedRateSmall
	if totalActive > largeWorkforce {
		rate = protectedRateLarge
	}

	return Thresholds{
		ProtectedClass:  ceilPercent(totalActive, rate),
		YoungApprentice: ceilPercent(totalActive, apprenticeRate),
	}
}

// ceilPercent returns ceil(n * pct / 100) in integer arithmetic.
func ceilPercent(n, pct int) int {
	return (n*pct + 99) / 100
}
