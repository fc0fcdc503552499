package quota

// Category identifies one of the quota reports.
type Category string

// Report categories.
const (
	CategoryHeadcount       Category = "headcount"
	CategoryProtectedClass  Category = "protected_class"
	CategoryYoungApprentice Category = "young_apprentice"
)

// ReportRow compares the goal of one area against its actual count.
type ReportRow struct {
	Area   string `json:"area"`
	Target int    `json:"target"`
	Actual int    `json:"actual"`
	Gap    int    `json:"gap"` // missing hires, never negative
}

// Report holds one table per category, in area order.
type Report map[Category][]ReportRow

// BuildReport turns an aggregation result into report tables. The headcount
// table lists every area; the protected-class and young-apprentice tables only
// list areas that have a goal or at least one counted employee.
func BuildReport(r Result) Report {
	report := Report{
		CategoryHeadcount:       make([]ReportRow, 0, len(r.Areas)),
		CategoryProtectedClass:  []ReportRow{},
		CategoryYoungApprentice: []ReportRow{},
	}

	for _, area := range r.Areas {
		s, ok := r.Stats[area]
		if !ok {
			continue
		}

		report[CategoryHeadcount] = append(report[CategoryHeadcount],
			newRow(area, s.Target.HeadcountGoal(), s.Headcount))

		if goal := s.Target.ProtectedClassGoal(); goal > 0 || s.ProtectedClass > 0 {
			report[CategoryProtectedClass] = append(report[CategoryProtectedClass],
				newRow(area, goal, s.ProtectedClass))
		}
		if goal := s.Target.YoungApprenticeGoal(); goal > 0 || s.YoungApprentice > 0 {
			report[CategoryYoungApprentice] = append(report[CategoryYoungApprentice],
				newRow(area, goal, s.YoungApprentice))
		}
	}

	return report
}

func newRow(area string, target, actual int) ReportRow {
	return ReportRow{
		Area:   area,
		Target: target,
		Actual: actual,
		Gap:    max(0, target-actual),
	}
}
