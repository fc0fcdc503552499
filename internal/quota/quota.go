// Package quota reconciles active headcount against per-area targets.
//
// Aggregate groups active roster records by their repaired area and joins them
// with the targets table. Every area that appears on either side is reported:
// targets without staff get zero counts and staff without a target get the
// empty target sentinel.
package quota

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/normalize"
)

// Defaults for Options.
const (
	DefaultProtectedFlag    = "YES"
	DefaultApprenticeMarker = "JOVEM APRENDIZ"
)

// Options controls how a record is counted toward each quota.
type Options struct {
	// ProtectedFlag is the exact, case-sensitive value of the protected-class column
	// that marks a record as counting toward the protected-class quota.
	ProtectedFlag string
	// ApprenticeMarker is the substring of the current title that marks a
	// young-apprentice program participant.
	ApprenticeMarker string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		ProtectedFlag:    DefaultProtectedFlag,
		ApprenticeMarker: DefaultApprenticeMarker,
	}
}

// Result is the output of Aggregate.
type Result struct {
	Stats       map[string]*domain.AreaStat `json:"stats"`
	TotalActive int                         `json:"total_active"`
	Areas       []string                    `json:"areas"` // sorted, one per key of Stats

	// Skipped counts records whose area had no entry in Stats. With the union
	// built from the same records this stays zero; it is reported rather than
	// treated as fatal.
	Skipped int `json:"-"`
}

// Aggregate counts active records per area and attaches the matching target.
// Areas of records and targets are repaired with normalize.Text before grouping.
// Records with an empty area count toward TotalActive but toward no area.
func Aggregate(active []domain.Employee, targets []domain.AreaTarget, opts Options) Result {
	targetsByArea := make(map[string]domain.AreaTarget, len(targets))
	for _, t := range targets {
		area := normalize.Text(t.Area)
		if area == "" {
			continue
		}
		t.Area = area
		targetsByArea[area] = t
	}

	recordAreas := make([]string, len(active))
	seen := make(map[string]struct{}, len(targetsByArea))
	areas := make([]string, 0, len(targetsByArea))
	for i := range active {
		area := normalize.Text(active[i].Area)
		recordAreas[i] = area
		if area == "" {
			continue
		}
		if _, ok := seen[area]; !ok {
			seen[area] = struct{}{}
			areas = append(areas, area)
		}
	}
	for area := range targetsByArea {
		if _, ok := seen[area]; !ok {
			seen[area] = struct{}{}
			areas = append(areas, area)
		}
	}

	SortAreas(areas)

	stats := make(map[string]*domain.AreaStat, len(areas))
	for _, area := range areas {
		target, ok := targetsByArea[area]
		if !ok {
			target = domain.AreaTarget{Area: area}
		}
		stats[area] = &domain.AreaStat{Area: area, Target: target}
	}

	skipped := 0
	for i := range active {
		stat, ok := stats[recordAreas[i]]
		if !ok {
			if recordAreas[i] != "" {
				skipped++
			}
			continue
		}
		stat.Headcount++
		if active[i].ProtectedClass == opts.ProtectedFlag {
			stat.ProtectedClass++
		}
		if opts.ApprenticeMarker != "" && strings.Contains(active[i].CurrentTitle, opts.ApprenticeMarker) {
			stat.YoungApprentice++
		}
	}

	return Result{
		Stats:       stats,
		TotalActive: len(active),
		Areas:       areas,
		Skipped:     skipped,
	}
}

// SortAreas orders area names for display using Brazilian Portuguese collation,
// so accented names sort next to their unaccented neighbours.
func SortAreas(areas []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(areas)
}
