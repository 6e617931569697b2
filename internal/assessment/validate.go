package assessment

import (
	"fmt"
	"strings"
)

// validateRubric performs all structural checks on a rubric configuration.
// Returns a combined error describing all problems found, or nil if valid.
func validateRubric(categories []Category, bands []Band) error {
	var errs []string

	known := make(map[CategoryKey]bool)
	for _, k := range AllCategories() {
		known[k] = true
	}

	seen := make(map[CategoryKey]bool, len(categories))
	maxPoints := 0
	for _, c := range categories {
		if !known[c.Key] {
			errs = append(errs, fmt.Sprintf("unknown category key %q", c.Key))
		}
		if seen[c.Key] {
			errs = append(errs, fmt.Sprintf("duplicate category key %q", c.Key))
		}
		seen[c.Key] = true

		if len(c.Criteria) == 0 {
			errs = append(errs, fmt.Sprintf("category %q has no criteria", c.Key))
		}
		critSeen := make(map[string]bool, len(c.Criteria))
		for _, cr := range c.Criteria {
			if cr.Key == "" {
				errs = append(errs, fmt.Sprintf("category %q has a criterion with an empty key", c.Key))
			}
			if critSeen[cr.Key] {
				errs = append(errs, fmt.Sprintf("category %q: duplicate criterion key %q", c.Key, cr.Key))
			}
			critSeen[cr.Key] = true
			if cr.Points <= 0 {
				errs = append(errs, fmt.Sprintf("criterion %s/%s: points must be > 0, got %d", c.Key, cr.Key, cr.Points))
			}
			maxPoints += cr.Points
		}
	}

	for _, k := range AllCategories() {
		if !seen[k] {
			errs = append(errs, fmt.Sprintf("category %q is missing", k))
		}
	}

	// Bands must be ascending, contiguous, non-overlapping and cover [0, maxPoints].
	if len(bands) == 0 {
		errs = append(errs, "no level bands defined")
	} else {
		if bands[0].Min != 0 {
			errs = append(errs, fmt.Sprintf("first band %q must start at 0, got %d", bands[0].Key, bands[0].Min))
		}
		bandSeen := make(map[BandKey]bool, len(bands))
		for i, b := range bands {
			if bandSeen[b.Key] {
				errs = append(errs, fmt.Sprintf("duplicate band key %q", b.Key))
			}
			bandSeen[b.Key] = true
			if b.Min > b.Max {
				errs = append(errs, fmt.Sprintf("band %q: min %d > max %d", b.Key, b.Min, b.Max))
			}
			if i > 0 && b.Min != bands[i-1].Max+1 {
				errs = append(errs, fmt.Sprintf("band %q must start at %d, got %d", b.Key, bands[i-1].Max+1, b.Min))
			}
		}
		if last := bands[len(bands)-1]; last.Max != maxPoints {
			errs = append(errs, fmt.Sprintf("last band %q must end at %d, got %d", last.Key, maxPoints, last.Max))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("rubric validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
