package learnpath

import (
	"fmt"
	"strings"
)

// validatePaths performs all structural checks on the level paths.
// Returns a combined error describing all problems found, or nil if valid.
func validatePaths(paths []LevelPath) error {
	var errs []string

	known := make(map[Level]bool)
	for _, l := range AllLevels() {
		known[l] = true
	}

	seen := make(map[Level]bool, len(paths))
	for _, p := range paths {
		if !known[p.Level] {
			errs = append(errs, fmt.Sprintf("unknown level %q", p.Level))
		}
		if seen[p.Level] {
			errs = append(errs, fmt.Sprintf("duplicate level %q", p.Level))
		}
		seen[p.Level] = true

		if len(p.Modules) == 0 {
			errs = append(errs, fmt.Sprintf("level %q has no modules", p.Level))
		}
		moduleSeen := make(map[string]bool, len(p.Modules))
		for _, m := range p.Modules {
			if m.ID == "" {
				errs = append(errs, fmt.Sprintf("level %q has a module with an empty id", p.Level))
			}
			if moduleSeen[m.ID] {
				errs = append(errs, fmt.Sprintf("level %q: duplicate module id %q", p.Level, m.ID))
			}
			moduleSeen[m.ID] = true

			// A module without tasks would be vacuously complete.
			if len(m.Tasks) == 0 {
				errs = append(errs, fmt.Sprintf("module %s/%s has no tasks", p.Level, m.ID))
			}
			taskSeen := make(map[string]bool, len(m.Tasks))
			for _, t := range m.Tasks {
				if t.Key == "" {
					errs = append(errs, fmt.Sprintf("module %s/%s has a task with an empty key", p.Level, m.ID))
				}
				if taskSeen[t.Key] {
					errs = append(errs, fmt.Sprintf("module %s/%s: duplicate task key %q", p.Level, m.ID, t.Key))
				}
				taskSeen[t.Key] = true
			}
		}
	}

	for _, l := range AllLevels() {
		if !seen[l] {
			errs = append(errs, fmt.Sprintf("level %q is missing", l))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("learning path validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
