// Package placement seeds the learning path level from the assessment.
package placement

import (
	"context"
	"fmt"

	"github.com/abhisek/tradepath/internal/assessment"
	"github.com/abhisek/tradepath/internal/learnpath"
)

// ScoreSource exposes the learner's latest assessment.
type ScoreSource interface {
	HasAnswers() bool
	Scoreboard() assessment.Scoreboard
}

// LevelSelector switches the active learning path level.
type LevelSelector interface {
	SelectLevel(ctx context.Context, level learnpath.Level) error
}

// bandLevels maps the four assessment bands onto the three learning
// levels. The two lowest bands share the beginner path and the two
// highest share the stable path, so a score of 66 already lands on
// stable. LevelGrowing is never picked here; it is reached only through
// an explicit SelectLevel.
var bandLevels = map[assessment.BandKey]learnpath.Level{
	assessment.BandNew:          learnpath.LevelBeginner,
	assessment.BandDeveloping:   learnpath.LevelBeginner,
	assessment.BandStable:       learnpath.LevelStable,
	assessment.BandProfessional: learnpath.LevelStable,
}

// LevelForBand returns the learning level a band places into.
func LevelForBand(band assessment.BandKey) (learnpath.Level, bool) {
	l, ok := bandLevels[band]
	return l, ok
}

// Status is the outcome of an auto-select.
type Status int

const (
	SelectionApplied Status = iota // Level selected from the score
	NoAssessmentData               // Nothing recorded; selection untouched
)

func (s Status) String() string {
	switch s {
	case SelectionApplied:
		return "applied"
	case NoAssessmentData:
		return "no-assessment-data"
	default:
		return "unknown"
	}
}

// Selection describes what AutoSelect did.
type Selection struct {
	Status Status
	Total  int
	Band   assessment.Band
	Level  learnpath.Level
}

// AutoSelect maps the current assessment total to a learning level and
// selects it. With no recorded answers it returns NoAssessmentData and
// leaves the selection alone. Only a failed selection write is an error.
func AutoSelect(ctx context.Context, scores ScoreSource, selector LevelSelector) (Selection, error) {
	if !scores.HasAnswers() {
		return Selection{Status: NoAssessmentData}, nil
	}

	sb := scores.Scoreboard()
	level, ok := LevelForBand(sb.Band.Key)
	if !ok {
		return Selection{}, fmt.Errorf("no learning level for band %q", sb.Band.Key)
	}

	if err := selector.SelectLevel(ctx, level); err != nil {
		return Selection{}, fmt.Errorf("select level %s: %w", level, err)
	}
	return Selection{
		Status: SelectionApplied,
		Total:  sb.Total,
		Band:   sb.Band,
		Level:  level,
	}, nil
}
