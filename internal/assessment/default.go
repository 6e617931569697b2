package assessment

import (
	"fmt"

	"github.com/abhisek/tradepath/internal/curriculum"
)

// defaultRubric is built once from the embedded curriculum.
var defaultRubric *Rubric

func init() {
	r, err := rubricFromCurriculum()
	if err != nil {
		panic(fmt.Sprintf("assessment: %v", err))
	}
	defaultRubric = r
}

// DefaultRubric returns the reference rubric: five categories of five
// four-point criteria, banded over 0–100.
func DefaultRubric() *Rubric {
	return defaultRubric
}

func rubricFromCurriculum() (*Rubric, error) {
	file, err := curriculum.Rubric()
	if err != nil {
		return nil, fmt.Errorf("load rubric: %w", err)
	}

	categories := make([]Category, 0, len(file.Categories))
	for _, cd := range file.Categories {
		c := Category{Key: CategoryKey(cd.Key), Title: cd.Title}
		for _, crd := range cd.Criteria {
			c.Criteria = append(c.Criteria, Criterion{Key: crd.Key, Label: crd.Label, Points: crd.Points})
		}
		categories = append(categories, c)
	}

	bands := make([]Band, 0, len(file.Bands))
	for _, bd := range file.Bands {
		bands = append(bands, Band{
			Key:      BandKey(bd.Key),
			Name:     bd.Name,
			Min:      bd.Min,
			Max:      bd.Max,
			Guidance: bd.Guidance,
		})
	}

	return NewRubric(categories, bands)
}
