package assessment

import (
	"fmt"
	"slices"
)

// CategoryKey identifies one of the five competency categories.
type CategoryKey string

const (
	CategoryKnowledge  CategoryKey = "knowledge"
	CategorySystem     CategoryKey = "system"
	CategoryRisk       CategoryKey = "risk"
	CategoryPsychology CategoryKey = "psychology"
	CategoryExecution  CategoryKey = "execution"
)

// AllCategories returns all category keys in display order.
func AllCategories() []CategoryKey {
	return []CategoryKey{
		CategoryKnowledge,
		CategorySystem,
		CategoryRisk,
		CategoryPsychology,
		CategoryExecution,
	}
}

// Criterion is a single weighted yes/no question.
type Criterion struct {
	Key    string
	Label  string
	Points int
}

// Category groups criteria under one competency.
type Category struct {
	Key      CategoryKey
	Title    string
	Criteria []Criterion
}

// MaxPoints is the sum of the category's criterion points.
func (c Category) MaxPoints() int {
	total := 0
	for _, cr := range c.Criteria {
		total += cr.Points
	}
	return total
}

// Rubric is the immutable scoring configuration: categories in display
// order plus the level bands classifying the total.
type Rubric struct {
	categories []Category
	byKey      map[CategoryKey]int
	criteria   map[CategoryKey]map[string]int
	bands      []Band
	maxPoints  int
}

// NewRubric validates the configuration and builds a Rubric.
func NewRubric(categories []Category, bands []Band) (*Rubric, error) {
	if err := validateRubric(categories, bands); err != nil {
		return nil, err
	}

	r := &Rubric{
		categories: make([]Category, len(categories)),
		byKey:      make(map[CategoryKey]int, len(categories)),
		criteria:   make(map[CategoryKey]map[string]int, len(categories)),
		bands:      slices.Clone(bands),
	}
	for i, c := range categories {
		c.Criteria = slices.Clone(c.Criteria)
		r.categories[i] = c
		r.byKey[c.Key] = i
		idx := make(map[string]int, len(c.Criteria))
		for j, cr := range c.Criteria {
			idx[cr.Key] = j
		}
		r.criteria[c.Key] = idx
		r.maxPoints += c.MaxPoints()
	}
	return r, nil
}

// Categories returns all categories in display order.
func (r *Rubric) Categories() []Category {
	out := make([]Category, len(r.categories))
	for i, c := range r.categories {
		c.Criteria = slices.Clone(c.Criteria)
		out[i] = c
	}
	return out
}

// Category returns a category by key.
func (r *Rubric) Category(key CategoryKey) (Category, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Category{}, false
	}
	c := r.categories[i]
	c.Criteria = slices.Clone(c.Criteria)
	return c, true
}

// Criterion looks up a criterion, failing with *UnknownCriterionError.
func (r *Rubric) Criterion(category CategoryKey, key string) (Criterion, error) {
	ci, ok := r.byKey[category]
	if !ok {
		return Criterion{}, &UnknownCriterionError{Category: category, Criterion: key}
	}
	j, ok := r.criteria[category][key]
	if !ok {
		return Criterion{}, &UnknownCriterionError{Category: category, Criterion: key}
	}
	return r.categories[ci].Criteria[j], nil
}

// MaxPoints is the highest reachable total score.
func (r *Rubric) MaxPoints() int {
	return r.maxPoints
}

// Bands returns the level bands in ascending order.
func (r *Rubric) Bands() []Band {
	return slices.Clone(r.bands)
}

// BandFor returns the first band whose inclusive range contains total.
// Totals outside the configured range clamp to the nearest band.
func (r *Rubric) BandFor(total int) Band {
	for _, b := range r.bands {
		if b.Contains(total) {
			return b
		}
	}
	if total < r.bands[0].Min {
		return r.bands[0]
	}
	return r.bands[len(r.bands)-1]
}

func (r *Rubric) String() string {
	return fmt.Sprintf("rubric(%d categories, %d points, %d bands)", len(r.categories), r.maxPoints, len(r.bands))
}
