package assessment

import (
	"errors"
	"fmt"
)

// ErrUnknownCriterion is matched by every *UnknownCriterionError.
var ErrUnknownCriterion = errors.New("unknown criterion")

// UnknownCriterionError reports a category/criterion pair outside the rubric.
type UnknownCriterionError struct {
	Category  CategoryKey
	Criterion string
}

func (e *UnknownCriterionError) Error() string {
	return fmt.Sprintf("unknown criterion %q in category %q", e.Criterion, e.Category)
}

func (e *UnknownCriterionError) Is(target error) bool {
	return target == ErrUnknownCriterion
}
