package assessment

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Answers maps category → criterion → answer. An absent pair reads as
// false. Only keys present in the rubric are ever stored.
type Answers map[CategoryKey]map[string]bool

// Get returns the recorded answer, false when unanswered.
func (a Answers) Get(category CategoryKey, criterion string) bool {
	return a[category][criterion]
}

// Empty reports whether no answer at all has been recorded.
func (a Answers) Empty() bool {
	for _, crits := range a {
		if len(crits) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, crits := range a {
		out[k] = maps.Clone(crits)
	}
	return out
}

// with returns a copy with one answer set.
func (a Answers) with(category CategoryKey, criterion string, value bool) Answers {
	out := a.Clone()
	if out[category] == nil {
		out[category] = make(map[string]bool)
	}
	out[category][criterion] = value
	return out
}

// Unrecognized holds persisted subtrees outside the rubric, such as
// categories or criteria written by a newer build. They are never scored
// and are written back unchanged on save.
type Unrecognized struct {
	categories map[string]json.RawMessage
	criteria   map[CategoryKey]map[string]json.RawMessage
}

// Empty reports whether nothing unrecognized was seen.
func (u Unrecognized) Empty() bool {
	return len(u.categories) == 0 && len(u.criteria) == 0
}

func (u *Unrecognized) addCategory(key string, raw json.RawMessage) {
	if u.categories == nil {
		u.categories = make(map[string]json.RawMessage)
	}
	u.categories[key] = raw
}

func (u *Unrecognized) addCriterion(cat CategoryKey, key string, raw json.RawMessage) {
	if u.criteria == nil {
		u.criteria = make(map[CategoryKey]map[string]json.RawMessage)
	}
	if u.criteria[cat] == nil {
		u.criteria[cat] = make(map[string]json.RawMessage)
	}
	u.criteria[cat][key] = raw
}

// EncodeAnswers serializes answers as a JSON object
// category → criterion → bool.
func EncodeAnswers(a Answers) ([]byte, error) {
	return EncodeAnswersWith(a, Unrecognized{})
}

// EncodeAnswersWith serializes answers merged with the unrecognized
// subtrees of an earlier load. Known answers win on a key clash.
func EncodeAnswersWith(a Answers, u Unrecognized) ([]byte, error) {
	if u.Empty() {
		if a == nil {
			a = Answers{}
		}
		return json.Marshal(a)
	}

	out := make(map[string]json.RawMessage, len(a)+len(u.categories))
	for k, raw := range u.categories {
		out[k] = raw
	}

	cats := make(map[CategoryKey]bool, len(a)+len(u.criteria))
	for c := range a {
		cats[c] = true
	}
	for c := range u.criteria {
		cats[c] = true
	}
	for c := range cats {
		crits := make(map[string]json.RawMessage, len(a[c])+len(u.criteria[c]))
		for k, raw := range u.criteria[c] {
			crits[k] = raw
		}
		for k, v := range a[c] {
			crits[k] = boolJSON(v)
		}
		b, err := json.Marshal(crits)
		if err != nil {
			return nil, err
		}
		out[string(c)] = b
	}
	return json.Marshal(out)
}

func boolJSON(v bool) json.RawMessage {
	if v {
		return json.RawMessage("true")
	}
	return json.RawMessage("false")
}

// DecodeAnswers parses a persisted blob leniently against the rubric.
// A nil blob is an empty state. Unknown categories or criteria and
// non-boolean values are ignored. A blob that is not a JSON object yields
// an empty state together with an error describing why; callers treat
// that error as a warning.
func DecodeAnswers(blob []byte, r *Rubric) (Answers, error) {
	a, _, err := DecodeAnswersWith(blob, r)
	return a, err
}

// DecodeAnswersWith is DecodeAnswers that also returns the subtrees the
// rubric does not know, so a later save can keep them.
func DecodeAnswersWith(blob []byte, r *Rubric) (Answers, Unrecognized, error) {
	out := Answers{}
	var extra Unrecognized
	if len(blob) == 0 {
		return out, extra, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(blob, &top); err != nil {
		return Answers{}, Unrecognized{}, fmt.Errorf("malformed assessment blob: %w", err)
	}

	for catKey, raw := range top {
		cat := CategoryKey(catKey)
		if _, ok := r.Category(cat); !ok {
			extra.addCategory(catKey, raw)
			continue
		}
		var crits map[string]json.RawMessage
		if err := json.Unmarshal(raw, &crits); err != nil {
			continue
		}
		for critKey, v := range crits {
			if _, err := r.Criterion(cat, critKey); err != nil {
				extra.addCriterion(cat, critKey, v)
				continue
			}
			var b bool
			if err := json.Unmarshal(v, &b); err != nil {
				continue
			}
			if out[cat] == nil {
				out[cat] = make(map[string]bool)
			}
			out[cat][critKey] = b
		}
	}
	return out, extra, nil
}
