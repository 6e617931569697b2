package learnpath

import (
	"encoding/json"
	"fmt"
	"maps"
)

// LevelProgress maps module id → task key → done for one level.
type LevelProgress map[string]map[string]bool

// Done reports whether a task is marked done.
func (lp LevelProgress) Done(moduleID, taskKey string) bool {
	return lp[moduleID][taskKey]
}

// Clone returns a deep copy.
func (lp LevelProgress) Clone() LevelProgress {
	out := make(LevelProgress, len(lp))
	for id, tasks := range lp {
		out[id] = maps.Clone(tasks)
	}
	return out
}

func (lp LevelProgress) with(moduleID, taskKey string, value bool) LevelProgress {
	out := lp.Clone()
	if out[moduleID] == nil {
		out[moduleID] = make(map[string]bool)
	}
	out[moduleID][taskKey] = value
	return out
}

// Progress holds every level's progress. Levels are independent: a learner
// may have partial progress in several at once.
type Progress map[Level]LevelProgress

// Level returns the progress for one level, never nil.
func (p Progress) Level(level Level) LevelProgress {
	if lp, ok := p[level]; ok {
		return lp
	}
	return LevelProgress{}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for l, lp := range p {
		out[l] = lp.Clone()
	}
	return out
}

// Unrecognized holds persisted subtrees outside the catalog, such as
// levels, modules or tasks written by a newer build. They never affect
// gating and are written back unchanged on save.
type Unrecognized struct {
	levels  map[string]json.RawMessage
	modules map[Level]map[string]json.RawMessage
	tasks   map[Level]map[string]map[string]json.RawMessage
}

// Empty reports whether nothing unrecognized was seen.
func (u Unrecognized) Empty() bool {
	return len(u.levels) == 0 && len(u.modules) == 0 && len(u.tasks) == 0
}

// WithoutLevel returns a copy with everything under a known level removed.
func (u Unrecognized) WithoutLevel(level Level) Unrecognized {
	out := Unrecognized{levels: u.levels}
	if len(u.modules) > 0 {
		out.modules = maps.Clone(u.modules)
		delete(out.modules, level)
	}
	if len(u.tasks) > 0 {
		out.tasks = maps.Clone(u.tasks)
		delete(out.tasks, level)
	}
	return out
}

func (u *Unrecognized) addLevel(key string, raw json.RawMessage) {
	if u.levels == nil {
		u.levels = make(map[string]json.RawMessage)
	}
	u.levels[key] = raw
}

func (u *Unrecognized) addModule(level Level, id string, raw json.RawMessage) {
	if u.modules == nil {
		u.modules = make(map[Level]map[string]json.RawMessage)
	}
	if u.modules[level] == nil {
		u.modules[level] = make(map[string]json.RawMessage)
	}
	u.modules[level][id] = raw
}

func (u *Unrecognized) addTask(level Level, moduleID, key string, raw json.RawMessage) {
	if u.tasks == nil {
		u.tasks = make(map[Level]map[string]map[string]json.RawMessage)
	}
	if u.tasks[level] == nil {
		u.tasks[level] = make(map[string]map[string]json.RawMessage)
	}
	if u.tasks[level][moduleID] == nil {
		u.tasks[level][moduleID] = make(map[string]json.RawMessage)
	}
	u.tasks[level][moduleID][key] = raw
}

// EncodeProgress serializes progress as level → module → task → bool.
func EncodeProgress(p Progress) ([]byte, error) {
	return EncodeProgressWith(p, Unrecognized{})
}

// EncodeProgressWith serializes progress merged with the unrecognized
// subtrees of an earlier load. Known progress wins on a key clash.
func EncodeProgressWith(p Progress, u Unrecognized) ([]byte, error) {
	if u.Empty() {
		if p == nil {
			p = Progress{}
		}
		return json.Marshal(p)
	}

	out := make(map[string]json.RawMessage, len(p)+len(u.levels))
	for k, raw := range u.levels {
		out[k] = raw
	}

	levels := make(map[Level]bool)
	for l := range p {
		levels[l] = true
	}
	for l := range u.modules {
		levels[l] = true
	}
	for l := range u.tasks {
		levels[l] = true
	}

	for l := range levels {
		mods := make(map[string]json.RawMessage)
		for id, raw := range u.modules[l] {
			mods[id] = raw
		}

		ids := make(map[string]bool)
		for id := range p[l] {
			ids[id] = true
		}
		for id := range u.tasks[l] {
			ids[id] = true
		}
		for id := range ids {
			tasks := make(map[string]json.RawMessage)
			for k, raw := range u.tasks[l][id] {
				tasks[k] = raw
			}
			for k, v := range p[l][id] {
				if v {
					tasks[k] = json.RawMessage("true")
				} else {
					tasks[k] = json.RawMessage("false")
				}
			}
			b, err := json.Marshal(tasks)
			if err != nil {
				return nil, err
			}
			mods[id] = b
		}

		b, err := json.Marshal(mods)
		if err != nil {
			return nil, err
		}
		out[string(l)] = b
	}
	return json.Marshal(out)
}

// DecodeProgress parses a persisted blob leniently against the catalog.
// Unknown levels, modules and tasks and non-boolean values are ignored.
// A blob that is not a JSON object yields empty progress plus an error
// describing why; callers treat that error as a warning.
func DecodeProgress(blob []byte, c *Catalog) (Progress, error) {
	p, _, err := DecodeProgressWith(blob, c)
	return p, err
}

// DecodeProgressWith is DecodeProgress that also returns the subtrees the
// catalog does not know, so a later save can keep them.
func DecodeProgressWith(blob []byte, c *Catalog) (Progress, Unrecognized, error) {
	out := Progress{}
	var extra Unrecognized
	if len(blob) == 0 {
		return out, extra, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(blob, &top); err != nil {
		return Progress{}, Unrecognized{}, fmt.Errorf("malformed progress blob: %w", err)
	}

	for levelKey, rawLevel := range top {
		path, err := c.Path(Level(levelKey))
		if err != nil {
			extra.addLevel(levelKey, rawLevel)
			continue
		}
		var modules map[string]json.RawMessage
		if err := json.Unmarshal(rawLevel, &modules); err != nil {
			continue
		}
		lp := LevelProgress{}
		for moduleID, rawModule := range modules {
			idx, ok := path.ModuleIndex(moduleID)
			if !ok {
				extra.addModule(path.Level, moduleID, rawModule)
				continue
			}
			var tasks map[string]json.RawMessage
			if err := json.Unmarshal(rawModule, &tasks); err != nil {
				continue
			}
			for taskKey, rawValue := range tasks {
				if !path.Modules[idx].HasTask(taskKey) {
					extra.addTask(path.Level, moduleID, taskKey, rawValue)
					continue
				}
				var done bool
				if err := json.Unmarshal(rawValue, &done); err != nil {
					continue
				}
				if lp[moduleID] == nil {
					lp[moduleID] = make(map[string]bool)
				}
				lp[moduleID][taskKey] = done
			}
		}
		if len(lp) > 0 {
			out[path.Level] = lp
		}
	}
	return out, extra, nil
}
