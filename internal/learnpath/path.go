package learnpath

import (
	"fmt"
	"slices"
	"strings"
)

// Level identifies a learning path.
type Level string

const (
	LevelBeginner Level = "beginner"
	LevelGrowing  Level = "growing"
	LevelStable   Level = "stable"
)

// AllLevels returns all levels in curriculum order.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelGrowing, LevelStable}
}

// ParseLevel accepts a level key in any case, e.g. "BEGINNER".
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(AllLevels(), l) {
		return l, nil
	}
	return "", &UnknownLevelError{Level: Level(s)}
}

// Task is one checklist item inside a module.
type Task struct {
	Key   string
	Label string
}

// Module is an ordered unit of a path. It unlocks once the module before
// it is complete.
type Module struct {
	ID    string
	Title string
	Tasks []Task
}

// HasTask reports whether key names one of the module's tasks.
func (m Module) HasTask(key string) bool {
	for _, t := range m.Tasks {
		if t.Key == key {
			return true
		}
	}
	return false
}

// LevelPath is the static curriculum for one level.
type LevelPath struct {
	Level   Level
	Title   string
	Goal    string
	Modules []Module
}

// ModuleIndex returns the position of a module in the unlock chain.
func (p LevelPath) ModuleIndex(id string) (int, bool) {
	for i, m := range p.Modules {
		if m.ID == id {
			return i, true
		}
	}
	return 0, false
}

// TotalTasks counts the tasks across all modules.
func (p LevelPath) TotalTasks() int {
	n := 0
	for _, m := range p.Modules {
		n += len(m.Tasks)
	}
	return n
}

func (p LevelPath) clone() LevelPath {
	out := p
	out.Modules = make([]Module, len(p.Modules))
	for i, m := range p.Modules {
		m.Tasks = slices.Clone(m.Tasks)
		out.Modules[i] = m
	}
	return out
}

// Catalog holds the immutable level paths.
type Catalog struct {
	paths map[Level]LevelPath
}

// NewCatalog validates the paths and builds a Catalog.
func NewCatalog(paths []LevelPath) (*Catalog, error) {
	if err := validatePaths(paths); err != nil {
		return nil, err
	}
	c := &Catalog{paths: make(map[Level]LevelPath, len(paths))}
	for _, p := range paths {
		c.paths[p.Level] = p.clone()
	}
	return c, nil
}

// Path returns the path for a level, failing with *UnknownLevelError.
func (c *Catalog) Path(level Level) (LevelPath, error) {
	p, ok := c.paths[level]
	if !ok {
		return LevelPath{}, &UnknownLevelError{Level: level}
	}
	return p.clone(), nil
}

// Levels returns the catalog's levels in curriculum order.
func (c *Catalog) Levels() []Level {
	var out []Level
	for _, l := range AllLevels() {
		if _, ok := c.paths[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d levels)", len(c.paths))
}
