package learnpath

import (
	"fmt"

	"github.com/abhisek/tradepath/internal/curriculum"
)

var defaultCatalog *Catalog

func init() {
	c, err := catalogFromCurriculum()
	if err != nil {
		panic(fmt.Sprintf("learnpath: %v", err))
	}
	defaultCatalog = c
}

// DefaultCatalog returns the built-in beginner, growing and stable paths.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func catalogFromCurriculum() (*Catalog, error) {
	file, err := curriculum.Paths()
	if err != nil {
		return nil, fmt.Errorf("load paths: %w", err)
	}

	paths := make([]LevelPath, 0, len(file.Levels))
	for _, ld := range file.Levels {
		p := LevelPath{Level: Level(ld.Level), Title: ld.Title, Goal: ld.Goal}
		for _, md := range ld.Modules {
			m := Module{ID: md.ID, Title: md.Title}
			for _, td := range md.Tasks {
				m.Tasks = append(m.Tasks, Task{Key: td.Key, Label: td.Label})
			}
			p.Modules = append(p.Modules, m)
		}
		paths = append(paths, p)
	}
	return NewCatalog(paths)
}
