package learnpath

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/tradepath/internal/logger"
	"github.com/abhisek/tradepath/internal/store"
)

// Options configures a Service.
type Options struct {
	Catalog *Catalog
	KV      store.KV
	Journal store.JournalRepo
	Logger  *logger.Logger
	Profile string
}

// Service owns per-level task progress and the active level selection.
type Service struct {
	catalog *Catalog
	kv      store.KV
	journal store.JournalRepo
	log     *logger.Logger
	profile string

	progress Progress
	extra    Unrecognized
	active   Level
}

// NewService creates a progression service, loading persisted progress and
// the active level. Unreadable state falls back to empty progress and the
// beginner level.
func NewService(ctx context.Context, opts Options) *Service {
	s := &Service{
		catalog: opts.Catalog,
		kv:      opts.KV,
		journal: opts.Journal,
		log:     logger.OrNop(opts.Logger).With("component", "learnpath"),
		profile: opts.Profile,
		active:  LevelBeginner,
	}
	if s.catalog == nil {
		s.catalog = DefaultCatalog()
	}
	if s.kv == nil {
		s.kv = store.NewMemory()
	}
	s.progress, s.extra = s.loadProgress(ctx)
	s.active = s.loadLevel(ctx)
	return s
}

func (s *Service) loadProgress(ctx context.Context) (Progress, Unrecognized) {
	blob, err := s.kv.Load(ctx, store.KeyLearningProgress)
	if err != nil {
		s.log.Warn("read progress failed, starting empty", "error", err)
		return Progress{}, Unrecognized{}
	}
	p, extra, err := DecodeProgressWith(blob, s.catalog)
	if err != nil {
		s.log.Warn("discarding malformed progress", "error", err)
	}
	if !extra.Empty() {
		s.log.Debug("keeping unrecognized progress keys")
	}
	return p, extra
}

func (s *Service) loadLevel(ctx context.Context) Level {
	blob, err := s.kv.Load(ctx, store.KeyLearningLevel)
	if err != nil {
		s.log.Warn("read active level failed, using beginner", "error", err)
		return LevelBeginner
	}
	if blob == nil {
		return LevelBeginner
	}
	var raw string
	if err := json.Unmarshal(blob, &raw); err != nil {
		s.log.Warn("discarding malformed active level", "error", err)
		return LevelBeginner
	}
	level, err := ParseLevel(raw)
	if err != nil {
		s.log.Warn("discarding unknown active level", "level", raw)
		return LevelBeginner
	}
	if _, err := s.catalog.Path(level); err != nil {
		return LevelBeginner
	}
	return level
}

// Catalog returns the catalog the service gates against.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// LevelPath returns the static path of a level.
func (s *Service) LevelPath(level Level) (LevelPath, error) {
	return s.catalog.Path(level)
}

// Progress returns a copy of one level's task progress.
func (s *Service) Progress(level Level) (LevelProgress, error) {
	if _, err := s.catalog.Path(level); err != nil {
		return nil, err
	}
	return s.progress.Level(level).Clone(), nil
}

// IsModuleUnlocked reports whether the module at index may be worked on.
func (s *Service) IsModuleUnlocked(level Level, index int) (bool, error) {
	p, err := s.catalog.Path(level)
	if err != nil {
		return false, err
	}
	return IsModuleUnlocked(p, s.progress.Level(level), index)
}

// IsModuleComplete reports whether every task of a module is done.
func (s *Service) IsModuleComplete(level Level, moduleID string) (bool, error) {
	p, err := s.catalog.Path(level)
	if err != nil {
		return false, err
	}
	return IsModuleComplete(p, s.progress.Level(level), moduleID)
}

// ModuleStates derives the state of every module of a level.
func (s *Service) ModuleStates(level Level) ([]ModuleState, error) {
	p, err := s.catalog.Path(level)
	if err != nil {
		return nil, err
	}
	return ModuleStates(p, s.progress.Level(level)), nil
}

// SetTask toggles one task. Writes to a locked module are rejected with a
// TaskRejectedLocked result and leave state and storage untouched.
func (s *Service) SetTask(ctx context.Context, level Level, moduleID, taskKey string, value bool) (TaskResult, error) {
	p, err := s.catalog.Path(level)
	if err != nil {
		return TaskResult{}, err
	}

	res, err := ApplyTask(p, s.progress.Level(level), moduleID, taskKey, value)
	if err != nil {
		return TaskResult{}, err
	}
	if !res.Applied() {
		s.log.Info("task rejected, module locked",
			"level", level, "module", moduleID, "task", taskKey, "blocked_by", res.BlockedBy.ID)
		return res, nil
	}

	next := s.progress.Clone()
	next[level] = res.Progress
	if err := s.saveProgress(ctx, next, s.extra); err != nil {
		return TaskResult{}, err
	}
	s.progress = next

	s.log.Debug("task set", "level", level, "module", moduleID, "task", taskKey, "value", value)
	s.record(ctx, store.KindTaskSet, string(level)+"/"+moduleID+"/"+taskKey, strconv.FormatBool(value))
	res.Progress = res.Progress.Clone()
	return res, nil
}

// Summary aggregates a level's progress.
func (s *Service) Summary(level Level) (Summary, error) {
	p, err := s.catalog.Path(level)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(p, s.progress.Level(level)), nil
}

// ActiveLevel returns the level currently selected for the learner.
func (s *Service) ActiveLevel() Level {
	return s.active
}

// SelectLevel changes the active level. Progress of every level is kept.
func (s *Service) SelectLevel(ctx context.Context, level Level) error {
	if _, err := s.catalog.Path(level); err != nil {
		return err
	}
	blob, err := json.Marshal(string(level))
	if err != nil {
		return fmt.Errorf("encode active level: %w", err)
	}
	if err := s.kv.Save(ctx, store.KeyLearningLevel, blob); err != nil {
		return fmt.Errorf("persist active level: %w", err)
	}
	s.active = level

	s.log.Debug("level selected", "level", level)
	s.record(ctx, store.KindLevelSelected, string(level), "")
	return nil
}

// ResetLevel clears all task progress of one level, including
// unrecognized modules and tasks stored under it. Other levels are kept.
func (s *Service) ResetLevel(ctx context.Context, level Level) error {
	if _, err := s.catalog.Path(level); err != nil {
		return err
	}
	next := s.progress.Clone()
	delete(next, level)
	extra := s.extra.WithoutLevel(level)
	if err := s.saveProgress(ctx, next, extra); err != nil {
		return err
	}
	s.progress = next
	s.extra = extra

	s.log.Debug("level reset", "level", level)
	s.record(ctx, store.KindLevelReset, string(level), "")
	return nil
}

func (s *Service) saveProgress(ctx context.Context, p Progress, extra Unrecognized) error {
	blob, err := EncodeProgressWith(p, extra)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Save(ctx, store.KeyLearningProgress, blob); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, kind, subject, value string) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.Append(ctx, store.JournalEntry{
		Profile: s.profile,
		Kind:    kind,
		Subject: subject,
		Value:   value,
	})
	if err != nil {
		s.log.Warn("journal append failed", "kind", kind, "error", err)
	}
}
