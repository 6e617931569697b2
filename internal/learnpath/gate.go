package learnpath

import "strconv"

// isComplete reports whether every task of m is done.
func isComplete(m Module, lp LevelProgress) bool {
	for _, t := range m.Tasks {
		if !lp.Done(m.ID, t.Key) {
			return false
		}
	}
	return true
}

// IsModuleComplete reports whether every task of the module is done.
func IsModuleComplete(p LevelPath, lp LevelProgress, moduleID string) (bool, error) {
	idx, ok := p.ModuleIndex(moduleID)
	if !ok {
		return false, &UnknownModuleError{Level: p.Level, Module: moduleID}
	}
	return isComplete(p.Modules[idx], lp), nil
}

// IsModuleUnlocked reports whether the module at index is open. Module 0
// is always open; module i opens once modules 0..i-1 are all complete.
func IsModuleUnlocked(p LevelPath, lp LevelProgress, index int) (bool, error) {
	if index < 0 || index >= len(p.Modules) {
		return false, &UnknownModuleError{Level: p.Level, Module: indexName(index)}
	}
	return blockerBefore(p, lp, index) < 0, nil
}

// blockerBefore returns the index of the first incomplete module before
// index, or -1 when there is none.
func blockerBefore(p LevelPath, lp LevelProgress, index int) int {
	for i := 0; i < index; i++ {
		if !isComplete(p.Modules[i], lp) {
			return i
		}
	}
	return -1
}

// ModuleStates derives every module's state in path order.
func ModuleStates(p LevelPath, lp LevelProgress) []ModuleState {
	states := make([]ModuleState, len(p.Modules))
	open := true
	for i, m := range p.Modules {
		switch {
		case !open:
			states[i] = StateLocked
		case isComplete(m, lp):
			states[i] = StateComplete
		default:
			states[i] = StateInProgress
			open = false
		}
	}
	return states
}

// Frontier is the first module that is unlocked but not complete, or the
// explicit all-complete case.
type Frontier struct {
	AllComplete bool
	Index       int // -1 when AllComplete
	Module      Module
}

// FrontierOf finds the unlock frontier of a path.
func FrontierOf(p LevelPath, lp LevelProgress) Frontier {
	for i, m := range p.Modules {
		if !isComplete(m, lp) {
			return Frontier{Index: i, Module: m}
		}
	}
	return Frontier{AllComplete: true, Index: -1}
}

// Summary aggregates a level's progress.
type Summary struct {
	Level            Level
	TotalTasks       int
	DoneTasks        int
	Percent          int // floor(DoneTasks / TotalTasks * 100)
	TotalModules     int
	CompletedModules int
	Current          Frontier
}

// CurrentModuleTitle returns the frontier module's title and true, or
// "" and false when every module is complete.
func (s Summary) CurrentModuleTitle() (string, bool) {
	if s.Current.AllComplete {
		return "", false
	}
	return s.Current.Module.Title, true
}

// Summarize computes the summary for a level.
func Summarize(p LevelPath, lp LevelProgress) Summary {
	s := Summary{
		Level:        p.Level,
		TotalModules: len(p.Modules),
		Current:      FrontierOf(p, lp),
	}
	for _, m := range p.Modules {
		done := 0
		for _, t := range m.Tasks {
			if lp.Done(m.ID, t.Key) {
				done++
			}
		}
		s.TotalTasks += len(m.Tasks)
		s.DoneTasks += done
		if done == len(m.Tasks) {
			s.CompletedModules++
		}
	}
	if s.TotalTasks > 0 {
		s.Percent = s.DoneTasks * 100 / s.TotalTasks
	}
	return s
}

// TaskStatus is the outcome of a task toggle.
type TaskStatus int

const (
	TaskApplied        TaskStatus = iota // State updated
	TaskRejectedLocked                   // Module locked; nothing changed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskApplied:
		return "applied"
	case TaskRejectedLocked:
		return "rejected-locked"
	default:
		return "unknown"
	}
}

// TaskResult describes what a task toggle did.
type TaskResult struct {
	Status   TaskStatus
	Level    Level
	ModuleID string
	TaskKey  string
	Value    bool

	// BlockedBy is the first incomplete module before the target when the
	// toggle was rejected.
	BlockedBy *Module

	// Transitions lists module state changes caused by the toggle.
	Transitions []ModuleTransition

	// Progress is the level's progress after the call.
	Progress LevelProgress
}

// Applied reports whether the toggle changed state.
func (r TaskResult) Applied() bool { return r.Status == TaskApplied }

// ApplyTask validates and applies one task toggle. A locked module yields
// a TaskRejectedLocked result and unchanged progress; unknown modules or
// tasks yield an error.
func ApplyTask(p LevelPath, lp LevelProgress, moduleID, taskKey string, value bool) (TaskResult, error) {
	idx, ok := p.ModuleIndex(moduleID)
	if !ok {
		return TaskResult{}, &UnknownModuleError{Level: p.Level, Module: moduleID}
	}

	res := TaskResult{
		Level:    p.Level,
		ModuleID: moduleID,
		TaskKey:  taskKey,
		Value:    value,
	}

	if b := blockerBefore(p, lp, idx); b >= 0 {
		blocker := p.Modules[b]
		res.Status = TaskRejectedLocked
		res.BlockedBy = &blocker
		res.Progress = lp.Clone()
		return res, nil
	}

	if !p.Modules[idx].HasTask(taskKey) {
		return TaskResult{}, &UnknownTaskError{Level: p.Level, Module: moduleID, Task: taskKey}
	}

	before := ModuleStates(p, lp)
	next := lp.with(moduleID, taskKey, value)
	after := ModuleStates(p, next)

	for i := range p.Modules {
		if before[i] != after[i] {
			res.Transitions = append(res.Transitions, ModuleTransition{
				ModuleID: p.Modules[i].ID,
				Title:    p.Modules[i].Title,
				From:     before[i],
				To:       after[i],
			})
		}
	}

	res.Status = TaskApplied
	res.Progress = next
	return res, nil
}

func indexName(i int) string {
	return "#" + strconv.Itoa(i)
}
