package learnpath

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLevel  = errors.New("unknown level")
	ErrUnknownModule = errors.New("unknown module")
	ErrUnknownTask   = errors.New("unknown task")
)

// UnknownLevelError reports a level outside the catalog.
type UnknownLevelError struct {
	Level Level
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("unknown level %q", e.Level)
}

func (e *UnknownLevelError) Is(target error) bool { return target == ErrUnknownLevel }

// UnknownModuleError reports a module id or index outside a level's path.
type UnknownModuleError struct {
	Level  Level
	Module string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q in level %q", e.Module, e.Level)
}

func (e *UnknownModuleError) Is(target error) bool { return target == ErrUnknownModule }

// UnknownTaskError reports a task key outside a module.
type UnknownTaskError struct {
	Level  Level
	Module string
	Task   string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task %q in module %q of level %q", e.Task, e.Module, e.Level)
}

func (e *UnknownTaskError) Is(target error) bool { return target == ErrUnknownTask }
