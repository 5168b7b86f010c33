package env

import "fmt"

// BuildError reports a Builder configuration rejected at build time: an
// unimplemented death strategy, a missing generator, or conflicting
// objective selection.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string { return e.Message }

func newBuildError(format string, args ...any) *BuildError {
	return &BuildError{Message: fmt.Sprintf(format, args...)}
}
