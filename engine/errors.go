package engine

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel all configuration failures match via errors.Is.
var ErrConfig = errors.New("pipeline configuration")

// ConfigError reports a pipeline definition that cannot be executed: an
// unknown agent, an unresolvable backend, an invalid strategy. It is always
// returned before any agent invocation happens.
type ConfigError struct {
	Pipeline string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pipeline %q: %s", e.Pipeline, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports a match for the ErrConfig sentinel.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErr(pipeline string, format string, args ...any) *ConfigError {
	return &ConfigError{Pipeline: pipeline, Err: fmt.Errorf(format, args...)}
}
