// Package engine turns a validated pipeline definition into an executed run.
//
// The engine owns the boundary between configuration and orchestration: it
// resolves agent names against a roster, constructs handles through the
// backend registry, picks the strategy the pipeline asks for and shapes the
// strategy outcome into a core.RunResult. All configuration problems surface
// as a *ConfigError before any agent is invoked; once a run starts, failures
// are terminal reasons on the result, never Go errors.
//
// An Engine is stateless between runs and safe for concurrent use.
package engine
