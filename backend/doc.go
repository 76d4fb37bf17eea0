// Package backend constructs core.Handle implementations from agent specs.
//
// A Registry maps backend kinds ("openai", "anthropic", ...) to Factory
// functions: an interface table selected at roster-construction time, not
// runtime reflection. Credentials and other process-wide configuration are
// resolved by the caller and passed into factories explicitly; nothing in
// this package reads the environment.
//
// ModelHandle is the standard handle implementation: it renders the
// transcript view into provider-agnostic chat messages and drives a model
// through a tool-calling loop bounded by the agent's max_turns.
package backend
