// Package core defines the shared data model of a pipeline run: the
// append-only Conversation transcript and its Turns, the Handle capability
// through which agents are invoked, and the RunResult returned to callers.
//
// Design principles:
//   - A Conversation belongs to exactly one run; append is the only mutation
//   - Handles are opaque capabilities; the orchestrator never inspects how a
//     backend formats the transcript it receives
//   - Every terminal state is explicit and distinguishable via Reason
//
// Strategy state machines, pipeline resolution and backend construction live
// in their own packages to avoid cyclic dependencies.
package core
