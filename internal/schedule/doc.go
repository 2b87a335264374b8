// Package schedule answers the questions a batch orchestrator asks before it
// runs a set of phases: a dependency-respecting order, whether the declared
// graph is cyclic, which phases can run side by side, and which phases would
// touch the same files.
//
// Every function is a pure computation over the phase slice it receives. A
// fresh graph is built per call and discarded afterwards, so the functions are
// safe to call concurrently on independent batches.
//
// The algorithms are tolerant: a dependency on an undeclared phase is treated
// as already satisfied, and cyclic phases drop out of orderings instead of
// causing an error. ValidateDependencies is the one place that turns those
// situations into reported errors.
package schedule
