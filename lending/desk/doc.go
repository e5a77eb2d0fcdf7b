// Package desk is the circulation desk: one entry point that turns engine-style calls into commands
// against a journal and answers with the engine's ActionResult.
//
// Every call appends at most one event. The state in the returned ActionResult is projected from the
// journal afterwards, so it always equals what threading the engine directly would have produced.
package desk
