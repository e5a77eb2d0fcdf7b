// Package scenario drives a Library through a scripted sequence of actions and reports the results.
//
// A Library is either the engine threaded directly (EngineLibrary) or the event-sourced desk;
// both must produce the same Trace for the same Script.
package scenario
