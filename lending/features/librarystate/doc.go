// Package librarystate projects the complete library state from the journal.
//
// The projection is cached as a journal snapshot. A query loads the snapshot, replays only the
// events appended after it and saves the result as the new snapshot. Any snapshot problem falls
// back to a full replay, so a broken snapshot costs time but never correctness.
package librarystate
