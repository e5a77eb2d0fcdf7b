// Package core holds the domain events of the lending shell and the pure functions around them:
// the decision result of a command and the projection that folds events back into a
// circulation.LibraryState.
//
// Nothing in here performs I/O. The feature packages query the journal, hand the history to these
// functions and append what they decide.
package core
