// Package returncopy brings one copy of a title back to the shelf. A return never fails;
// late returns are fined per day and the outcome code carries the number of late days.
package returncopy
