// Package payfine settles outstanding fines of a member class.
package payfine
