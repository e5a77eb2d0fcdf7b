// Package report renders library states and action results.
//
// The text format is a stable contract: every field is a label line followed by a value line.
// A state lists the day, then the available copies per title, then the loans per member class,
// then the fines per member class, titles and classes in ascending id order. An action lists
// action_ok and action_code.
//
// The JSON format writes one object per line with the same fields in the same order.
package report
