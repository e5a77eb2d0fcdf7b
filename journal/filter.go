package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects events from the Journal.
//
// An event matches when ANY of the filter's items matches. An item matches when the event type is
// one of its event types (or it has none) AND its predicates match (any or all of them, or it has none).
// A Filter without items matches every event.
type Filter struct {
	items []FilterItem
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// MatchesAnyEvent reports whether the filter selects every event.
func (f Filter) MatchesAnyEvent() bool {
	return len(f.items) == 0
}

// Matches evaluates the filter against one event.
func (f Filter) Matches(event StorableEvent) bool {
	if f.MatchesAnyEvent() {
		return true
	}

	for _, item := range f.items {
		if item.matches(event) {
			return true
		}
	}

	return false
}

// Hash returns a stable fingerprint of the filter, used to key snapshots.
// Builders sanitize their input, so equivalent filters hash equally.
func (f Filter) Hash() string {
	var sb strings.Builder

	for _, item := range f.items {
		sb.WriteString("item{types:")
		sb.WriteString(strings.Join(item.eventTypes, ","))
		sb.WriteString(";all:")
		if item.allPredicatesMustMatch {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
		sb.WriteString(";predicates:")
		for _, p := range item.predicates {
			sb.WriteString(p.key + "=" + p.val + ",")
		}
		sb.WriteString("}")
	}

	sum := sha256.Sum256([]byte(sb.String()))

	return hex.EncodeToString(sum[:])
}

/***** FilterItem *****/

type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) matches(event StorableEvent) bool {
	if len(fi.eventTypes) > 0 && !slices.Contains(fi.eventTypes, event.EventType) {
		return false
	}

	if len(fi.predicates) == 0 {
		return true
	}

	for _, predicate := range fi.predicates {
		matched := predicate.matches(event)

		if fi.allPredicatesMustMatch && !matched {
			return false
		}

		if !fi.allPredicatesMustMatch && matched {
			return true
		}
	}

	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate compares a top-level payload field with a value; numbers and booleans are
// compared in their JSON text form, e.g. P("MemberClass", "2").
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

func (fp FilterPredicate) matches(event StorableEvent) bool {
	val, ok := event.payloadField(fp.key)

	return ok && val == fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter. It only allows combinations that are useful for event-sourced workflows:
//
//   - empty filter (MatchingAnyEvent)
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) / (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR predicate...))
//   - ((eventType OR eventType...) AND (predicate AND predicate...))
//   - several of the above joined with OrMatching
type FilterBuilder struct {
	filter Filter
}

// FilterItemBuilder builds the current FilterItem of a FilterBuilder.
type FilterItemBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return FilterBuilder{}
}

// Matching starts a new FilterItem.
func (fb FilterBuilder) Matching() FilterItemBuilder {
	return FilterItemBuilder{filter: fb.filter}
}

// MatchingAnyEvent directly creates an empty Filter.
func (fb FilterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

// AnyEventTypeOf adds event types to the current FilterItem, ANY of them must match.
//
// It sanitizes the input:
//   - removing empty EventTypes ("")
//   - sorting the EventTypes
//   - removing duplicate EventTypes
func (ib FilterItemBuilder) AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilder {
	all := append(slices.Clone(ib.current.eventTypes), eventType)
	all = append(all, eventTypes...)
	all = slices.DeleteFunc(all, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(all)

	ib.current.eventTypes = slices.Clip(slices.Compact(all))

	return ib
}

// AndAnyEventTypeOf is AnyEventTypeOf for use after predicates were added.
func (ib FilterItemBuilder) AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilder {
	return ib.AnyEventTypeOf(eventType, eventTypes...)
}

// AnyPredicateOf adds predicates to the current FilterItem, ANY of them must match.
//
// It sanitizes the input:
//   - removing empty/partial FilterPredicate(s) (key or val is "")
//   - sorting the FilterPredicate(s)
//   - removing duplicate FilterPredicate(s)
func (ib FilterItemBuilder) AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder {
	ib.current.predicates = sanitizePredicates(ib.current.predicates, predicate, predicates...)

	return ib
}

// AndAnyPredicateOf is AnyPredicateOf for use after event types were added.
func (ib FilterItemBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder {
	return ib.AnyPredicateOf(predicate, predicates...)
}

// AllPredicatesOf adds predicates to the current FilterItem, ALL of them must match.
func (ib FilterItemBuilder) AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder {
	ib.current.allPredicatesMustMatch = true
	ib.current.predicates = sanitizePredicates(ib.current.predicates, predicate, predicates...)

	return ib
}

// AndAllPredicatesOf is AllPredicatesOf for use after event types were added.
func (ib FilterItemBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder {
	return ib.AllPredicatesOf(predicate, predicates...)
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (ib FilterItemBuilder) OrMatching() FilterItemBuilder {
	return FilterItemBuilder{filter: ib.finalized()}
}

// Finalize returns the Filter. Items without event types and predicates are dropped,
// so a builder that never got any criteria finalizes into a filter matching every event.
func (ib FilterItemBuilder) Finalize() Filter {
	return ib.finalized()
}

func (ib FilterItemBuilder) finalized() Filter {
	items := slices.Clone(ib.filter.items)
	if len(ib.current.eventTypes) > 0 || len(ib.current.predicates) > 0 {
		items = append(items, ib.current)
	}

	return Filter{items: items}
}

func sanitizePredicates(existing []FilterPredicate, predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	all := append(slices.Clone(existing), predicate)
	all = append(all, predicates...)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(all, func(a, b FilterPredicate) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}

		return strings.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(all))
}
