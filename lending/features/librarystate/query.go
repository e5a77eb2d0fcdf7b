package librarystate

const (
	queryType      = "LibraryState"
	projectionType = "LibraryState"
)

// Query asks for the current state of the whole library.
type Query struct{}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return projectionType
}

func BuildQuery() Query {
	return Query{}
}
