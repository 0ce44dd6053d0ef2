package out

// DataSource defines the contract for reading the most recent value of T.
// Get reports false while nothing is available yet.
type DataSource[T any] interface {
	Get() (T, bool)
}

// ValueHolder is anything that keeps a last known value, such as a fetcher.
type ValueHolder[T any] interface {
	Value() (T, bool)
}
