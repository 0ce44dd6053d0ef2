// Package datasource implements the DataSource boundary with a fixed mock
// value or a live binding to a value holder.
package datasource

import "github.com/bnema/citybike/internal/boundaries/out"

// Mock always returns the value it was built with.
type Mock[T any] struct {
	value T
}

// NewMock creates a data source returning value on every call.
func NewMock[T any](value T) *Mock[T] {
	return &Mock[T]{value: value}
}

// Get implements out.DataSource.
func (m *Mock[T]) Get() (T, bool) {
	return m.value, true
}

// Live reads through to a holder's current value.
type Live[T any] struct {
	holder out.ValueHolder[T]
}

// NewLive binds a data source to holder, typically a fetcher.
func NewLive[T any](holder out.ValueHolder[T]) *Live[T] {
	return &Live[T]{holder: holder}
}

// Get implements out.DataSource.
func (l *Live[T]) Get() (T, bool) {
	return l.holder.Value()
}

var (
	_ out.DataSource[struct{}] = (*Mock[struct{}])(nil)
	_ out.DataSource[struct{}] = (*Live[struct{}])(nil)
)
