package out

import "github.com/bnema/citybike/pkg/observable"

// Fetcher defines the contract for a fire-and-forget remote load.
// The result is published through the holder's value, never returned.
type Fetcher[T any] interface {
	Fetch(url string, defaultValue T)
}

// ChangeNotifier defines the contract for will-change subscriptions.
type ChangeNotifier[T any] interface {
	Subscribe(fn observable.WillChangeFunc[T]) (unsubscribe func())
}
