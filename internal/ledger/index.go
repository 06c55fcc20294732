package ledger

import "sync"

// None is the Index value when nothing is being dragged.
const None = -1

// Index is an observable integer, used for the zero-based index of the
// marker currently being dragged.
type Index struct {
	mu        sync.RWMutex
	value     int
	observers []func(int)
}

// NewIndex creates an index set to None.
func NewIndex() *Index {
	return &Index{value: None}
}

// Get returns the current value.
func (x *Index) Get() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.value
}

// Set changes the value and notifies observers if it changed.
func (x *Index) Set(v int) {
	x.mu.Lock()
	if x.value == v {
		x.mu.Unlock()
		return
	}
	x.value = v
	observers := x.observers
	x.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

// Reset sets the value back to None.
func (x *Index) Reset() {
	x.Set(None)
}

// Subscribe registers fn for every subsequent change.
func (x *Index) Subscribe(fn func(int)) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.observers = append(x.observers, fn)
}
