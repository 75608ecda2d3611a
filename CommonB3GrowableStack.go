package box3d

/// Slice backed stack. Reset keeps the storage so a warmed stack does not
/// allocate again.
type B3GrowableStack[T any] struct {
	items []T
}

func NewB3GrowableStack[T any](capacity int) *B3GrowableStack[T] {
	return &B3GrowableStack[T]{
		items: make([]T, 0, capacity),
	}
}

// Return the stack's length
func (s *B3GrowableStack[T]) GetCount() int {
	return len(s.items)
}

// Push a new element onto the stack
func (s *B3GrowableStack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Remove the top element from the stack and return it.
// Popping an empty stack returns the zero value.
func (s *B3GrowableStack[T]) Pop() (value T) {
	n := len(s.items)
	if n == 0 {
		return
	}
	value = s.items[n-1]
	s.items = s.items[:n-1]
	return
}

func (s *B3GrowableStack[T]) Reset() {
	s.items = s.items[:0]
}
