// Package signal provides the small synchronous observer primitives used to
// wire menus, items, actors and the menu manager together.
//
// Everything here is single-threaded: handlers run on the caller's goroutine
// inside Emit/Run, and emission may re-enter the same signal. A handler that is
// disconnected while an emission is in flight is not invoked for the rest of
// that emission.
package signal

// ID identifies a connected handler.
type ID uint64

type slot[F any] struct {
	id ID
	fn F
}

type slots[F any] struct {
	next ID
	list []*slot[F]
}

func (s *slots[F]) add(fn F) ID {
	s.next++
	s.list = append(s.list, &slot[F]{id: s.next, fn: fn})
	return s.next
}

func (s *slots[F]) remove(id ID) bool {
	for i, entry := range s.list {
		if entry.id == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return true
		}
	}
	return false
}

func (s *slots[F]) connected(id ID) bool {
	for _, entry := range s.list {
		if entry.id == id {
			return true
		}
	}
	return false
}

// snapshot copies the handler list so handlers may connect or disconnect
// during emission.
func (s *slots[F]) snapshot() []*slot[F] {
	if len(s.list) == 0 {
		return nil
	}
	dup := make([]*slot[F], len(s.list))
	copy(dup, s.list)
	return dup
}

// Signal broadcasts a value to every connected handler.
type Signal[T any] struct {
	slots slots[func(T)]
}

// Connect registers fn and returns its handler ID.
func (s *Signal[T]) Connect(fn func(T)) ID {
	return s.slots.add(fn)
}

// Disconnect removes a handler. It reports whether the handler was connected.
func (s *Signal[T]) Disconnect(id ID) bool {
	return s.slots.remove(id)
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.slots.list)
}

// Emit invokes the connected handlers in connection order.
func (s *Signal[T]) Emit(value T) {
	for _, entry := range s.slots.snapshot() {
		if !s.slots.connected(entry.id) {
			continue
		}
		entry.fn(value)
	}
}

// Hook is a handler chain whose handlers may consume the value. Run stops at
// the first handler returning true.
type Hook[T any] struct {
	slots slots[func(T) bool]
}

// Connect registers fn and returns its handler ID.
func (h *Hook[T]) Connect(fn func(T) bool) ID {
	return h.slots.add(fn)
}

// Disconnect removes a handler. It reports whether the handler was connected.
func (h *Hook[T]) Disconnect(id ID) bool {
	return h.slots.remove(id)
}

// Len returns the number of connected handlers.
func (h *Hook[T]) Len() int {
	return len(h.slots.list)
}

// Run offers value to each handler in order and reports whether one of them
// consumed it.
func (h *Hook[T]) Run(value T) bool {
	for _, entry := range h.slots.snapshot() {
		if !h.slots.connected(entry.id) {
			continue
		}
		if entry.fn(value) {
			return true
		}
	}
	return false
}
