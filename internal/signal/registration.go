package signal

// Registration bundles the connections made on behalf of one owner so they can
// be torn down together.
type Registration struct {
	disconnects []func()
	disposed    bool
}

// Add records an arbitrary disconnect function. Adding to a disposed
// registration runs fn immediately.
func (r *Registration) Add(fn func()) {
	if fn == nil {
		return
	}
	if r.disposed {
		fn()
		return
	}
	r.disconnects = append(r.disconnects, fn)
}

// Len returns the number of live connections held.
func (r *Registration) Len() int {
	return len(r.disconnects)
}

// Disposed reports whether Dispose has run.
func (r *Registration) Disposed() bool {
	return r.disposed
}

// Dispose disconnects everything in reverse connection order. Subsequent calls
// are no-ops.
func (r *Registration) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	list := r.disconnects
	r.disconnects = nil
	for i := len(list) - 1; i >= 0; i-- {
		list[i]()
	}
}

// On connects fn to s and records the connection in r.
func On[T any](r *Registration, s *Signal[T], fn func(T)) ID {
	id := s.Connect(fn)
	r.Add(func() { s.Disconnect(id) })
	return id
}

// OnHook connects fn to h and records the connection in r.
func OnHook[T any](r *Registration, h *Hook[T], fn func(T) bool) ID {
	id := h.Connect(fn)
	r.Add(func() { h.Disconnect(id) })
	return id
}
