package editor

// ViewRoot owns the click listeners of the displayed document.
// At most one scope is live: attaching a new document first
// releases every listener of the previous one.
type ViewRoot struct {
	listeners map[int]func()
	scope     uint64 // incremented on every Attach
	released  bool
}

// NewViewRoot returns an empty view root.
func NewViewRoot() *ViewRoot {
	return &ViewRoot{listeners: make(map[int]func()), released: true}
}

// Attach registers onClick for the shapes 0..n-1, releasing the
// listeners of the previous scope beforehand. The returned func
// releases this scope; it is a no-op once a newer scope is attached.
func (v *ViewRoot) Attach(n int, onClick func(index int)) (release func()) {
	v.Release()
	v.scope++
	v.released = false
	for i := 0; i < n; i++ {
		v.listeners[i] = func() { onClick(i) }
	}
	scope := v.scope
	return func() {
		if v.scope == scope {
			v.Release()
		}
	}
}

// Release drops every listener of the live scope.
func (v *ViewRoot) Release() {
	if v.released {
		return
	}
	clear(v.listeners)
	v.released = true
}

// Dispatch delivers a click to shape index, and reports whether a
// listener was bound to it.
func (v *ViewRoot) Dispatch(index int) bool {
	l, ok := v.listeners[index]
	if !ok {
		return false
	}
	l()
	return true
}

// ListenerCount returns the number of bound listeners.
func (v *ViewRoot) ListenerCount() int { return len(v.listeners) }
