package mp

// registry keeps the single live handler per key plus the set of keys already
// wired to the engine. Replacing a handler never touches the wiring, so the
// engine ends up with exactly one subscription per key and player.
type registry[K comparable] struct {
	handlers map[K]Handler
	wired    map[K]bool
}

func newRegistry[K comparable]() *registry[K] {
	return &registry[K]{
		handlers: make(map[K]Handler),
		wired:    make(map[K]bool),
	}
}

// set stores h for k and reports whether k has not been wired yet. The caller
// wires it when true.
func (r *registry[K]) set(k K, h Handler) bool {
	if h == nil {
		h = func(int) {}
	}
	r.handlers[k] = h
	if r.wired[k] {
		return false
	}
	r.wired[k] = true
	return true
}

// dispatch looks the handler up at call time, so a replacement is seen by
// every trampoline wired before it.
func (r *registry[K]) dispatch(k K, player int) {
	if h := r.handlers[k]; h != nil {
		h(player)
	}
}

func (r *registry[K]) has(k K) bool { return r.wired[k] }

func (r *registry[K]) len() int { return len(r.wired) }
