package panzoom

// listener is one registered notification callback.
type listener struct {
	id uint32
	fn func(Transform)
}

// registry holds the subscribers for every EventType. Slices are indexed by
// EventType; the set of event names is closed. Observers are the widget's
// and hosts' own subscribers; Off never touches them.
type registry struct {
	listeners [numEventTypes][]listener
	observers [numEventTypes][]listener
	nextID    uint32
}

// Subscription allows removing a registered callback.
type Subscription struct {
	id       uint32
	reg      *registry
	event    EventType
	observer bool
}

// Remove unregisters the callback so it no longer fires. Removing twice, or
// removing after the widget was destroyed, is a no-op.
func (s Subscription) Remove() {
	if s.reg == nil || s.event >= numEventTypes {
		return
	}
	if s.observer {
		s.reg.observers[s.event] = removeListener(s.reg.observers[s.event], s.id)
		return
	}
	s.reg.listeners[s.event] = removeListener(s.reg.listeners[s.event], s.id)
}

func removeListener(s []listener, id uint32) []listener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *registry) add(event EventType, fn func(Transform), observer bool) Subscription {
	if event >= numEventTypes || fn == nil {
		return Subscription{}
	}
	r.nextID++
	id := r.nextID
	l := listener{id: id, fn: fn}
	if observer {
		r.observers[event] = append(r.observers[event], l)
	} else {
		r.listeners[event] = append(r.listeners[event], l)
	}
	return Subscription{id: id, reg: r, event: event, observer: observer}
}

// count returns the number of user subscribers for event.
func (r *registry) count(event EventType) int {
	if event >= numEventTypes {
		return 0
	}
	return len(r.listeners[event])
}

// observed returns the number of observers for event.
func (r *registry) observed(event EventType) int {
	if event >= numEventTypes {
		return 0
	}
	return len(r.observers[event])
}

func (r *registry) clear(event EventType) {
	if event < numEventTypes {
		r.listeners[event] = nil
	}
}

func (r *registry) clearAll() {
	for i := range r.listeners {
		r.listeners[i] = nil
		r.observers[i] = nil
	}
}

// emit calls every observer, then every subscriber of event with t. A
// panicking subscriber is logged and skipped; the rest still run. The lists
// are snapshotted so callbacks may subscribe or unsubscribe while being
// notified.
func (r *registry) emit(event EventType, t Transform) {
	if event >= numEventTypes {
		return
	}
	n := len(r.observers[event]) + len(r.listeners[event])
	if n == 0 {
		return
	}
	snapshot := make([]listener, 0, n)
	snapshot = append(snapshot, r.observers[event]...)
	snapshot = append(snapshot, r.listeners[event]...)
	for _, l := range snapshot {
		callListener(event, l.fn, t)
	}
}

func callListener(event EventType, fn func(Transform), t Transform) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Error("panzoom: listener panicked", "event", event.String(), "panic", rec)
		}
	}()
	fn(t)
}

// On registers fn to be called with the resulting transform whenever event
// fires. It returns a Subscription for removal. Registering on a destroyed
// widget returns an inert Subscription.
func (w *Widget) On(event EventType, fn func(Transform)) Subscription {
	if w.destroyed {
		return Subscription{}
	}
	return w.events.add(event, fn, false)
}

// Observe registers fn like On, but Off does not remove it. Features and
// hosts use it for their own displays (the zoom badge) so a page calling Off
// cannot silence them. Destroy drops observers too.
func (w *Widget) Observe(event EventType, fn func(Transform)) Subscription {
	if w.destroyed {
		return Subscription{}
	}
	return w.events.add(event, fn, true)
}

// Off removes every subscriber registered with On for event.
func (w *Widget) Off(event EventType) {
	w.events.clear(event)
}

func (w *Widget) emit(event EventType) {
	if w.destroyed {
		return
	}
	w.events.emit(event, w.state)
}
