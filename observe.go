package sketchpad

// ChangeKind distinguishes field writes from field deletes.
type ChangeKind uint8

const (
	ChangeSet    ChangeKind = iota // a field was written
	ChangeDelete                   // a field was removed
)

func (k ChangeKind) String() string {
	if k == ChangeDelete {
		return "delete"
	}
	return "set"
}

// Change describes one observed mutation of a tracked subject.
// NewValue is nil for ChangeDelete.
type Change[S any] struct {
	Subject  S
	Key      string
	OldValue any
	NewValue any
	Kind     ChangeKind
}

type listenerEntry[S any] struct {
	id uint32
	fn func(Change[S])
}

// Observer delivers changes to listeners synchronously, in registration order.
// The zero value is ready to use.
type Observer[S any] struct {
	listeners []listenerEntry[S]
	nextID    uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	remove func()
}

// Remove unregisters the listener. Safe to call more than once.
func (h ListenerHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// AddListener registers fn and returns a handle that removes it.
func (o *Observer[S]) AddListener(fn func(Change[S])) ListenerHandle {
	o.nextID++
	id := o.nextID
	o.listeners = append(o.listeners, listenerEntry[S]{id: id, fn: fn})
	return ListenerHandle{remove: func() { o.removeListener(id) }}
}

func (o *Observer[S]) removeListener(id uint32) {
	for i := range o.listeners {
		if o.listeners[i].id == id {
			// Copy-on-remove: a Notify in progress keeps iterating its own slice.
			next := make([]listenerEntry[S], 0, len(o.listeners)-1)
			next = append(next, o.listeners[:i]...)
			next = append(next, o.listeners[i+1:]...)
			o.listeners = next
			return
		}
	}
}

// Len returns the number of registered listeners.
func (o *Observer[S]) Len() int {
	return len(o.listeners)
}

// Notify calls every listener registered at the time of the call. Listeners
// may mutate other observed subjects; the nested changes are delivered before
// Notify returns.
func (o *Observer[S]) Notify(c Change[S]) {
	listeners := o.listeners
	for _, l := range listeners {
		l.fn(c)
	}
}

// Record is a map-backed tracked record. Every Set and Delete is reported to
// its observer; reads are silent.
type Record struct {
	fields   map[string]any
	observer *Observer[*Record]
}

// Observe wraps fields in a tracked Record. The map is copied.
func Observe(fields map[string]any) (*Record, *Observer[*Record]) {
	r := &Record{
		fields:   make(map[string]any, len(fields)),
		observer: &Observer[*Record]{},
	}
	for k, v := range fields {
		r.fields[k] = v
	}
	return r, r.observer
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Set writes key and emits a ChangeSet.
func (r *Record) Set(key string, value any) {
	old := r.fields[key]
	r.fields[key] = value
	r.observer.Notify(Change[*Record]{
		Subject: r, Key: key, OldValue: old, NewValue: value, Kind: ChangeSet,
	})
}

// Delete removes key and emits a ChangeDelete. Deleting an absent key still
// emits, with a nil OldValue.
func (r *Record) Delete(key string) {
	old := r.fields[key]
	delete(r.fields, key)
	r.observer.Notify(Change[*Record]{
		Subject: r, Key: key, OldValue: old, Kind: ChangeDelete,
	})
}

// Len returns the number of fields currently stored.
func (r *Record) Len() int {
	return len(r.fields)
}
