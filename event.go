package timewheel

// CallableEvent is an Event Variant that binds a Node to a free-standing,
// nullary callback: execute() just invokes it. It adds no state to the
// scheduling contract beyond the callback itself.
type CallableEvent struct {
	Node
	fn func()
}

// NewCallableEvent creates an inactive event that will run fn when it
// fires. Call Schedule or ScheduleInRange on the returned event to arm it.
func NewCallableEvent(fn func()) *CallableEvent {
	return &CallableEvent{fn: fn}
}

func (e *CallableEvent) execute() { e.fn() }

// MethodEvent is an Event Variant that binds a Node to a specific method of
// a user type T, fixed at construction. The wheel calls method(target) when
// the event fires; no indirect dispatch table beyond the Node's own
// back-references is needed.
type MethodEvent[T any] struct {
	Node
	target *T
	method func(*T)
}

// NewMethodEvent creates an inactive event that will call method(target)
// when it fires.
func NewMethodEvent[T any](target *T, method func(*T)) *MethodEvent[T] {
	return &MethodEvent[T]{target: target, method: method}
}

func (e *MethodEvent[T]) execute() { e.method(e.target) }
