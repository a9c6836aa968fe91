package component

// Updater receives state changes from a mounted instance. The reconciler
// binds one to every instance it mounts.
type Updater interface {
	// EnqueueSetState stages update on top of the pending state and
	// schedules a re-render. A nil update result means no change.
	EnqueueSetState(update func(prev State, props Props) State, callbacks []func())

	// EnqueueForceUpdate schedules a re-render that skips ShouldComponentUpdate.
	EnqueueForceUpdate(callbacks []func())
}

// Base carries the user-visible fields every instance has. Class
// components embed it.
type Base struct {
	Props   Props
	State   State
	Context any

	updater Updater
}

// Core implements Instance.
func (b *Base) Core() *Base { return b }

// Bind attaches the updater. Called by the reconciler on mount.
func (b *Base) Bind(u Updater) { b.updater = u }

// Updater returns the bound updater, or nil before mount.
func (b *Base) Updater() Updater { return b.updater }

// SetState merges update into the next state and schedules a re-render.
// Before mount it writes State directly. Callbacks run after the re-render
// is committed.
func (b *Base) SetState(update State, callbacks ...func()) {
	b.SetStateFunc(func(State, Props) State { return update }, callbacks...)
}

// SetStateFunc is SetState with an update computed from the pending state.
func (b *Base) SetStateFunc(fn func(prev State, props Props) State, callbacks ...func()) {
	if b.updater == nil {
		if b.State == nil {
			b.State = State{}
		}
		if update := fn(b.State, b.Props); update != nil {
			b.State.Merge(update)
		}
		return
	}
	b.updater.EnqueueSetState(fn, callbacks)
}

// ForceUpdate schedules a re-render that bypasses ShouldComponentUpdate.
func (b *Base) ForceUpdate(callbacks ...func()) {
	if b.updater == nil {
		return
	}
	b.updater.EnqueueForceUpdate(callbacks)
}
