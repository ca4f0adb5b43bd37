package bridge

// ---------------------------------------------------------------------------
// Environment accessor and exception translator
// ---------------------------------------------------------------------------

// ExceptionSink receives the throwable after the translator clears it, so
// the sink may issue foreign calls of its own. The reference is transient
// and released by the translator after the sink returns; sinks that need
// the throwable beyond the callback must promote it themselves. The foreign
// exception is never forwarded to the native caller by the bridge itself.
//
// A sink can be invoked while a class resolution is in flight, so it must
// not resolve classes through the bridge; operate on the throwable through
// wrapped handles only.
type ExceptionSink func(env *Env, throwable LocalRef)

// Env is a thread-scoped capability for talking to the foreign runtime.
// Obtain one from Bridge.Env on the goroutine that will use it and do not
// share it across goroutines; pending-exception state is per thread in the
// foreign runtime.
type Env struct {
	rt     Runtime
	bridge *Bridge
}

// Env returns a capability bound to the calling thread.
func (b *Bridge) Env() *Env {
	return &Env{rt: b.rt, bridge: b}
}

// Runtime exposes the raw capability set. Callers issuing foreign calls
// directly are responsible for exception hygiene.
func (e *Env) Runtime() Runtime { return e.rt }

// CheckAndClearExceptions returns true iff a foreign exception was pending
// and unconditionally clears it. Every component issuing a foreign call
// must call this afterwards: no two consecutive foreign calls may occur on
// a thread with an exception left pending.
func (e *Env) CheckAndClearExceptions() bool {
	if !e.rt.ExceptionCheck() {
		return false
	}
	e.bridge.mu.Lock()
	sink := e.bridge.sink
	e.bridge.mu.Unlock()
	if sink == nil {
		e.rt.ExceptionClear()
		return true
	}
	// Clear before handing the throwable to the sink: the thread must be
	// exception-free before any further foreign call, including the
	// sink's own.
	throwable := e.rt.ExceptionOccurred()
	e.rt.ExceptionClear()
	sink(e, throwable)
	if throwable.IsValid() {
		e.rt.DeleteLocalRef(throwable)
	}
	return true
}

// logExceptionSink is the default sink.
func (b *Bridge) logExceptionSink(env *Env, throwable LocalRef) {
	b.log.Warning("cleared pending foreign exception")
}

// Promote consumes a transient reference and returns an owned durable one.
// An invalid input yields an invalid result. This is the only way a
// reference may outlive its originating call frame.
func (e *Env) Promote(ref LocalRef) GlobalRef {
	if !ref.IsValid() {
		return GlobalRef{}
	}
	global := e.rt.NewGlobalRef(ref.ID())
	e.rt.DeleteLocalRef(ref)
	return global
}

// FindClass resolves a class through the bridge's cache and returns the
// cached durable reference. The reference is owned by the cache; callers
// must not release it.
func (e *Env) FindClass(className string) GlobalRef {
	return e.bridge.ResolveClass(className)
}
