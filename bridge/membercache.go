package bridge

import "sync"

// ---------------------------------------------------------------------------
// Member resolver and cache
// ---------------------------------------------------------------------------

// memberKey identifies one method or field resolution. The class name is
// the binary-encoded form; resolutions against a bare class value carry no
// name and bypass the cache entirely.
type memberKey struct {
	class     string
	name      string
	signature string
	static    bool
}

// memberCache maps member keys to resolved handles. Zero handles are
// negative entries and stay negative for the life of the process. The
// cache is shared by every thread; lookups take a read lock and inserts
// use double-checked locking so at most one foreign resolution happens
// per key.
type memberCache[ID ~uint64] struct {
	mu      sync.RWMutex
	entries map[memberKey]ID
	lookup  func(env *Env, class RefID, name, signature string, static bool) ID
}

// resolve returns the member handle for (class, name, signature, static),
// resolving and caching it on first use. classKey is the binary-encoded
// class name; when it is empty no stable cache key exists and every call
// performs a fresh resolution.
func (c *memberCache[ID]) resolve(env *Env, class GlobalRef, classKey, name, signature string, static bool) ID {
	if !class.IsValid() {
		return 0
	}
	if classKey == "" {
		return c.lookup(env, class.ID(), name, signature, static)
	}

	key := memberKey{class: classKey, name: name, signature: signature, static: static}

	c.mu.RLock()
	id, hit := c.entries[key]
	c.mu.RUnlock()
	if hit {
		return id
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if id, hit := c.entries[key]; hit {
		return id
	}
	id = c.lookup(env, class.ID(), name, signature, static)
	c.entries[key] = id
	return id
}

// clear drops every entry. Member handles are not references and need no
// release.
func (c *memberCache[ID]) clear() {
	c.mu.Lock()
	c.entries = make(map[memberKey]ID)
	c.mu.Unlock()
}

// lookupMethodID resolves a method handle and clears any exception the
// failed resolution left pending.
func lookupMethodID(env *Env, class RefID, name, signature string, static bool) MethodID {
	id := env.rt.GetMethodID(class, name, signature, static)
	if env.CheckAndClearExceptions() {
		return 0
	}
	return id
}

// lookupFieldID resolves a field handle and clears any exception the
// failed resolution left pending.
func lookupFieldID(env *Env, class RefID, name, signature string, static bool) FieldID {
	id := env.rt.GetFieldID(class, name, signature, static)
	if env.CheckAndClearExceptions() {
		return 0
	}
	return id
}
