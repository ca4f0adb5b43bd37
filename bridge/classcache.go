package bridge

import "sync"

// ---------------------------------------------------------------------------
// Class resolver and cache
// ---------------------------------------------------------------------------

// classCache maps binary-encoded class names to durable class references.
// An entry holding an invalid ref is a negative entry: the lookup failed
// once and stays failed for the life of the process. Entries are never
// evicted; Bridge.Detach releases them.
type classCache struct {
	mu      sync.RWMutex
	entries map[string]GlobalRef
}

// ResolveClass resolves a class by name, consulting the cache first. The
// name may be slash- or dot-qualified; keys are normalized to the binary
// (dotted) encoding. The returned durable reference is owned by the cache
// and must not be released by the caller. An invalid result means the
// class could not be found, and that outcome is itself cached.
func (b *Bridge) ResolveClass(className string) GlobalRef {
	key := binaryClassName(className)

	b.classes.mu.RLock()
	ref, hit := b.classes.entries[key]
	b.classes.mu.RUnlock()
	if hit {
		return ref
	}

	env := b.Env()

	b.classes.mu.Lock()
	defer b.classes.mu.Unlock()

	// Did we lose the race?
	if ref, hit := b.classes.entries[key]; hit {
		return ref
	}

	resolved := b.lookupClass(env, key)

	// A reentrant foreign call may have populated the entry while we were
	// resolving. Keep the winner and discard our duplicate durable ref
	// rather than leaking or overwriting it.
	if prev, hit := b.classes.entries[key]; hit {
		if resolved.IsValid() {
			env.rt.DeleteGlobalRef(resolved)
		}
		return prev
	}

	b.classes.entries[key] = resolved
	if resolved.IsValid() {
		b.log.Debugf("cached class %s", key)
	} else {
		b.log.Warningf("class %s not found (negative-cached)", key)
	}
	return resolved
}

// lookupClass performs the uncached resolution. With a class loader
// installed it goes through the loader's reflective load-class call;
// otherwise it uses the runtime's direct class lookup capability.
func (b *Bridge) lookupClass(env *Env, binaryName string) GlobalRef {
	if loader, ok := b.classLoader(); ok {
		name := b.NewString(binaryName)
		defer name.Release()
		if !name.IsValid() {
			return GlobalRef{}
		}
		class := loader.CallObjectMethod("loadClass",
			"(Ljava/lang/String;)Ljava/lang/Class;", name.Value())
		defer class.Release()
		if !class.IsValid() {
			return GlobalRef{}
		}
		return env.rt.NewGlobalRef(class.Ref())
	}

	local := env.rt.FindClass(internalClassName(binaryName))
	if env.CheckAndClearExceptions() {
		if local.IsValid() {
			env.rt.DeleteLocalRef(local)
		}
		return GlobalRef{}
	}
	return env.Promote(local)
}
