package bridge

import "sync/atomic"

// ---------------------------------------------------------------------------
// Object handles
// ---------------------------------------------------------------------------

// classOwnership says whether a handle's class reference is owned (released
// when the handle is destroyed) or borrowed (owned elsewhere, typically by
// the class cache, and never released by the handle).
type classOwnership uint8

const (
	borrowsClass classOwnership = iota
	ownsClass
)

// objectData is the shared state behind an Object handle: a durable
// reference to one foreign object, a durable reference to its class, and a
// holder count. The durable references are released exactly once, when the
// last holder releases its share.
type objectData struct {
	bridge    *Bridge
	holders   atomic.Int32
	obj       GlobalRef
	class     GlobalRef
	classOwn  classOwnership
	className string // binary-encoded cache key; empty when unknown
}

// Object is a shared handle to one foreign object. Handles returned by the
// bridge own one share; Retain adds a share and Release drops one. The
// foreign object stays alive until the last share is released.
//
// The zero Object is invalid and safe to use: every operation on it
// resolves nothing and returns the appropriate zero or invalid value.
type Object struct {
	d *objectData
}

// newObjectData allocates shared state with one holder.
func newObjectData(b *Bridge) *objectData {
	d := &objectData{bridge: b}
	d.holders.Store(1)
	return d
}

// IsValid returns true if the handle denotes a foreign object.
func (o Object) IsValid() bool {
	return o.d != nil && o.d.obj.IsValid()
}

// Ref returns the raw reference to the foreign object, or NilRef. The
// reference stays valid only while this handle holds a share.
func (o Object) Ref() RefID {
	if o.d == nil {
		return NilRef
	}
	return o.d.obj.ID()
}

// Class returns the raw reference to the object's class, or NilRef.
func (o Object) Class() RefID {
	if o.d == nil {
		return NilRef
	}
	return o.d.class.ID()
}

// ClassName returns the binary-encoded class name the handle was resolved
// under, or "" when the handle was built from a bare reference.
func (o Object) ClassName() string {
	if o.d == nil {
		return ""
	}
	return o.d.className
}

// Value wraps the handle's reference as a call argument.
func (o Object) Value() Value {
	return Ref(o.Ref())
}

// Retain adds a share and returns the handle.
func (o Object) Retain() Object {
	if o.d != nil {
		o.d.holders.Add(1)
	}
	return o
}

// Release drops this holder's share. When the last share is dropped the
// owned object reference is released, and the class reference too if this
// handle owns it; a borrowed class reference is never released here.
func (o Object) Release() {
	if o.d == nil {
		return
	}
	if o.d.holders.Add(-1) != 0 {
		return
	}
	env := o.d.bridge.Env()
	if o.d.obj.IsValid() {
		env.rt.DeleteGlobalRef(o.d.obj)
	}
	switch o.d.classOwn {
	case ownsClass:
		if o.d.class.IsValid() {
			env.rt.DeleteGlobalRef(o.d.class)
		}
	case borrowsClass:
		// Owned by the class cache or the caller.
	}
	o.d.obj = GlobalRef{}
	o.d.class = GlobalRef{}
}

// IsSame reports whether two handles denote the same foreign object
// identity. Two invalid handles compare equal.
func (o Object) IsSame(other Object) bool {
	switch {
	case o.d != nil:
		return o.d.bridge.rt.IsSameObject(o.Ref(), other.Ref())
	case other.d != nil:
		return other.d.bridge.rt.IsSameObject(o.Ref(), other.Ref())
	default:
		return true
	}
}

// IsSameRef reports whether the handle denotes the same foreign object as
// a raw reference.
func (o Object) IsSameRef(ref RefID) bool {
	if o.d == nil {
		return ref == NilRef
	}
	return o.d.bridge.rt.IsSameObject(o.Ref(), ref)
}

// Assign replaces the handle's target with a new raw reference. When the
// new reference denotes the object the handle already holds, this is a
// no-op with zero reference operations. Otherwise this holder detaches
// from its current state (releasing its share) and acquires fresh durable
// references, recomputing the class from the new object. Other holders of
// the previous state are unaffected.
func (o *Object) Assign(ref RefID) {
	if o.d == nil {
		return
	}
	if o.IsSameRef(ref) {
		return
	}
	old := *o
	*o = o.d.bridge.WrapRef(ref)
	old.Release()
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// New constructs an instance of the named class through its default
// constructor.
func (b *Bridge) New(className string) Object {
	return b.NewObject(className, "()V")
}

// NewObject constructs an instance of the named class through the
// constructor matching signature. The class is resolved through the class
// cache (the handle borrows its reference) and the constructor through the
// member cache. On failure the handle is invalid.
func (b *Bridge) NewObject(className, signature string, args ...Value) Object {
	env := b.Env()
	key := binaryClassName(className)

	d := newObjectData(b)
	d.className = key
	d.class = b.ResolveClass(key)
	d.classOwn = borrowsClass
	if d.class.IsValid() {
		ctor := b.methods.resolve(env, d.class, key, "<init>", signature, false)
		if ctor != 0 {
			local := env.rt.NewObject(d.class.ID(), ctor, args)
			if env.CheckAndClearExceptions() {
				if local.IsValid() {
					env.rt.DeleteLocalRef(local)
				}
			} else {
				d.obj = env.Promote(local)
			}
		}
	}
	b.record("new", key, "<init>", signature, d.obj.IsValid())
	return Object{d: d}
}

// NewObjectOf constructs an instance from an already-resolved class value.
// The class reference is promoted to a durable one owned by the new
// handle, and the constructor resolution is uncached: with no class name
// there is no stable cache key.
func (b *Bridge) NewObjectOf(class RefID, signature string, args ...Value) Object {
	env := b.Env()
	d := newObjectData(b)
	d.classOwn = ownsClass
	if class != NilRef {
		d.class = env.rt.NewGlobalRef(class)
		ctor := b.methods.resolve(env, d.class, "", "<init>", signature, false)
		if ctor != 0 {
			local := env.rt.NewObject(d.class.ID(), ctor, args)
			if env.CheckAndClearExceptions() {
				if local.IsValid() {
					env.rt.DeleteLocalRef(local)
				}
			} else {
				d.obj = env.Promote(local)
			}
		}
	}
	b.record("new", "", "<init>", signature, d.obj.IsValid())
	return Object{d: d}
}

// WrapRef builds a handle around a raw foreign reference. The reference is
// promoted to a durable one, and the object's runtime class is queried
// from the object itself and promoted too, so the handle is always
// self-describing. The caller keeps ownership of the passed reference.
func (b *Bridge) WrapRef(ref RefID) Object {
	d := newObjectData(b)
	d.classOwn = ownsClass
	if ref != NilRef {
		env := b.Env()
		d.obj = env.rt.NewGlobalRef(ref)
		d.class = env.Promote(env.rt.GetObjectClass(ref))
	}
	return Object{d: d}
}

// WrapRefNamed builds a handle around a raw foreign reference whose class
// name the caller knows. The class is resolved through the class cache
// (borrowed reference, stable member-cache key) instead of being queried
// from the object.
func (b *Bridge) WrapRefNamed(ref RefID, className string) Object {
	key := binaryClassName(className)
	d := newObjectData(b)
	d.className = key
	d.class = b.ResolveClass(key)
	d.classOwn = borrowsClass
	if ref != NilRef && d.class.IsValid() {
		d.obj = b.Env().rt.NewGlobalRef(ref)
	}
	return Object{d: d}
}

// WrapLocalRef builds a handle from a transient reference, taking
// ownership of it: the transient reference is released before returning.
func (b *Bridge) WrapLocalRef(ref LocalRef) Object {
	obj := b.WrapRef(ref.ID())
	if ref.IsValid() {
		b.rt.DeleteLocalRef(ref)
	}
	return obj
}

// completeObjectCall finishes an object-valued foreign call: it clears any
// pending exception (discarding the partial result), and otherwise
// promotes the transient result into a new handle.
func (b *Bridge) completeObjectCall(env *Env, result LocalRef) Object {
	if env.CheckAndClearExceptions() {
		if result.IsValid() {
			env.rt.DeleteLocalRef(result)
		}
		return Object{}
	}
	if !result.IsValid() {
		return Object{}
	}
	return b.WrapLocalRef(result)
}
