package bridge

// ---------------------------------------------------------------------------
// Call / field-access façade
// ---------------------------------------------------------------------------
//
// Every operation is one synchronous resolve→invoke→translate pipeline:
// resolve the member through the caches, short-circuit to the kind's zero
// value when resolution failed, issue the typed foreign call, then clear
// any pending exception and substitute the zero value if one was raised.
// Passing an empty signature selects the kind's no-argument signature.

// Call invokes an instance method returning a scalar or void result,
// selected by ret. Object results go through CallObjectMethod.
func (o Object) Call(name, signature string, ret Kind, args ...Value) Value {
	if !o.IsValid() || ret == KindObject {
		return zeroValue(ret)
	}
	b := o.d.bridge
	env := b.Env()
	if signature == "" {
		signature = defaultCallSignature(ret)
	}
	id := b.methods.resolve(env, o.d.class, o.d.className, name, signature, false)
	if id == 0 {
		b.record("call", o.d.className, name, signature, false)
		return zeroValue(ret)
	}
	res := env.rt.CallMethod(o.Ref(), id, ret, args)
	ok := !env.CheckAndClearExceptions()
	if !ok {
		res = zeroValue(ret)
	}
	b.record("call", o.d.className, name, signature, ok)
	return res
}

// CallObjectMethod invokes an instance method with an object-valued
// result. The transient result reference is promoted into the returned
// handle; on failure the handle is invalid.
func (o Object) CallObjectMethod(name, signature string, args ...Value) Object {
	if !o.IsValid() {
		return Object{}
	}
	b := o.d.bridge
	env := b.Env()
	if signature == "" {
		signature = defaultCallSignature(KindObject)
	}
	id := b.methods.resolve(env, o.d.class, o.d.className, name, signature, false)
	if id == 0 {
		b.record("call", o.d.className, name, signature, false)
		return Object{}
	}
	res := env.rt.CallMethod(o.Ref(), id, KindObject, args)
	obj := b.completeObjectCall(env, LocalRef{id: res.AsRef()})
	b.record("call", o.d.className, name, signature, obj.IsValid())
	return obj
}

// CallVoidMethod invokes an instance method with no result.
func (o Object) CallVoidMethod(name, signature string, args ...Value) {
	o.Call(name, signature, KindVoid, args...)
}

// CallBooleanMethod invokes an instance method returning boolean.
func (o Object) CallBooleanMethod(name, signature string, args ...Value) bool {
	return o.Call(name, signature, KindBoolean, args...).AsBool()
}

// CallByteMethod invokes an instance method returning byte.
func (o Object) CallByteMethod(name, signature string, args ...Value) int8 {
	return o.Call(name, signature, KindByte, args...).AsByte()
}

// CallCharMethod invokes an instance method returning char.
func (o Object) CallCharMethod(name, signature string, args ...Value) uint16 {
	return o.Call(name, signature, KindChar, args...).AsChar()
}

// CallShortMethod invokes an instance method returning short.
func (o Object) CallShortMethod(name, signature string, args ...Value) int16 {
	return o.Call(name, signature, KindShort, args...).AsShort()
}

// CallIntMethod invokes an instance method returning int.
func (o Object) CallIntMethod(name, signature string, args ...Value) int32 {
	return o.Call(name, signature, KindInt, args...).AsInt()
}

// CallLongMethod invokes an instance method returning long.
func (o Object) CallLongMethod(name, signature string, args ...Value) int64 {
	return o.Call(name, signature, KindLong, args...).AsLong()
}

// CallFloatMethod invokes an instance method returning float.
func (o Object) CallFloatMethod(name, signature string, args ...Value) float32 {
	return o.Call(name, signature, KindFloat, args...).AsFloat()
}

// CallDoubleMethod invokes an instance method returning double.
func (o Object) CallDoubleMethod(name, signature string, args ...Value) float64 {
	return o.Call(name, signature, KindDouble, args...).AsDouble()
}

// ---------------------------------------------------------------------------
// Static calls by class name
// ---------------------------------------------------------------------------

// CallStatic invokes a static method on the named class, returning a
// scalar or void result selected by ret.
func (b *Bridge) CallStatic(className, name, signature string, ret Kind, args ...Value) Value {
	if ret == KindObject {
		return zeroValue(ret)
	}
	env := b.Env()
	key := binaryClassName(className)
	class := b.ResolveClass(key)
	if !class.IsValid() {
		return zeroValue(ret)
	}
	if signature == "" {
		signature = defaultCallSignature(ret)
	}
	id := b.methods.resolve(env, class, key, name, signature, true)
	if id == 0 {
		b.record("static-call", key, name, signature, false)
		return zeroValue(ret)
	}
	res := env.rt.CallStaticMethod(class.ID(), id, ret, args)
	ok := !env.CheckAndClearExceptions()
	if !ok {
		res = zeroValue(ret)
	}
	b.record("static-call", key, name, signature, ok)
	return res
}

// CallStaticObjectMethod invokes a static method on the named class with
// an object-valued result.
func (b *Bridge) CallStaticObjectMethod(className, name, signature string, args ...Value) Object {
	env := b.Env()
	key := binaryClassName(className)
	class := b.ResolveClass(key)
	if !class.IsValid() {
		return Object{}
	}
	if signature == "" {
		signature = defaultCallSignature(KindObject)
	}
	id := b.methods.resolve(env, class, key, name, signature, true)
	if id == 0 {
		b.record("static-call", key, name, signature, false)
		return Object{}
	}
	res := env.rt.CallStaticMethod(class.ID(), id, KindObject, args)
	obj := b.completeObjectCall(env, LocalRef{id: res.AsRef()})
	b.record("static-call", key, name, signature, obj.IsValid())
	return obj
}

// CallStaticVoidMethod invokes a static method with no result.
func (b *Bridge) CallStaticVoidMethod(className, name, signature string, args ...Value) {
	b.CallStatic(className, name, signature, KindVoid, args...)
}

// CallStaticBooleanMethod invokes a static method returning boolean.
func (b *Bridge) CallStaticBooleanMethod(className, name, signature string, args ...Value) bool {
	return b.CallStatic(className, name, signature, KindBoolean, args...).AsBool()
}

// CallStaticByteMethod invokes a static method returning byte.
func (b *Bridge) CallStaticByteMethod(className, name, signature string, args ...Value) int8 {
	return b.CallStatic(className, name, signature, KindByte, args...).AsByte()
}

// CallStaticCharMethod invokes a static method returning char.
func (b *Bridge) CallStaticCharMethod(className, name, signature string, args ...Value) uint16 {
	return b.CallStatic(className, name, signature, KindChar, args...).AsChar()
}

// CallStaticShortMethod invokes a static method returning short.
func (b *Bridge) CallStaticShortMethod(className, name, signature string, args ...Value) int16 {
	return b.CallStatic(className, name, signature, KindShort, args...).AsShort()
}

// CallStaticIntMethod invokes a static method returning int.
func (b *Bridge) CallStaticIntMethod(className, name, signature string, args ...Value) int32 {
	return b.CallStatic(className, name, signature, KindInt, args...).AsInt()
}

// CallStaticLongMethod invokes a static method returning long.
func (b *Bridge) CallStaticLongMethod(className, name, signature string, args ...Value) int64 {
	return b.CallStatic(className, name, signature, KindLong, args...).AsLong()
}

// CallStaticFloatMethod invokes a static method returning float.
func (b *Bridge) CallStaticFloatMethod(className, name, signature string, args ...Value) float32 {
	return b.CallStatic(className, name, signature, KindFloat, args...).AsFloat()
}

// CallStaticDoubleMethod invokes a static method returning double.
func (b *Bridge) CallStaticDoubleMethod(className, name, signature string, args ...Value) float64 {
	return b.CallStatic(className, name, signature, KindDouble, args...).AsDouble()
}

// ---------------------------------------------------------------------------
// Static calls by class value
// ---------------------------------------------------------------------------

// CallStaticOn invokes a static method on an already-resolved class value,
// returning a scalar or void result selected by ret. Member resolution is
// uncached: with no class name there is no stable cache key.
func (b *Bridge) CallStaticOn(class RefID, name, signature string, ret Kind, args ...Value) Value {
	if class == NilRef || ret == KindObject {
		return zeroValue(ret)
	}
	env := b.Env()
	if signature == "" {
		signature = defaultCallSignature(ret)
	}
	id := b.methods.resolve(env, GlobalRef{id: class}, "", name, signature, true)
	if id == 0 {
		b.record("static-call", "", name, signature, false)
		return zeroValue(ret)
	}
	res := env.rt.CallStaticMethod(class, id, ret, args)
	ok := !env.CheckAndClearExceptions()
	if !ok {
		res = zeroValue(ret)
	}
	b.record("static-call", "", name, signature, ok)
	return res
}

// CallStaticObjectMethodOn invokes a static method on an already-resolved
// class value with an object-valued result. Resolution is uncached.
func (b *Bridge) CallStaticObjectMethodOn(class RefID, name, signature string, args ...Value) Object {
	if class == NilRef {
		return Object{}
	}
	env := b.Env()
	if signature == "" {
		signature = defaultCallSignature(KindObject)
	}
	id := b.methods.resolve(env, GlobalRef{id: class}, "", name, signature, true)
	if id == 0 {
		b.record("static-call", "", name, signature, false)
		return Object{}
	}
	res := env.rt.CallStaticMethod(class, id, KindObject, args)
	obj := b.completeObjectCall(env, LocalRef{id: res.AsRef()})
	b.record("static-call", "", name, signature, obj.IsValid())
	return obj
}
