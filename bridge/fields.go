package bridge

// ---------------------------------------------------------------------------
// Field access
// ---------------------------------------------------------------------------

// GetField reads an instance field of scalar kind. Passing an empty
// signature selects the kind's own signature.
func (o Object) GetField(name, signature string, kind Kind) Value {
	if !o.IsValid() || kind == KindVoid || kind == KindObject {
		return zeroValue(kind)
	}
	b := o.d.bridge
	env := b.Env()
	if signature == "" {
		signature = kind.Sig()
	}
	id := b.fields.resolve(env, o.d.class, o.d.className, name, signature, false)
	if id == 0 {
		b.record("getfield", o.d.className, name, signature, false)
		return zeroValue(kind)
	}
	res := env.rt.GetField(o.Ref(), id, kind)
	ok := !env.CheckAndClearExceptions()
	if !ok {
		res = zeroValue(kind)
	}
	b.record("getfield", o.d.className, name, signature, ok)
	return res
}

// SetField writes an instance field of scalar kind. The value's kind
// selects the field signature when none is given.
func (o Object) SetField(name, signature string, value Value) {
	if !o.IsValid() || value.Kind() == KindVoid {
		return
	}
	b := o.d.bridge
	env := b.Env()
	if signature == "" {
		signature = value.Kind().Sig()
	}
	id := b.fields.resolve(env, o.d.class, o.d.className, name, signature, false)
	if id == 0 {
		b.record("setfield", o.d.className, name, signature, false)
		return
	}
	env.rt.SetField(o.Ref(), id, value)
	ok := !env.CheckAndClearExceptions()
	b.record("setfield", o.d.className, name, signature, ok)
}

// GetObjectField reads an object-valued instance field and promotes the
// result into a new handle.
func (o Object) GetObjectField(name, signature string) Object {
	if !o.IsValid() {
		return Object{}
	}
	b := o.d.bridge
	env := b.Env()
	if signature == "" {
		signature = KindObject.Sig()
	}
	id := b.fields.resolve(env, o.d.class, o.d.className, name, signature, false)
	if id == 0 {
		b.record("getfield", o.d.className, name, signature, false)
		return Object{}
	}
	res := env.rt.GetField(o.Ref(), id, KindObject)
	obj := b.completeObjectCall(env, LocalRef{id: res.AsRef()})
	b.record("getfield", o.d.className, name, signature, obj.IsValid())
	return obj
}

// GetBooleanField reads a boolean instance field.
func (o Object) GetBooleanField(name string) bool {
	return o.GetField(name, "", KindBoolean).AsBool()
}

// GetByteField reads a byte instance field.
func (o Object) GetByteField(name string) int8 {
	return o.GetField(name, "", KindByte).AsByte()
}

// GetCharField reads a char instance field.
func (o Object) GetCharField(name string) uint16 {
	return o.GetField(name, "", KindChar).AsChar()
}

// GetShortField reads a short instance field.
func (o Object) GetShortField(name string) int16 {
	return o.GetField(name, "", KindShort).AsShort()
}

// GetIntField reads an int instance field.
func (o Object) GetIntField(name string) int32 {
	return o.GetField(name, "", KindInt).AsInt()
}

// GetLongField reads a long instance field.
func (o Object) GetLongField(name string) int64 {
	return o.GetField(name, "", KindLong).AsLong()
}

// GetFloatField reads a float instance field.
func (o Object) GetFloatField(name string) float32 {
	return o.GetField(name, "", KindFloat).AsFloat()
}

// GetDoubleField reads a double instance field.
func (o Object) GetDoubleField(name string) float64 {
	return o.GetField(name, "", KindDouble).AsDouble()
}

// SetBooleanField writes a boolean instance field.
func (o Object) SetBooleanField(name string, v bool) { o.SetField(name, "", Bool(v)) }

// SetByteField writes a byte instance field.
func (o Object) SetByteField(name string, v int8) { o.SetField(name, "", Byte(v)) }

// SetCharField writes a char instance field.
func (o Object) SetCharField(name string, v uint16) { o.SetField(name, "", Char(v)) }

// SetShortField writes a short instance field.
func (o Object) SetShortField(name string, v int16) { o.SetField(name, "", Short(v)) }

// SetIntField writes an int instance field.
func (o Object) SetIntField(name string, v int32) { o.SetField(name, "", Int(v)) }

// SetLongField writes a long instance field.
func (o Object) SetLongField(name string, v int64) { o.SetField(name, "", Long(v)) }

// SetFloatField writes a float instance field.
func (o Object) SetFloatField(name string, v float32) { o.SetField(name, "", Float(v)) }

// SetDoubleField writes a double instance field.
func (o Object) SetDoubleField(name string, v float64) { o.SetField(name, "", Double(v)) }

// SetObjectField writes an object-valued instance field. The signature is
// required: an object field's type cannot be inferred from the reference.
func (o Object) SetObjectField(name, signature string, ref RefID) {
	if !o.IsValid() || signature == "" {
		return
	}
	b := o.d.bridge
	env := b.Env()
	id := b.fields.resolve(env, o.d.class, o.d.className, name, signature, false)
	if id == 0 {
		b.record("setfield", o.d.className, name, signature, false)
		return
	}
	env.rt.SetField(o.Ref(), id, Ref(ref))
	ok := !env.CheckAndClearExceptions()
	b.record("setfield", o.d.className, name, signature, ok)
}

// ---------------------------------------------------------------------------
// Static field access by class name
// ---------------------------------------------------------------------------

// GetStaticField reads a static field of scalar kind on the named class.
func (b *Bridge) GetStaticField(className, name, signature string, kind Kind) Value {
	if kind == KindVoid || kind == KindObject {
		return zeroValue(kind)
	}
	env := b.Env()
	key := binaryClassName(className)
	class := b.ResolveClass(key)
	if !class.IsValid() {
		return zeroValue(kind)
	}
	if signature == "" {
		signature = kind.Sig()
	}
	id := b.fields.resolve(env, class, key, name, signature, true)
	if id == 0 {
		b.record("getstatic", key, name, signature, false)
		return zeroValue(kind)
	}
	res := env.rt.GetStaticField(class.ID(), id, kind)
	ok := !env.CheckAndClearExceptions()
	if !ok {
		res = zeroValue(kind)
	}
	b.record("getstatic", key, name, signature, ok)
	return res
}

// SetStaticField writes a static field of scalar kind on the named class.
func (b *Bridge) SetStaticField(className, name, signature string, value Value) {
	if value.Kind() == KindVoid {
		return
	}
	env := b.Env()
	key := binaryClassName(className)
	class := b.ResolveClass(key)
	if !class.IsValid() {
		return
	}
	if signature == "" {
		signature = value.Kind().Sig()
	}
	id := b.fields.resolve(env, class, key, name, signature, true)
	if id == 0 {
		b.record("setstatic", key, name, signature, false)
		return
	}
	env.rt.SetStaticField(class.ID(), id, value)
	ok := !env.CheckAndClearExceptions()
	b.record("setstatic", key, name, signature, ok)
}

// GetStaticObjectField reads an object-valued static field on the named
// class and promotes the result into a new handle.
func (b *Bridge) GetStaticObjectField(className, name, signature string) Object {
	env := b.Env()
	key := binaryClassName(className)
	class := b.ResolveClass(key)
	if !class.IsValid() {
		return Object{}
	}
	if signature == "" {
		signature = KindObject.Sig()
	}
	id := b.fields.resolve(env, class, key, name, signature, true)
	if id == 0 {
		b.record("getstatic", key, name, signature, false)
		return Object{}
	}
	res := env.rt.GetStaticField(class.ID(), id, KindObject)
	obj := b.completeObjectCall(env, LocalRef{id: res.AsRef()})
	b.record("getstatic", key, name, signature, obj.IsValid())
	return obj
}

// GetStaticIntField reads an int static field on the named class.
func (b *Bridge) GetStaticIntField(className, name string) int32 {
	return b.GetStaticField(className, name, "", KindInt).AsInt()
}

// GetStaticLongField reads a long static field on the named class.
func (b *Bridge) GetStaticLongField(className, name string) int64 {
	return b.GetStaticField(className, name, "", KindLong).AsLong()
}

// GetStaticBooleanField reads a boolean static field on the named class.
func (b *Bridge) GetStaticBooleanField(className, name string) bool {
	return b.GetStaticField(className, name, "", KindBoolean).AsBool()
}

// SetStaticIntField writes an int static field on the named class.
func (b *Bridge) SetStaticIntField(className, name string, v int32) {
	b.SetStaticField(className, name, "", Int(v))
}

// SetStaticLongField writes a long static field on the named class.
func (b *Bridge) SetStaticLongField(className, name string, v int64) {
	b.SetStaticField(className, name, "", Long(v))
}

// ---------------------------------------------------------------------------
// Static field access by class value
// ---------------------------------------------------------------------------

// GetStaticFieldOn reads a static field on an already-resolved class value.
// Resolution is uncached: with no class name there is no stable cache key.
func (b *Bridge) GetStaticFieldOn(class RefID, name, signature string, kind Kind) Value {
	if class == NilRef || kind == KindVoid || kind == KindObject {
		return zeroValue(kind)
	}
	env := b.Env()
	if signature == "" {
		signature = kind.Sig()
	}
	id := b.fields.resolve(env, GlobalRef{id: class}, "", name, signature, true)
	if id == 0 {
		b.record("getstatic", "", name, signature, false)
		return zeroValue(kind)
	}
	res := env.rt.GetStaticField(class, id, kind)
	ok := !env.CheckAndClearExceptions()
	if !ok {
		res = zeroValue(kind)
	}
	b.record("getstatic", "", name, signature, ok)
	return res
}

// SetStaticFieldOn writes a static field on an already-resolved class value.
// Resolution is uncached.
func (b *Bridge) SetStaticFieldOn(class RefID, name, signature string, value Value) {
	if class == NilRef || value.Kind() == KindVoid {
		return
	}
	env := b.Env()
	if signature == "" {
		signature = value.Kind().Sig()
	}
	id := b.fields.resolve(env, GlobalRef{id: class}, "", name, signature, true)
	if id == 0 {
		b.record("setstatic", "", name, signature, false)
		return
	}
	env.rt.SetStaticField(class, id, value)
	ok := !env.CheckAndClearExceptions()
	b.record("setstatic", "", name, signature, ok)
}
