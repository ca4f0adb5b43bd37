package bridge

import "unicode/utf16"

// ---------------------------------------------------------------------------
// String conversion
// ---------------------------------------------------------------------------
//
// Foreign strings are sequences of UTF-16 code units with an explicit
// length; native strings are UTF-8. Conversion always goes through UTF-16
// code units, never through a terminator, so embedded zero units survive
// the round trip.

// NewString creates a foreign string object from a native string. The
// handle is invalid if the runtime failed to allocate the string.
func (b *Bridge) NewString(s string) Object {
	env := b.Env()
	units := utf16.Encode([]rune(s))
	local := env.rt.NewString(units)
	return b.completeObjectCall(env, local)
}

// ToString returns the object's textual form via its reflective toString
// call. An invalid handle yields the empty string.
func (o Object) ToString() string {
	if !o.IsValid() {
		return ""
	}
	str := o.CallObjectMethod("toString", "()Ljava/lang/String;")
	defer str.Release()
	return str.stringValue()
}

// StringValue decodes the handle's foreign string contents. The handle must
// denote a string object; anything else yields the empty string.
func (o Object) StringValue() string {
	if !o.IsValid() {
		return ""
	}
	return o.stringValue()
}

func (o Object) stringValue() string {
	if !o.IsValid() {
		return ""
	}
	env := o.d.bridge.Env()
	n := env.rt.GetStringLength(o.Ref())
	if n <= 0 {
		return ""
	}
	units := env.rt.GetStringChars(o.Ref())
	if len(units) > n {
		units = units[:n]
	}
	return string(utf16.Decode(units))
}
