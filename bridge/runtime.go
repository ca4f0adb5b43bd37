package bridge

// ---------------------------------------------------------------------------
// References
// ---------------------------------------------------------------------------

// RefID is an opaque reference value assigned by the foreign runtime.
// Zero is never a valid reference.
type RefID uint64

// NilRef is the invalid reference.
const NilRef RefID = 0

// LocalRef is a transient reference. It is valid only within the call frame
// that produced it (or until explicitly released) and must never be stored.
// Promote it through Env.Promote to keep the object alive.
type LocalRef struct {
	id RefID
}

// ID returns the raw reference value.
func (r LocalRef) ID() RefID { return r.id }

// IsValid returns true if the reference denotes a foreign object.
func (r LocalRef) IsValid() bool { return r.id != NilRef }

// GlobalRef is a durable reference. It prevents the foreign collector from
// reclaiming the object until explicitly released.
type GlobalRef struct {
	id RefID
}

// ID returns the raw reference value.
func (r GlobalRef) ID() RefID { return r.id }

// IsValid returns true if the reference denotes a foreign object.
func (r GlobalRef) IsValid() bool { return r.id != NilRef }

// LocalRefOf wraps a raw reference value as a transient reference. It is
// for Runtime implementations handing references back to the bridge.
func LocalRefOf(id RefID) LocalRef { return LocalRef{id: id} }

// GlobalRefOf wraps a raw reference value as a durable reference. It is
// for Runtime implementations handing references back to the bridge.
func GlobalRefOf(id RefID) GlobalRef { return GlobalRef{id: id} }

// MethodID is a resolved foreign method handle. Zero means unresolved.
type MethodID uint64

// FieldID is a resolved foreign field handle. Zero means unresolved.
type FieldID uint64

// ---------------------------------------------------------------------------
// Result kinds
// ---------------------------------------------------------------------------

// Kind identifies the result type of a foreign call or field access.
// It is a closed set: void, the eight primitive scalar kinds, and object.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
)

var kindNames = [...]string{
	KindVoid:    "void",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindChar:    "char",
	KindShort:   "short",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindObject:  "object",
}

// String implements the Stringer interface.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

// Value is a tagged union holding one argument or result of a foreign call.
// Integral scalars share one slot, floating-point scalars another, and
// object kinds carry a raw reference.
type Value struct {
	kind Kind
	bits int64
	fval float64
	ref  RefID
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// Void returns the void value.
func Void() Value { return Value{kind: KindVoid} }

// Bool wraps a boolean scalar.
func Bool(b bool) Value {
	var bits int64
	if b {
		bits = 1
	}
	return Value{kind: KindBoolean, bits: bits}
}

// Byte wraps a byte scalar.
func Byte(b int8) Value { return Value{kind: KindByte, bits: int64(b)} }

// Char wraps a UTF-16 code unit scalar.
func Char(c uint16) Value { return Value{kind: KindChar, bits: int64(c)} }

// Short wraps a short scalar.
func Short(s int16) Value { return Value{kind: KindShort, bits: int64(s)} }

// Int wraps an int scalar.
func Int(i int32) Value { return Value{kind: KindInt, bits: int64(i)} }

// Long wraps a long scalar.
func Long(l int64) Value { return Value{kind: KindLong, bits: l} }

// Float wraps a float scalar.
func Float(f float32) Value { return Value{kind: KindFloat, fval: float64(f)} }

// Double wraps a double scalar.
func Double(d float64) Value { return Value{kind: KindDouble, fval: d} }

// Ref wraps a raw object reference. The reference is forwarded opaquely;
// the value takes no ownership of it.
func Ref(id RefID) Value { return Value{kind: KindObject, ref: id} }

// AsBool unwraps a boolean scalar.
func (v Value) AsBool() bool { return v.bits != 0 }

// AsByte unwraps a byte scalar.
func (v Value) AsByte() int8 { return int8(v.bits) }

// AsChar unwraps a UTF-16 code unit scalar.
func (v Value) AsChar() uint16 { return uint16(v.bits) }

// AsShort unwraps a short scalar.
func (v Value) AsShort() int16 { return int16(v.bits) }

// AsInt unwraps an int scalar.
func (v Value) AsInt() int32 { return int32(v.bits) }

// AsLong unwraps a long scalar.
func (v Value) AsLong() int64 { return v.bits }

// AsFloat unwraps a float scalar.
func (v Value) AsFloat() float32 { return float32(v.fval) }

// AsDouble unwraps a double scalar.
func (v Value) AsDouble() float64 { return v.fval }

// AsRef unwraps an object reference.
func (v Value) AsRef() RefID { return v.ref }

// zeroValue returns the zero value for a result kind. It is what every
// façade operation yields when resolution fails or a foreign exception
// was pending.
func zeroValue(k Kind) Value {
	return Value{kind: k}
}

// ---------------------------------------------------------------------------
// Runtime capability set
// ---------------------------------------------------------------------------

// Runtime is the injected capability set through which the foreign runtime
// is reached. Every method is a blocking, synchronous call into the foreign
// runtime; a call may leave an exception pending, which callers must clear
// through Env.CheckAndClearExceptions before issuing the next call on the
// same thread.
//
// Object-kind results (including FindClass, NewObject, GetObjectClass and
// string operations) are transient references owned by the caller.
type Runtime interface {
	// FindClass loads a class by slash-qualified name. On failure it
	// returns an invalid ref and may leave an exception pending.
	FindClass(name string) LocalRef

	// GetMethodID resolves a method by name and signature. On failure it
	// returns zero and may leave an exception pending.
	GetMethodID(class RefID, name, signature string, static bool) MethodID

	// GetFieldID resolves a field by name and signature. On failure it
	// returns zero and may leave an exception pending.
	GetFieldID(class RefID, name, signature string, static bool) FieldID

	// NewObject constructs an instance through a resolved constructor.
	NewObject(class RefID, ctor MethodID, args []Value) LocalRef

	// CallMethod invokes an instance method, typed by result kind.
	CallMethod(obj RefID, method MethodID, ret Kind, args []Value) Value

	// CallStaticMethod invokes a static method, typed by result kind.
	CallStaticMethod(class RefID, method MethodID, ret Kind, args []Value) Value

	// GetField reads an instance field, typed by kind.
	GetField(obj RefID, field FieldID, kind Kind) Value

	// SetField writes an instance field.
	SetField(obj RefID, field FieldID, value Value)

	// GetStaticField reads a static field, typed by kind.
	GetStaticField(class RefID, field FieldID, kind Kind) Value

	// SetStaticField writes a static field.
	SetStaticField(class RefID, field FieldID, value Value)

	// GetObjectClass returns the runtime class of an object.
	GetObjectClass(obj RefID) LocalRef

	// IsSameObject reports whether two references denote the same foreign
	// object identity.
	IsSameObject(a, b RefID) bool

	// NewGlobalRef creates a durable reference from any existing reference.
	NewGlobalRef(ref RefID) GlobalRef

	// NewLocalRef creates a transient reference from any existing reference.
	NewLocalRef(ref RefID) LocalRef

	// DeleteGlobalRef releases a durable reference.
	DeleteGlobalRef(ref GlobalRef)

	// DeleteLocalRef releases a transient reference.
	DeleteLocalRef(ref LocalRef)

	// ExceptionCheck reports whether an exception is pending on the
	// current thread.
	ExceptionCheck() bool

	// ExceptionOccurred returns a transient reference to the pending
	// throwable, or an invalid ref if none is pending.
	ExceptionOccurred() LocalRef

	// ExceptionClear clears the pending exception, if any.
	ExceptionClear()

	// NewString creates a foreign string from UTF-16 code units. The
	// length is carried by the slice; no terminator is involved.
	NewString(units []uint16) LocalRef

	// GetStringLength returns the string's length in UTF-16 code units.
	GetStringLength(str RefID) int

	// GetStringChars returns the string's UTF-16 code units.
	GetStringChars(str RefID) []uint16
}
