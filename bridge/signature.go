package bridge

import "strings"

// ---------------------------------------------------------------------------
// Signature grammar
// ---------------------------------------------------------------------------
//
// Method signatures are written as "(ParamTypes)ReturnType". Object types
// are "L<qualified-name>;", array types carry a "[" prefix, primitive
// scalar kinds are single letters and "V" means no value. This text is the
// wire format between the bridge and the reflection API and must match the
// foreign runtime byte for byte.

var kindSigs = [...]string{
	KindVoid:    "V",
	KindBoolean: "Z",
	KindByte:    "B",
	KindChar:    "C",
	KindShort:   "S",
	KindInt:     "I",
	KindLong:    "J",
	KindFloat:   "F",
	KindDouble:  "D",
	KindObject:  "Ljava/lang/Object;",
}

// Sig returns the signature text for a kind. Object kinds default to the
// root object type; use ClassSig for a specific class.
func (k Kind) Sig() string {
	if int(k) < len(kindSigs) {
		return kindSigs[k]
	}
	return ""
}

// ClassSig returns the object-type signature for a class name. The name may
// be slash- or dot-qualified.
func ClassSig(className string) string {
	return "L" + internalClassName(className) + ";"
}

// ArraySig returns the array-type signature for an element signature.
func ArraySig(elem string) string {
	return "[" + elem
}

// MethodSig builds a "(Params)Ret" method signature from component
// signatures.
func MethodSig(ret string, params ...string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range params {
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	sb.WriteString(ret)
	return sb.String()
}

// defaultCallSignature is the no-argument signature for a result kind,
// used when a call site omits the signature.
func defaultCallSignature(ret Kind) string {
	return "()" + ret.Sig()
}

// binaryClassName normalizes a class name to the runtime's binary encoding
// (dot-qualified). All cache keys use this form.
func binaryClassName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// internalClassName converts a class name to the slash-qualified form the
// reflection API's class lookup expects.
func internalClassName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
