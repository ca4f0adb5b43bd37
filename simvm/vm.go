package simvm

import (
	"fmt"
	"sync"
	"unicode/utf16"

	"github.com/chazu/jbridge/bridge"
)

// ---------------------------------------------------------------------------
// VM state
// ---------------------------------------------------------------------------

// Object is one live object in the simulated heap.
type Object struct {
	id       uint64
	class    *Class
	fields   map[bridge.FieldID]bridge.Value
	str      []uint16 // string payload, for instances of java.lang.String
	classDef *Class   // set on the mirror objects returned by class lookup
	message  string   // throwable detail message
}

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// Message returns the throwable detail message, if any.
func (o *Object) Message() string { return o.message }

// VM is the simulated foreign runtime.
type VM struct {
	mu sync.Mutex

	classes     map[string]*Class
	methodsByID map[bridge.MethodID]*Method
	fieldsByID  map[bridge.FieldID]*Field
	mirrors     map[*Class]*Object

	locals  map[bridge.RefID]*Object
	globals map[bridge.RefID]*Object
	nextRef bridge.RefID

	nextObject uint64
	nextMethod bridge.MethodID
	nextField  bridge.FieldID

	pending *Object

	findClasses   map[string]int
	methodLookups int
	fieldLookups  int
	refOps        int
}

// New builds a VM with the builtin class set installed.
func New() *VM {
	vm := &VM{
		classes:     make(map[string]*Class),
		methodsByID: make(map[bridge.MethodID]*Method),
		fieldsByID:  make(map[bridge.FieldID]*Field),
		mirrors:     make(map[*Class]*Object),
		locals:      make(map[bridge.RefID]*Object),
		globals:     make(map[bridge.RefID]*Object),
		findClasses: make(map[string]int),
	}
	vm.installBuiltins()
	return vm
}

// newObject allocates an instance. Callers hold vm.mu.
func (vm *VM) newObject(class *Class) *Object {
	vm.nextObject++
	return &Object{
		id:     vm.nextObject,
		class:  class,
		fields: make(map[bridge.FieldID]bridge.Value),
	}
}

// mirror returns the class-mirror object for a class, allocating it on
// first use. Callers hold vm.mu.
func (vm *VM) mirror(class *Class) *Object {
	if m, ok := vm.mirrors[class]; ok {
		return m
	}
	m := vm.newObject(vm.classes[classClass])
	m.classDef = class
	vm.mirrors[class] = m
	return m
}

// ---------------------------------------------------------------------------
// Reference tables
// ---------------------------------------------------------------------------

// newLocal registers a transient reference. Callers hold vm.mu.
func (vm *VM) newLocal(obj *Object) bridge.LocalRef {
	if obj == nil {
		return bridge.LocalRef{}
	}
	vm.nextRef++
	vm.locals[vm.nextRef] = obj
	vm.refOps++
	return bridge.LocalRefOf(vm.nextRef)
}

// deref resolves a reference in either table. Callers hold vm.mu.
func (vm *VM) deref(ref bridge.RefID) *Object {
	if obj, ok := vm.locals[ref]; ok {
		return obj
	}
	return vm.globals[ref]
}

// InvalidateLocals drops every transient reference, simulating the end of
// the native call frame that produced them.
func (vm *VM) InvalidateLocals() {
	vm.mu.Lock()
	vm.locals = make(map[bridge.RefID]*Object)
	vm.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Exceptions
// ---------------------------------------------------------------------------

// Throw raises a foreign exception of the named class. Unknown classes
// are defined on the fly as direct Throwable subclasses.
func (vm *VM) Throw(className, message string) {
	vm.mu.Lock()
	class, ok := vm.classes[className]
	vm.mu.Unlock()
	if !ok {
		class = vm.DefineClass(className, throwableClass)
	}
	vm.mu.Lock()
	obj := vm.newObject(class)
	obj.message = message
	vm.pending = obj
	vm.mu.Unlock()
}

// throwLocked raises a foreign exception of a builtin class. Callers
// hold vm.mu.
func (vm *VM) throwLocked(className, message string) {
	obj := vm.newObject(vm.classes[className])
	obj.message = message
	vm.pending = obj
}

// ---------------------------------------------------------------------------
// Counters
// ---------------------------------------------------------------------------

// FindClassCount returns the number of class lookups issued for one
// binary class name.
func (vm *VM) FindClassCount(name string) int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.findClasses[name]
}

// MethodLookups returns the total number of method resolutions issued.
func (vm *VM) MethodLookups() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.methodLookups
}

// FieldLookups returns the total number of field resolutions issued.
func (vm *VM) FieldLookups() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fieldLookups
}

// RefOps returns the total number of reference acquire and release
// operations issued.
func (vm *VM) RefOps() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.refOps
}

// LiveGlobalRefs returns the number of durable references outstanding.
func (vm *VM) LiveGlobalRefs() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return len(vm.globals)
}

// LiveLocalRefs returns the number of transient references outstanding.
func (vm *VM) LiveLocalRefs() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return len(vm.locals)
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// GoString decodes the string object behind a reference. Non-string
// references yield "".
func (vm *VM) GoString(ref bridge.RefID) string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	obj := vm.deref(ref)
	if obj == nil {
		return ""
	}
	return string(utf16.Decode(obj.str))
}

// StringObject allocates a string instance and returns a transient
// reference to it.
func (vm *VM) StringObject(s string) bridge.LocalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.newLocal(vm.newString(utf16.Encode([]rune(s))))
}

// newString allocates a string instance. Callers hold vm.mu.
func (vm *VM) newString(units []uint16) *Object {
	obj := vm.newObject(vm.classes[stringClass])
	obj.str = append([]uint16(nil), units...)
	return obj
}

// BootstrapLoader allocates a class-loader instance and returns a
// transient reference to it, ready for Bridge.SetClassLoader.
func (vm *VM) BootstrapLoader() bridge.LocalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.newLocal(vm.newObject(vm.classes[loaderClass]))
}

// Deref exposes the object behind a reference for test assertions.
func (vm *VM) Deref(ref bridge.RefID) *Object {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.deref(ref)
}

func describe(obj *Object) string {
	return fmt.Sprintf("%s@%d", obj.class.Name, obj.id)
}
