package simvm

import (
	"strings"

	"github.com/chazu/jbridge/bridge"
)

// ---------------------------------------------------------------------------
// bridge.Runtime implementation
// ---------------------------------------------------------------------------
//
// Bookkeeping happens under vm.mu; method bodies run with the lock
// released so they may reenter the runtime.

// FindClass implements bridge.Runtime.
func (vm *VM) FindClass(name string) bridge.LocalRef {
	binary := strings.ReplaceAll(name, "/", ".")
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.findClasses[binary]++
	class, ok := vm.classes[binary]
	if !ok {
		vm.throwLocked(noClassDefFoundError, binary)
		return bridge.LocalRef{}
	}
	return vm.newLocal(vm.mirror(class))
}

// GetMethodID implements bridge.Runtime.
func (vm *VM) GetMethodID(class bridge.RefID, name, signature string, static bool) bridge.MethodID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.methodLookups++
	mirror := vm.deref(class)
	if mirror == nil || mirror.classDef == nil {
		vm.throwLocked(noSuchMethodError, name+signature)
		return 0
	}
	m := mirror.classDef.findMethod(memberSel{name: name, sig: signature, static: static})
	if m == nil {
		vm.throwLocked(noSuchMethodError, mirror.classDef.Name+"."+name+signature)
		return 0
	}
	return m.ID
}

// GetFieldID implements bridge.Runtime.
func (vm *VM) GetFieldID(class bridge.RefID, name, signature string, static bool) bridge.FieldID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.fieldLookups++
	mirror := vm.deref(class)
	if mirror == nil || mirror.classDef == nil {
		vm.throwLocked(noSuchFieldError, name)
		return 0
	}
	f := mirror.classDef.findField(memberSel{name: name, sig: signature, static: static})
	if f == nil {
		vm.throwLocked(noSuchFieldError, mirror.classDef.Name+"."+name)
		return 0
	}
	return f.ID
}

// NewObject implements bridge.Runtime.
func (vm *VM) NewObject(class bridge.RefID, ctor bridge.MethodID, args []bridge.Value) bridge.LocalRef {
	vm.mu.Lock()
	mirror := vm.deref(class)
	m := vm.methodsByID[ctor]
	if mirror == nil || mirror.classDef == nil || m == nil {
		vm.throwLocked(instantiationError, "")
		vm.mu.Unlock()
		return bridge.LocalRef{}
	}
	obj := vm.newObject(mirror.classDef)
	vm.mu.Unlock()

	if m.Fn != nil {
		if _, err := m.Fn(vm, obj, args); err != nil {
			vm.Throw(runtimeException, err.Error())
			return bridge.LocalRef{}
		}
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.newLocal(obj)
}

// CallMethod implements bridge.Runtime.
func (vm *VM) CallMethod(obj bridge.RefID, method bridge.MethodID, ret bridge.Kind, args []bridge.Value) bridge.Value {
	vm.mu.Lock()
	self := vm.deref(obj)
	m := vm.methodsByID[method]
	if self == nil || m == nil || m.Fn == nil {
		vm.throwLocked(nullPointerException, "")
		vm.mu.Unlock()
		return bridge.Value{}
	}
	vm.mu.Unlock()
	return vm.invoke(m, self, args)
}

// CallStaticMethod implements bridge.Runtime.
func (vm *VM) CallStaticMethod(class bridge.RefID, method bridge.MethodID, ret bridge.Kind, args []bridge.Value) bridge.Value {
	vm.mu.Lock()
	m := vm.methodsByID[method]
	if m == nil || m.Fn == nil {
		vm.throwLocked(nullPointerException, "")
		vm.mu.Unlock()
		return bridge.Value{}
	}
	vm.mu.Unlock()
	return vm.invoke(m, nil, args)
}

// invoke runs a method body with the lock released.
func (vm *VM) invoke(m *Method, self *Object, args []bridge.Value) bridge.Value {
	res, err := m.Fn(vm, self, args)
	if err != nil {
		vm.Throw(runtimeException, err.Error())
		return bridge.Value{}
	}
	return res
}

// GetField implements bridge.Runtime.
func (vm *VM) GetField(obj bridge.RefID, field bridge.FieldID, kind bridge.Kind) bridge.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	self := vm.deref(obj)
	if self == nil {
		vm.throwLocked(nullPointerException, "")
		return bridge.Value{}
	}
	return self.fields[field]
}

// SetField implements bridge.Runtime.
func (vm *VM) SetField(obj bridge.RefID, field bridge.FieldID, value bridge.Value) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	self := vm.deref(obj)
	if self == nil {
		vm.throwLocked(nullPointerException, "")
		return
	}
	self.fields[field] = value
}

// GetStaticField implements bridge.Runtime.
func (vm *VM) GetStaticField(class bridge.RefID, field bridge.FieldID, kind bridge.Kind) bridge.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	f := vm.fieldsByID[field]
	if f == nil {
		vm.throwLocked(noSuchFieldError, "")
		return bridge.Value{}
	}
	return f.Class.statics[field]
}

// SetStaticField implements bridge.Runtime.
func (vm *VM) SetStaticField(class bridge.RefID, field bridge.FieldID, value bridge.Value) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	f := vm.fieldsByID[field]
	if f == nil {
		vm.throwLocked(noSuchFieldError, "")
		return
	}
	f.Class.statics[field] = value
}

// GetObjectClass implements bridge.Runtime.
func (vm *VM) GetObjectClass(obj bridge.RefID) bridge.LocalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	self := vm.deref(obj)
	if self == nil {
		return bridge.LocalRef{}
	}
	return vm.newLocal(vm.mirror(self.class))
}

// IsSameObject implements bridge.Runtime.
func (vm *VM) IsSameObject(a, b bridge.RefID) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.deref(a) == vm.deref(b)
}

// NewGlobalRef implements bridge.Runtime.
func (vm *VM) NewGlobalRef(ref bridge.RefID) bridge.GlobalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	obj := vm.deref(ref)
	if obj == nil {
		return bridge.GlobalRef{}
	}
	vm.nextRef++
	vm.globals[vm.nextRef] = obj
	vm.refOps++
	return bridge.GlobalRefOf(vm.nextRef)
}

// NewLocalRef implements bridge.Runtime.
func (vm *VM) NewLocalRef(ref bridge.RefID) bridge.LocalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.newLocal(vm.deref(ref))
}

// DeleteGlobalRef implements bridge.Runtime.
func (vm *VM) DeleteGlobalRef(ref bridge.GlobalRef) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if _, ok := vm.globals[ref.ID()]; ok {
		delete(vm.globals, ref.ID())
		vm.refOps++
	}
}

// DeleteLocalRef implements bridge.Runtime.
func (vm *VM) DeleteLocalRef(ref bridge.LocalRef) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if _, ok := vm.locals[ref.ID()]; ok {
		delete(vm.locals, ref.ID())
		vm.refOps++
	}
}

// ExceptionCheck implements bridge.Runtime.
func (vm *VM) ExceptionCheck() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pending != nil
}

// ExceptionOccurred implements bridge.Runtime.
func (vm *VM) ExceptionOccurred() bridge.LocalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.pending == nil {
		return bridge.LocalRef{}
	}
	return vm.newLocal(vm.pending)
}

// ExceptionClear implements bridge.Runtime.
func (vm *VM) ExceptionClear() {
	vm.mu.Lock()
	vm.pending = nil
	vm.mu.Unlock()
}

// NewString implements bridge.Runtime.
func (vm *VM) NewString(units []uint16) bridge.LocalRef {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.newLocal(vm.newString(units))
}

// GetStringLength implements bridge.Runtime.
func (vm *VM) GetStringLength(str bridge.RefID) int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	obj := vm.deref(str)
	if obj == nil {
		return 0
	}
	return len(obj.str)
}

// GetStringChars implements bridge.Runtime.
func (vm *VM) GetStringChars(str bridge.RefID) []uint16 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	obj := vm.deref(str)
	if obj == nil {
		return nil
	}
	return append([]uint16(nil), obj.str...)
}
