package simvm

import (
	"strconv"
	"unicode/utf16"

	"github.com/chazu/jbridge/bridge"
)

// ---------------------------------------------------------------------------
// Builtin classes
// ---------------------------------------------------------------------------

const (
	objectClass = "java.lang.Object"
	classClass  = "java.lang.Class"
	stringClass = "java.lang.String"
	loaderClass = "java.lang.ClassLoader"

	throwableClass         = "java.lang.Throwable"
	runtimeException       = "java.lang.RuntimeException"
	nullPointerException   = "java.lang.NullPointerException"
	numberFormatException  = "java.lang.NumberFormatException"
	classNotFoundException = "java.lang.ClassNotFoundException"
	noClassDefFoundError   = "java.lang.NoClassDefFoundError"
	noSuchMethodError      = "java.lang.NoSuchMethodError"
	noSuchFieldError       = "java.lang.NoSuchFieldError"
	instantiationError     = "java.lang.InstantiationError"
)

func (vm *VM) installBuiltins() {
	obj := vm.DefineClass(objectClass, "")
	obj.AddCtor("()V", nil)
	obj.AddMethod("toString", "()Ljava/lang/String;",
		func(vm *VM, self *Object, _ []bridge.Value) (bridge.Value, error) {
			return vm.StringResult(describe(self)), nil
		})
	obj.AddMethod("hashCode", "()I",
		func(_ *VM, self *Object, _ []bridge.Value) (bridge.Value, error) {
			return bridge.Int(int32(self.id)), nil
		})

	vm.DefineClass(classClass, objectClass).
		AddMethod("getName", "()Ljava/lang/String;",
			func(vm *VM, self *Object, _ []bridge.Value) (bridge.Value, error) {
				if self.classDef == nil {
					return vm.StringResult(""), nil
				}
				return vm.StringResult(self.classDef.Name), nil
			})

	str := vm.DefineClass(stringClass, objectClass)
	str.AddCtor("()V", nil)
	str.AddCtor("(Ljava/lang/String;)V",
		func(vm *VM, self *Object, args []bridge.Value) (bridge.Value, error) {
			if src := vm.Arg(args, 0); src != nil {
				self.str = append([]uint16(nil), src.str...)
			}
			return bridge.Void(), nil
		})
	// String.toString returns the receiver itself, preserving identity.
	str.AddMethod("toString", "()Ljava/lang/String;",
		func(vm *VM, self *Object, _ []bridge.Value) (bridge.Value, error) {
			return vm.RefValue(self), nil
		})
	str.AddMethod("length", "()I",
		func(_ *VM, self *Object, _ []bridge.Value) (bridge.Value, error) {
			return bridge.Int(int32(len(self.str))), nil
		})
	str.AddMethod("concat", "(Ljava/lang/String;)Ljava/lang/String;",
		func(vm *VM, self *Object, args []bridge.Value) (bridge.Value, error) {
			units := append([]uint16(nil), self.str...)
			if other := vm.Arg(args, 0); other != nil {
				units = append(units, other.str...)
			}
			return vm.stringUnitsResult(units), nil
		})

	throwable := vm.DefineClass(throwableClass, objectClass)
	throwable.AddMethod("getMessage", "()Ljava/lang/String;",
		func(vm *VM, self *Object, _ []bridge.Value) (bridge.Value, error) {
			return vm.StringResult(self.message), nil
		})
	for _, name := range []string{
		runtimeException,
		nullPointerException,
		numberFormatException,
		classNotFoundException,
		noClassDefFoundError,
		noSuchMethodError,
		noSuchFieldError,
		instantiationError,
	} {
		vm.DefineClass(name, throwableClass)
	}

	vm.DefineClass("java.lang.Integer", objectClass).
		AddStaticMethod("parseInt", "(Ljava/lang/String;)I",
			func(vm *VM, _ *Object, args []bridge.Value) (bridge.Value, error) {
				text := ""
				if s := vm.Arg(args, 0); s != nil {
					text = string(utf16.Decode(s.str))
				}
				n, err := strconv.ParseInt(text, 10, 32)
				if err != nil {
					vm.Throw(numberFormatException, text)
					return bridge.Value{}, nil
				}
				return bridge.Int(int32(n)), nil
			})

	vm.DefineClass("java.lang.Math", objectClass).
		AddStaticMethod("max", "(II)I",
			func(_ *VM, _ *Object, args []bridge.Value) (bridge.Value, error) {
				a, b := args[0].AsInt(), args[1].AsInt()
				if a > b {
					return bridge.Int(a), nil
				}
				return bridge.Int(b), nil
			})

	loader := vm.DefineClass(loaderClass, objectClass)
	loader.AddCtor("()V", nil)
	loader.AddMethod("loadClass", "(Ljava/lang/String;)Ljava/lang/Class;",
		func(vm *VM, _ *Object, args []bridge.Value) (bridge.Value, error) {
			name := ""
			if s := vm.Arg(args, 0); s != nil {
				name = string(utf16.Decode(s.str))
			}
			vm.mu.Lock()
			vm.findClasses[name]++
			class, ok := vm.classes[name]
			if !ok {
				vm.throwLocked(classNotFoundException, name)
				vm.mu.Unlock()
				return bridge.Value{}, nil
			}
			res := bridge.Ref(vm.newLocal(vm.mirror(class)).ID())
			vm.mu.Unlock()
			return res, nil
		})
}

// ---------------------------------------------------------------------------
// Method-body helpers
// ---------------------------------------------------------------------------

// Arg resolves an object-kind argument, or nil.
func (vm *VM) Arg(args []bridge.Value, i int) *Object {
	if i >= len(args) {
		return nil
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.deref(args[i].AsRef())
}

// RefValue registers a transient reference to an object and wraps it as
// an object-kind result.
func (vm *VM) RefValue(obj *Object) bridge.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return bridge.Ref(vm.newLocal(obj).ID())
}

// StringResult allocates a string instance and wraps a transient
// reference to it as an object-kind result.
func (vm *VM) StringResult(s string) bridge.Value {
	return vm.stringUnitsResult(utf16.Encode([]rune(s)))
}

func (vm *VM) stringUnitsResult(units []uint16) bridge.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return bridge.Ref(vm.newLocal(vm.newString(units)).ID())
}
