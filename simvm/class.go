package simvm

import "github.com/chazu/jbridge/bridge"

// ---------------------------------------------------------------------------
// Classes, methods and fields
// ---------------------------------------------------------------------------

// MethodFunc is a programmable method body. self is nil for static
// methods and constructors receive the fresh instance. Returning a
// non-nil error raises a foreign exception carrying the error text.
type MethodFunc func(vm *VM, self *Object, args []bridge.Value) (bridge.Value, error)

// Method is one resolvable method slot.
type Method struct {
	ID     bridge.MethodID
	Class  *Class
	Name   string
	Sig    string
	Static bool
	Fn     MethodFunc
}

// Field is one resolvable field slot.
type Field struct {
	ID     bridge.FieldID
	Class  *Class
	Name   string
	Sig    string
	Static bool
}

// Class is a registered class. Member lookup walks the superclass chain.
type Class struct {
	vm      *VM
	Name    string // binary (dotted) name
	Super   *Class
	methods []*Method
	fields  []*Field
	statics map[bridge.FieldID]bridge.Value
}

type memberSel struct {
	name   string
	sig    string
	static bool
}

// DefineClass registers a class under its binary (dotted) name. The
// superclass must already be defined; "" means no superclass.
func (vm *VM) DefineClass(name, super string) *Class {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if c, ok := vm.classes[name]; ok {
		return c
	}
	c := &Class{
		vm:      vm,
		Name:    name,
		statics: make(map[bridge.FieldID]bridge.Value),
	}
	if super != "" {
		c.Super = vm.classes[super]
	}
	vm.classes[name] = c
	return c
}

// Lookup returns a defined class, or nil.
func (vm *VM) Lookup(name string) *Class {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.classes[name]
}

// AddMethod registers an instance method body.
func (c *Class) AddMethod(name, sig string, fn MethodFunc) *Class {
	return c.addMethod(name, sig, false, fn)
}

// AddStaticMethod registers a static method body.
func (c *Class) AddStaticMethod(name, sig string, fn MethodFunc) *Class {
	return c.addMethod(name, sig, true, fn)
}

// AddCtor registers a constructor. The body receives the fresh instance
// as self; its result value is ignored.
func (c *Class) AddCtor(sig string, fn MethodFunc) *Class {
	return c.addMethod(ctorName, sig, false, fn)
}

func (c *Class) addMethod(name, sig string, static bool, fn MethodFunc) *Class {
	vm := c.vm
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.nextMethod++
	m := &Method{
		ID:     vm.nextMethod,
		Class:  c,
		Name:   name,
		Sig:    sig,
		Static: static,
		Fn:     fn,
	}
	c.methods = append(c.methods, m)
	vm.methodsByID[m.ID] = m
	return c
}

// AddField registers an instance field slot.
func (c *Class) AddField(name, sig string) *Class {
	return c.addField(name, sig, false)
}

// AddStaticField registers a static field slot with a zero initial value.
func (c *Class) AddStaticField(name, sig string) *Class {
	return c.addField(name, sig, true)
}

func (c *Class) addField(name, sig string, static bool) *Class {
	vm := c.vm
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.nextField++
	f := &Field{
		ID:     vm.nextField,
		Class:  c,
		Name:   name,
		Sig:    sig,
		Static: static,
	}
	c.fields = append(c.fields, f)
	vm.fieldsByID[f.ID] = f
	return c
}

// findMethod walks the superclass chain for a matching method slot.
// Callers hold vm.mu.
func (c *Class) findMethod(sel memberSel) *Method {
	for cur := c; cur != nil; cur = cur.Super {
		for _, m := range cur.methods {
			if m.Name == sel.name && m.Sig == sel.sig && m.Static == sel.static {
				return m
			}
		}
	}
	return nil
}

// findField walks the superclass chain for a matching field slot.
// Callers hold vm.mu.
func (c *Class) findField(sel memberSel) *Field {
	for cur := c; cur != nil; cur = cur.Super {
		for _, f := range cur.fields {
			if f.Name == sel.name && f.Sig == sel.sig && f.Static == sel.static {
				return f
			}
		}
	}
	return nil
}

const ctorName = "<init>"
