package simvm

import (
	"testing"

	"github.com/chazu/jbridge/bridge"
)

func TestFindClassMissingThrows(t *testing.T) {
	vm := New()
	ref := vm.FindClass("no/such/Class")
	if ref.IsValid() {
		t.Fatal("missing class resolved")
	}
	if !vm.ExceptionCheck() {
		t.Fatal("no exception pending after failed lookup")
	}
	thrown := vm.ExceptionOccurred()
	if !thrown.IsValid() {
		t.Fatal("pending exception has no throwable")
	}
	if got := vm.Deref(thrown.ID()).Class().Name; got != noClassDefFoundError {
		t.Errorf("throwable class = %s", got)
	}
	vm.ExceptionClear()
	if vm.ExceptionCheck() {
		t.Error("exception survived clear")
	}
}

func TestMethodLookupWalksSuperChain(t *testing.T) {
	vm := New()
	vm.DefineClass("com.example.Base", "java.lang.Object").
		AddMethod("answer", "()I",
			func(_ *VM, _ *Object, _ []bridge.Value) (bridge.Value, error) {
				return bridge.Int(7), nil
			})
	vm.DefineClass("com.example.Derived", "com.example.Base").
		AddCtor("()V", nil)

	class := vm.FindClass("com/example/Derived")
	id := vm.GetMethodID(class.ID(), "answer", "()I", false)
	if id == 0 {
		t.Fatal("inherited method did not resolve")
	}

	ctor := vm.GetMethodID(class.ID(), "<init>", "()V", false)
	obj := vm.NewObject(class.ID(), ctor, nil)
	if got := vm.CallMethod(obj.ID(), id, bridge.KindInt, nil); got.AsInt() != 7 {
		t.Errorf("inherited answer = %d, want 7", got.AsInt())
	}
}

func TestLocalRefInvalidation(t *testing.T) {
	vm := New()
	str := vm.StringObject("x")
	if vm.Deref(str.ID()) == nil {
		t.Fatal("fresh transient ref does not resolve")
	}
	vm.InvalidateLocals()
	if vm.Deref(str.ID()) != nil {
		t.Error("transient ref survived frame invalidation")
	}
}

func TestGlobalRefSurvivesInvalidation(t *testing.T) {
	vm := New()
	str := vm.StringObject("x")
	global := vm.NewGlobalRef(str.ID())
	vm.InvalidateLocals()
	if vm.Deref(global.ID()) == nil {
		t.Fatal("durable ref did not survive frame invalidation")
	}
	if got := vm.GoString(global.ID()); got != "x" {
		t.Errorf("GoString = %q", got)
	}
	vm.DeleteGlobalRef(global)
	if vm.Deref(global.ID()) != nil {
		t.Error("durable ref survived deletion")
	}
}

func TestIsSameObjectComparesIdentity(t *testing.T) {
	vm := New()
	str := vm.StringObject("x")
	alias := vm.NewLocalRef(str.ID())
	other := vm.StringObject("x")

	if !vm.IsSameObject(str.ID(), alias.ID()) {
		t.Error("aliases compare unequal")
	}
	if vm.IsSameObject(str.ID(), other.ID()) {
		t.Error("distinct objects compare equal")
	}
	if !vm.IsSameObject(bridge.NilRef, bridge.NilRef) {
		t.Error("two nil refs compare unequal")
	}
}

func TestStaticFieldStorage(t *testing.T) {
	vm := New()
	vm.DefineClass("com.example.Config", "java.lang.Object").
		AddStaticField("limit", "I")

	class := vm.FindClass("com/example/Config")
	id := vm.GetFieldID(class.ID(), "limit", "I", true)
	if id == 0 {
		t.Fatal("static field did not resolve")
	}
	vm.SetStaticField(class.ID(), id, bridge.Int(9))
	if got := vm.GetStaticField(class.ID(), id, bridge.KindInt); got.AsInt() != 9 {
		t.Errorf("static field = %d, want 9", got.AsInt())
	}
}

func TestCountersTrackOperations(t *testing.T) {
	vm := New()
	vm.FindClass("java/lang/String")
	vm.FindClass("java/lang/String")
	if got := vm.FindClassCount("java.lang.String"); got != 2 {
		t.Errorf("FindClassCount = %d, want 2", got)
	}

	before := vm.RefOps()
	str := vm.StringObject("x")
	global := vm.NewGlobalRef(str.ID())
	vm.DeleteGlobalRef(global)
	if delta := vm.RefOps() - before; delta != 3 {
		t.Errorf("RefOps delta = %d, want 3", delta)
	}
}
