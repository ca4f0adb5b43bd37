package bridge_test

import (
	"testing"

	"github.com/chazu/jbridge/bridge"
	"github.com/chazu/jbridge/simvm"
)

func TestHandleSurvivesFrameInvalidation(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	str := b.NewString("hello")
	defer str.Release()
	if !str.IsValid() {
		t.Fatal("string did not construct")
	}

	// Dropping every transient reference must not affect the handle:
	// it holds a durable reference of its own.
	vm.InvalidateLocals()
	if got := str.ToString(); got != "hello" {
		t.Errorf("after frame invalidation ToString() = %q, want %q", got, "hello")
	}
}

func TestZeroObjectIsSafe(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	var o bridge.Object
	if o.IsValid() {
		t.Error("zero Object is valid")
	}
	if o.Ref() != bridge.NilRef || o.Class() != bridge.NilRef {
		t.Error("zero Object carries references")
	}
	if got := o.CallIntMethod("length", ""); got != 0 {
		t.Errorf("call on zero Object = %d, want 0", got)
	}
	if got := o.ToString(); got != "" {
		t.Errorf("ToString on zero Object = %q, want empty", got)
	}
	o.Release() // must not panic

	var other bridge.Object
	if !o.IsSame(other) {
		t.Error("two zero Objects compare unequal")
	}
	_ = b
}

func TestIsSameTracksIdentity(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	str := b.NewString("x")
	defer str.Release()

	// String.toString returns the receiver, so the result handle denotes
	// the same identity through a different reference.
	same := str.CallObjectMethod("toString", "()Ljava/lang/String;")
	defer same.Release()
	if same.Ref() == str.Ref() {
		t.Fatal("expected distinct references to one object")
	}
	if !str.IsSame(same) {
		t.Error("IsSame = false for one identity behind two references")
	}

	other := b.NewString("x")
	defer other.Release()
	if str.IsSame(other) {
		t.Error("IsSame = true for distinct objects with equal contents")
	}
}

func TestAssignSameIdentityIsFree(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	str := b.NewString("x")
	defer str.Release()
	alias := vm.NewLocalRef(str.Ref())

	before := vm.RefOps()
	str.Assign(alias.ID())
	if delta := vm.RefOps() - before; delta != 0 {
		t.Errorf("same-identity Assign issued %d reference operations, want 0", delta)
	}
	if got := str.ToString(); got != "x" {
		t.Errorf("after no-op Assign ToString() = %q", got)
	}
}

func TestAssignReplacesTarget(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	str := b.NewString("old")
	replacement := b.NewString("new")
	defer replacement.Release()

	str.Assign(replacement.Ref())
	if got := str.ToString(); got != "new" {
		t.Errorf("after Assign ToString() = %q, want %q", got, "new")
	}
	if !str.IsSame(replacement) {
		t.Error("assigned handle does not share identity with the replacement")
	}
	str.Release()
}

func TestReleaseDropsDurableRefsExactlyOnce(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	baseline := vm.LiveGlobalRefs()
	str := b.NewString("x")
	if vm.LiveGlobalRefs() <= baseline {
		t.Fatal("handle holds no durable references")
	}
	str.Release()
	if got := vm.LiveGlobalRefs(); got != baseline {
		t.Errorf("LiveGlobalRefs after Release = %d, want %d", got, baseline)
	}
	str.Release() // extra release of a dead handle must not corrupt anything
	if got := vm.LiveGlobalRefs(); got != baseline {
		t.Errorf("LiveGlobalRefs after double Release = %d, want %d", got, baseline)
	}
}

func TestRetainSharesOwnership(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	baseline := vm.LiveGlobalRefs()
	str := b.NewString("x")
	share := str.Retain()

	str.Release()
	if got := share.ToString(); got != "x" {
		t.Errorf("retained share broken after first Release: %q", got)
	}
	share.Release()
	if got := vm.LiveGlobalRefs(); got != baseline {
		t.Errorf("LiveGlobalRefs after last Release = %d, want %d", got, baseline)
	}
}

func TestNewObjectUsesCaches(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	first := b.NewObject("java.lang.String", "()V")
	defer first.Release()
	second := b.NewObject("java.lang.String", "()V")
	defer second.Release()
	if !first.IsValid() || !second.IsValid() {
		t.Fatal("default construction failed")
	}
	if got := vm.FindClassCount("java.lang.String"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1", got)
	}
	if first.ClassName() != "java.lang.String" {
		t.Errorf("ClassName = %q", first.ClassName())
	}
}

func TestNewObjectOfResolvedClass(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	class := b.ResolveClass("java.lang.String")
	obj := b.NewObjectOf(class.ID(), "()V")
	defer obj.Release()
	if !obj.IsValid() {
		t.Fatal("construction from class value failed")
	}
	if obj.ClassName() != "" {
		t.Errorf("ClassName = %q, want empty for bare class value", obj.ClassName())
	}
}

func TestNewObjectMissingClass(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	obj := b.NewObject("no.such.Class", "()V")
	defer obj.Release()
	if obj.IsValid() {
		t.Error("construction of a missing class succeeded")
	}
	if vm.ExceptionCheck() {
		t.Error("failed construction left an exception pending")
	}
}

func TestConstructorFailureYieldsInvalidHandle(t *testing.T) {
	vm := simvm.New()
	vm.DefineClass("com.example.Fragile", "java.lang.Object").
		AddCtor("()V",
			func(_ *simvm.VM, _ *simvm.Object, _ []bridge.Value) (bridge.Value, error) {
				return bridge.Value{}, errTest
			})

	b := bridge.Attach(vm)
	defer b.Detach()

	obj := b.New("com.example.Fragile")
	defer obj.Release()
	if obj.IsValid() {
		t.Error("throwing constructor produced a valid handle")
	}
	if vm.ExceptionCheck() {
		t.Error("constructor exception left pending")
	}
}

func TestWrapRefNamedSharesCachedClass(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	str := b.NewString("abc")
	defer str.Release()

	wrapped := b.WrapRefNamed(str.Ref(), "java.lang.String")
	defer wrapped.Release()
	if !wrapped.IsValid() {
		t.Fatal("WrapRefNamed failed")
	}
	if !wrapped.IsSame(str) {
		t.Error("wrapped handle lost identity")
	}
	if got := wrapped.CallIntMethod("length", ""); got != 3 {
		t.Errorf("length through wrapped handle = %d, want 3", got)
	}
	if got := vm.FindClassCount("java.lang.String"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1", got)
	}
}
