package bridge_test

import (
	"errors"
	"testing"

	"github.com/chazu/jbridge/bridge"
	"github.com/chazu/jbridge/simvm"
)

var errTest = errors.New("boom")

func TestStaticCallTranslatesExceptionToZero(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	bad := b.NewString("xyz")
	defer bad.Release()
	if got := b.CallStaticIntMethod("java.lang.Integer", "parseInt",
		"(Ljava/lang/String;)I", bad.Value()); got != 0 {
		t.Errorf("parseInt(\"xyz\") = %d, want 0", got)
	}
	if vm.ExceptionCheck() {
		t.Fatal("exception left pending after failed call")
	}

	// The exception must not poison later calls on the same class.
	good := b.NewString("42")
	defer good.Release()
	if got := b.CallStaticIntMethod("java.lang.Integer", "parseInt",
		"(Ljava/lang/String;)I", good.Value()); got != 42 {
		t.Errorf("parseInt(\"42\") = %d, want 42", got)
	}
}

func TestInstanceCallFailureYieldsZero(t *testing.T) {
	vm := simvm.New()
	vm.DefineClass("com.example.Thrower", "java.lang.Object").
		AddCtor("()V", nil).
		AddMethod("fail", "()I",
			func(_ *simvm.VM, _ *simvm.Object, _ []bridge.Value) (bridge.Value, error) {
				return bridge.Value{}, errTest
			})

	b := bridge.Attach(vm)
	defer b.Detach()

	obj := b.New("com.example.Thrower")
	defer obj.Release()
	if got := obj.CallIntMethod("fail", ""); got != 0 {
		t.Errorf("throwing call = %d, want 0", got)
	}
	if vm.ExceptionCheck() {
		t.Error("exception left pending")
	}
}

func TestObjectCallFailureYieldsInvalidHandle(t *testing.T) {
	vm := simvm.New()
	vm.DefineClass("com.example.Thrower", "java.lang.Object").
		AddCtor("()V", nil).
		AddMethod("make", "()Ljava/lang/Object;",
			func(_ *simvm.VM, _ *simvm.Object, _ []bridge.Value) (bridge.Value, error) {
				return bridge.Value{}, errTest
			})

	b := bridge.Attach(vm)
	defer b.Detach()

	obj := b.New("com.example.Thrower")
	defer obj.Release()
	res := obj.CallObjectMethod("make", "")
	defer res.Release()
	if res.IsValid() {
		t.Error("throwing object call produced a valid handle")
	}
}

func TestCallStaticByNameAndByValueAgree(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	byName := b.CallStaticIntMethod("java.lang.Math", "max", "(II)I",
		bridge.Int(2), bridge.Int(9))

	class := b.ResolveClass("java.lang.Math")
	byValue := b.CallStaticOn(class.ID(), "max", "(II)I", bridge.KindInt,
		bridge.Int(2), bridge.Int(9))

	if byName != 9 || byValue.AsInt() != 9 {
		t.Errorf("max = %d by name, %d by value, want 9", byName, byValue.AsInt())
	}
}

func TestObjectResultsChain(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	a := b.NewString("foo")
	defer a.Release()
	suffix := b.NewString("bar")
	defer suffix.Release()

	joined := a.CallObjectMethod("concat", "(Ljava/lang/String;)Ljava/lang/String;", suffix.Value())
	defer joined.Release()
	if got := joined.ToString(); got != "foobar" {
		t.Errorf("concat = %q, want %q", got, "foobar")
	}
	if got := joined.CallIntMethod("length", ""); got != 6 {
		t.Errorf("length = %d, want 6", got)
	}
}

func TestStaticFields(t *testing.T) {
	vm := simvm.New()
	vm.DefineClass("com.example.Config", "java.lang.Object").
		AddStaticField("limit", "I")

	b := bridge.Attach(vm)
	defer b.Detach()

	b.SetStaticIntField("com.example.Config", "limit", 128)
	if got := b.GetStaticIntField("com.example.Config", "limit"); got != 128 {
		t.Errorf("static limit = %d, want 128", got)
	}

	class := b.ResolveClass("com.example.Config")
	got := b.GetStaticFieldOn(class.ID(), "limit", "", bridge.KindInt)
	if got.AsInt() != 128 {
		t.Errorf("static limit by class value = %d, want 128", got.AsInt())
	}
	b.SetStaticFieldOn(class.ID(), "limit", "", bridge.Int(64))
	if got := b.GetStaticIntField("com.example.Config", "limit"); got != 64 {
		t.Errorf("static limit after by-value write = %d, want 64", got)
	}
}

func TestObjectFields(t *testing.T) {
	vm := simvm.New()
	vm.DefineClass("com.example.Holder", "java.lang.Object").
		AddCtor("()V", nil).
		AddField("name", "Ljava/lang/String;").
		AddField("count", "I")

	b := bridge.Attach(vm)
	defer b.Detach()

	obj := b.New("com.example.Holder")
	defer obj.Release()

	obj.SetIntField("count", 3)
	if got := obj.GetIntField("count"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}

	name := b.NewString("widget")
	defer name.Release()
	obj.SetObjectField("name", "Ljava/lang/String;", name.Ref())
	read := obj.GetObjectField("name", "Ljava/lang/String;")
	defer read.Release()
	if !read.IsSame(name) {
		t.Error("object field lost identity")
	}
	if got := read.ToString(); got != "widget" {
		t.Errorf("name = %q, want %q", got, "widget")
	}
}

func TestMissingFieldYieldsZero(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	obj := b.NewObject("java.lang.String", "()V")
	defer obj.Release()
	if got := obj.GetIntField("nope"); got != 0 {
		t.Errorf("missing field = %d, want 0", got)
	}
	if vm.ExceptionCheck() {
		t.Error("failed field resolution left an exception pending")
	}
}

func TestExceptionSinkSeesThrowable(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	var messages []string
	b.SetExceptionSink(func(env *bridge.Env, throwable bridge.LocalRef) {
		holder := b.WrapRefNamed(throwable.ID(), "java.lang.Throwable")
		defer holder.Release()
		msg := holder.CallObjectMethod("getMessage", "()Ljava/lang/String;")
		defer msg.Release()
		messages = append(messages, msg.StringValue())
	})

	bad := b.NewString("nope")
	defer bad.Release()
	b.CallStaticIntMethod("java.lang.Integer", "parseInt",
		"(Ljava/lang/String;)I", bad.Value())

	if len(messages) == 0 {
		t.Fatal("sink never invoked")
	}
	found := false
	for _, m := range messages {
		if m == "nope" {
			found = true
		}
	}
	if !found {
		t.Errorf("sink messages %q do not include the throwable detail", messages)
	}
}

func TestRecorderSeesFacadeTraffic(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	var events []string
	b.SetRecorder(recorderFunc(func(op, class, member, signature string, ok bool) {
		events = append(events, op+" "+class+"."+member)
	}))

	obj := b.NewObject("java.lang.String", "()V")
	defer obj.Release()
	obj.CallIntMethod("length", "")

	want := []string{
		"new java.lang.String.<init>",
		"call java.lang.String.length",
	}
	if len(events) != len(want) {
		t.Fatalf("recorded %d events %q, want %d", len(events), events, len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}

type recorderFunc func(op, class, member, signature string, ok bool)

func (f recorderFunc) RecordCall(op, class, member, signature string, ok bool) {
	f(op, class, member, signature, ok)
}
