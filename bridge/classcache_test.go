package bridge_test

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/jbridge/bridge"
	"github.com/chazu/jbridge/simvm"
)

func TestResolveClassCachesLookups(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	first := b.ResolveClass("java.lang.String")
	if !first.IsValid() {
		t.Fatal("java.lang.String did not resolve")
	}
	second := b.ResolveClass("java.lang.String")
	if first.ID() != second.ID() {
		t.Errorf("cache returned different refs: %d then %d", first.ID(), second.ID())
	}
	if got := vm.FindClassCount("java.lang.String"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1", got)
	}
}

func TestResolveClassNormalizesNames(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	dotted := b.ResolveClass("java.lang.Integer")
	slashed := b.ResolveClass("java/lang/Integer")
	if dotted.ID() != slashed.ID() {
		t.Error("dotted and slashed names resolved to different cache entries")
	}
	if got := vm.FindClassCount("java.lang.Integer"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1", got)
	}
}

func TestResolveClassConcurrent(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	const workers = 32
	refs := make([]bridge.GlobalRef, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			refs[i] = b.ResolveClass("java.lang.Math")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	for i := 1; i < workers; i++ {
		if refs[i].ID() != refs[0].ID() {
			t.Fatalf("worker %d got ref %d, worker 0 got %d", i, refs[i].ID(), refs[0].ID())
		}
	}
	if got := vm.FindClassCount("java.lang.Math"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1 under contention", got)
	}
}

func TestResolveClassNegativeCache(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	if ref := b.ResolveClass("no.such.Class"); ref.IsValid() {
		t.Fatal("missing class resolved")
	}
	if ref := b.ResolveClass("no.such.Class"); ref.IsValid() {
		t.Fatal("missing class resolved on second attempt")
	}
	if got := vm.FindClassCount("no.such.Class"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1 (negative entry not cached)", got)
	}

	// The failed lookup's exception must not leak to the next call.
	if vm.ExceptionCheck() {
		t.Error("exception left pending after negative resolution")
	}

	// A later definition does not resurrect the entry.
	vm.DefineClass("no.such.Class", "java.lang.Object")
	if ref := b.ResolveClass("no.such.Class"); ref.IsValid() {
		t.Error("negative entry was resurrected")
	}
}

func TestResolveClassViaLoader(t *testing.T) {
	vm := simvm.New()
	vm.DefineClass("com.example.Widget", "java.lang.Object")

	b := bridge.Attach(vm)
	defer b.Detach()
	b.SetClassLoader(b.WrapLocalRef(vm.BootstrapLoader()))

	ref := b.ResolveClass("com.example.Widget")
	if !ref.IsValid() {
		t.Fatal("loader path did not resolve com.example.Widget")
	}
	if got := vm.FindClassCount("com.example.Widget"); got != 1 {
		t.Errorf("FindClassCount = %d, want 1", got)
	}

	if b.ResolveClass("com.example.Missing").IsValid() {
		t.Error("loader path resolved a missing class")
	}
	if vm.ExceptionCheck() {
		t.Error("loader failure left an exception pending")
	}
}

func TestIsClassAvailable(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)
	defer b.Detach()

	if !b.IsClassAvailable("java.lang.String") {
		t.Error("java.lang.String reported unavailable")
	}
	if b.IsClassAvailable("no.such.Class") {
		t.Error("no.such.Class reported available")
	}
}

func TestDetachReleasesCachedClasses(t *testing.T) {
	vm := simvm.New()
	b := bridge.Attach(vm)

	b.ResolveClass("java.lang.String")
	b.ResolveClass("java.lang.Integer")
	b.ResolveClass("no.such.Class")
	if vm.LiveGlobalRefs() == 0 {
		t.Fatal("expected live durable refs before detach")
	}

	b.Detach()
	if got := vm.LiveGlobalRefs(); got != 0 {
		t.Errorf("LiveGlobalRefs after Detach = %d, want 0", got)
	}
}
