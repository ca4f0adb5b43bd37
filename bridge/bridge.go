package bridge

import (
	"sync"

	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Bridge: one attachment to a foreign runtime
// ---------------------------------------------------------------------------

// CallRecorder receives one record per foreign call issued through the
// façade. Implementations must be safe for concurrent use.
type CallRecorder interface {
	RecordCall(op, class, member, signature string, ok bool)
}

// Bridge holds the process-wide state for one attached foreign runtime:
// the injected capability set, the class and member caches and the
// optional class-loader handle. All methods are safe for concurrent use.
type Bridge struct {
	rt  Runtime
	log commonlog.Logger

	classes classCache
	methods memberCache[MethodID]
	fields  memberCache[FieldID]

	mu       sync.Mutex
	loader   Object
	sink     ExceptionSink
	recorder CallRecorder
}

// Attach wraps a foreign runtime. The caches start empty and are populated
// lazily; they live until Detach.
func Attach(rt Runtime) *Bridge {
	b := &Bridge{
		rt:  rt,
		log: commonlog.GetLogger("jbridge"),
	}
	b.classes.entries = make(map[string]GlobalRef)
	b.methods.entries = make(map[memberKey]MethodID)
	b.methods.lookup = lookupMethodID
	b.fields.entries = make(map[memberKey]FieldID)
	b.fields.lookup = lookupFieldID
	b.sink = b.logExceptionSink
	return b
}

// Detach releases every durable reference owned by the caches and the
// class-loader handle and empties the caches. Object handles created
// through this bridge must be released before detaching.
func (b *Bridge) Detach() {
	env := b.Env()

	b.mu.Lock()
	loader := b.loader
	b.loader = Object{}
	b.mu.Unlock()
	loader.Release()

	b.classes.mu.Lock()
	for _, ref := range b.classes.entries {
		if ref.IsValid() {
			env.rt.DeleteGlobalRef(ref)
		}
	}
	b.classes.entries = make(map[string]GlobalRef)
	b.classes.mu.Unlock()

	b.methods.clear()
	b.fields.clear()
}

// SetClassLoader installs the class-loader handle used by ResolveClass for
// the reflective load-class path. The bridge takes over the caller's share
// of the handle. Passing an invalid handle reverts to the runtime's direct
// class lookup.
func (b *Bridge) SetClassLoader(loader Object) {
	b.mu.Lock()
	old := b.loader
	b.loader = loader
	b.mu.Unlock()
	old.Release()
}

// classLoader returns the installed loader handle, if any.
func (b *Bridge) classLoader() (Object, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loader, b.loader.IsValid()
}

// SetExceptionSink installs a callback invoked with the pending throwable
// before it is cleared. Passing nil restores the default sink, which only
// logs. The throwable reference is transient and owned by the translator.
func (b *Bridge) SetExceptionSink(sink ExceptionSink) {
	b.mu.Lock()
	if sink == nil {
		sink = b.logExceptionSink
	}
	b.sink = sink
	b.mu.Unlock()
}

// SetRecorder installs a call recorder. Passing nil disables recording.
func (b *Bridge) SetRecorder(r CallRecorder) {
	b.mu.Lock()
	b.recorder = r
	b.mu.Unlock()
}

// record reports one façade operation to the installed recorder.
func (b *Bridge) record(op, class, member, signature string, ok bool) {
	b.mu.Lock()
	r := b.recorder
	b.mu.Unlock()
	if r != nil {
		r.RecordCall(op, class, member, signature, ok)
	}
}

// IsClassAvailable returns true if the named class can be resolved.
func (b *Bridge) IsClassAvailable(className string) bool {
	return b.ResolveClass(className).IsValid()
}
