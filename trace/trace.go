// Package trace records the foreign calls issued through a bridge and
// serializes the resulting log with canonical CBOR encoding.
package trace

import (
	"fmt"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode holds CBOR encoding options with canonical mode for
// deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Event is one recorded foreign call.
type Event struct {
	Op        string `cbor:"op"`
	Class     string `cbor:"class,omitempty"`
	Member    string `cbor:"member"`
	Signature string `cbor:"sig"`
	OK        bool   `cbor:"ok"`
}

// Log is an ordered sequence of recorded events.
type Log struct {
	Events []Event `cbor:"events"`
}

// MarshalLog serializes a Log to CBOR bytes.
func MarshalLog(l *Log) ([]byte, error) {
	return cborEncMode.Marshal(l)
}

// UnmarshalLog deserializes a Log from CBOR bytes.
func UnmarshalLog(data []byte) (*Log, error) {
	var l Log
	if err := cbor.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("trace: unmarshal log: %w", err)
	}
	return &l, nil
}

// Recorder collects events. It implements bridge.CallRecorder and is safe
// for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordCall appends one event.
func (r *Recorder) RecordCall(op, class, member, signature string, ok bool) {
	r.mu.Lock()
	r.events = append(r.events, Event{
		Op:        op,
		Class:     class,
		Member:    member,
		Signature: signature,
		OK:        ok,
	})
	r.mu.Unlock()
}

// Snapshot returns a copy of the recorded events in order.
func (r *Recorder) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Log returns the recorded events as a Log.
func (r *Recorder) Log() *Log {
	return &Log{Events: r.Snapshot()}
}

// WriteFile serializes the recorded events to a file.
func (r *Recorder) WriteFile(path string) error {
	data, err := MarshalLog(r.Log())
	if err != nil {
		return fmt.Errorf("trace: marshal log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("trace: write %s: %w", path, err)
	}
	return nil
}

// ReadFile deserializes a Log from a file.
func ReadFile(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trace: read %s: %w", path, err)
	}
	return UnmarshalLog(data)
}
