// Package bridge wraps a reflection-style foreign runtime behind typed
// object handles.
//
// This package contains:
//   - The Runtime capability set the foreign runtime is injected through
//   - Transient (LocalRef) and durable (GlobalRef) reference types with a
//     single promotion operation
//   - Process-wide class and member resolution caches with negative caching
//   - Refcounted object handles that keep foreign objects alive
//   - A typed call/field-access façade that clears pending foreign
//     exceptions after every call
package bridge
