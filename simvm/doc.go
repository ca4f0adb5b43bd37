// Package simvm is an in-memory foreign runtime used to exercise the
// bridge without a real virtual machine attached. It contains:
//
//   - a class registry with single-inheritance lookup and
//     programmable method bodies
//   - transient and durable reference tables, with transient
//     references invalidatable per frame
//   - a pending-exception slot matching the one-per-thread discipline
//     the bridge expects
//   - operation counters for asserting cache and reference behavior
//
// The VM implements bridge.Runtime. It is safe for concurrent use;
// method bodies run outside the VM lock and may reenter the runtime.
package simvm
