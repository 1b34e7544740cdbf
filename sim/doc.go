// Package sim provides the memory simulation engine for the visualizer.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - config.go: engine configuration (technique, memory size, page size, algorithm) and validation
//   - engine.go: frame allocation, deallocation, access simulation and fault handling
//   - replacement.go: the ReplacementPolicy interface consulted when free frames run out
//
// # Architecture
//
// The Engine owns every piece of simulation state: the frame table, the
// allocation table, the counters and the operation log. It is a plain value
// with no process-wide singleton; whoever constructs it owns its lifetime
// (see package server for the per-session owner used by the HTTP API).
//
// Sub-packages hold pure data and loaders:
//   - sim/trace/: operation log records and summaries (no dependency on sim/)
//   - sim/script/: YAML scenarios (configuration + operation list) and replay
//
// # Key Interfaces
//
//   - ReplacementPolicy: register, touch, evict and unregister frames.
//     FIFOPolicy and LRUPolicy implement it; NewReplacementPolicy selects one
//     by algorithm name once, at construction time.
//
// The engine is not safe for concurrent use. Callers serialize operations.
package sim
