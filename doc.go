// Package wro4j assembles named groups of static web resources (styles,
// scripts), runs each resource through an ordered chain of pre-processors,
// merges the results and runs the merged content through a chain of
// post-processors, caching the final artifact per (group, type, minimize).
//
// The module is organized around explicit contracts wired together by a
// small, sealed object-graph injector:
//
//   - model: immutable Resource/Group entity graph and the model factory
//     contract used to load it
//   - config: runtime configuration, the request-scoped context and the
//     YAML model factory
//   - locator: resource content acquisition (filesystem, in-memory)
//   - processor: pre/post processor contracts, the processor registry and
//     the merge engine
//   - hashing: content fingerprint strategies
//   - naming: output renaming strategies (fingerprint versioning)
//   - cache: cache key/entry contract, LRU and SQLite backed strategies,
//     and the synchronized decorator guaranteeing one computation per key
//   - injector: the sealed registry plus the field injection protocol
//   - manager: the composition root and the per-request Process operation
//
// Wiring is explicit and happens once, at startup, in a composition root
// (see manager.NewInjectorBuilder). After build the injector and every
// registry it holds are read-only and safe for concurrent use.
//
// Start with examples/basic for end-to-end wiring style.
package wro4j
