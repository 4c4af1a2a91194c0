// Package client implements the store connection manager: the single owner
// of the connection to the remote key-value store and the sole point of
// failure containment for infrastructure errors.
//
// The package focuses on:
//   - Thread-safe primitive operations (Set, Get, Delete, ScanByKeyBase)
//     serialized by one mutex
//   - A swallow-and-log error boundary: connectivity and protocol failures
//     surface as absent results, never as errors or panics
//   - A background heartbeat loop that detects a dead connection and
//     transparently re-establishes it through the shared connection factory
//
// Key Components:
//
//   - Client: The connection manager. Created with New from a
//     common.ClientConfig; stopped with Close. Between those two calls a
//     heartbeat goroutine probes liveness every HeartbeatIntervalSec
//     seconds, and on failure swaps in a freshly dialed connection while
//     holding the same lock that guards the primitives.
//
//   - RawDocument: A scanned key plus its raw payload. The typed repository
//     layer (package odm) decodes these into concrete document types; the
//     manager itself is type-agnostic.
//
// Error Handling:
//
//	Infrastructure errors (network unreachable, connection reset, protocol
//	violations) die here: they are logged, counted in metrics, and reported
//	upward only as an absent/empty result. "Not found" is not an error, it
//	is a normal absent result. Callers must treat absence as "try again
//	later or report upward", not as a distinguishable error code.
//
// Usage Example:
//
//	cfg := common.ClientConfig{
//		Host: "localhost",
//		Port: 6379,
//		DB:   0,
//	}
//
//	c, err := client.New(cfg)
//	if err != nil {
//		// invalid configuration
//	}
//	defer c.Close()
//
//	c.Set("Account:acc_001", []byte(`{"holder":"John Smith"}`))
//	value, found := c.Get("Account:acc_001")
//
// Thread Safety:
//
//	All methods are safe for concurrent use. At most one store round-trip
//	is in flight per Client; a scan's individual per-key fetches each take
//	the lock separately, so concurrent writers may interleave with a
//	running scan (tolerated best-effort semantics).
package client
