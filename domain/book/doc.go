// Package book implements a single-instrument limit order book with
// price/time priority matching and per-user maker/taker accounting.
//
// The package is deterministic and single-writer: every mutation must be
// serialized by the caller. Cancellation is O(1) — it only flips a flag on
// the order; physical removal from the price levels and the id index is
// deferred to the next read of the affected level.
package book
