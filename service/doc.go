// Package service orchestrates the core components of the matching
// engine — order book, user ledger, sequencer, and metrics.
//
// It provides a clean API for registering users, submitting and cancelling
// orders, and querying state, decoupled from whatever transport drives it.
package service
