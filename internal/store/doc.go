// Package store implements the unidirectional state core shared by screens.
//
// A Store holds one immutable state snapshot of type S. Events of type E are
// folded into it by a pure Reducer through a compare-and-swap loop, so
// concurrent Apply calls never overwrite each other with a stale base. The
// final state reflects whichever event was applied last in real time, not the
// order in which the work producing the events was started.
//
// Watchers receive the current snapshot on subscription and every newer one
// afterwards; intermediate snapshots may be skipped but never delivered out of
// order. One-shot notifications of type N are separate from state: they reach
// only the listeners attached at emission time, through a small per-listener
// buffer that drops the oldest item instead of blocking the producer.
package store
