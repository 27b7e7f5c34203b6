// Copyright 2025-2026, Synclabs, Inc.
// For license information, see https://github.com/synclabs/taggedcell/blob/master/LICENSE

// Package taggedcell provides a statically declarable, initialize-once data
// cell whose completed initialization is proven by a zero-sized witness type
// instead of a runtime check.
//
// A cell is declared as a package-level var together with its own empty
// struct tag type:
//
//	type dbTag struct{}
//	var dbCell taggedcell.Cell[*DB, dbTag]
//
// Any number of goroutines may race on Init; exactly one runs the producer,
// the rest block until the value is published, and all of them receive a
// Witness for the cell's tag. Presenting that witness to Get is the only way
// to reach the stored value, and a witness minted by a differently-tagged
// cell is rejected by the compiler.
package taggedcell

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Cell states. Transitions are monotonic: empty -> initializing -> ready,
// with poisoned as the terminal state of a failed initialization. A cell
// never leaves ready or poisoned.
const (
	stateEmpty uint32 = iota
	stateInitializing
	stateReady
	statePoisoned
)

// ErrPoisoned is the value carried by the panic raised when Init is called on
// a cell whose producer previously panicked mid-initialization.
var ErrPoisoned = errors.New("taggedcell: cell is poisoned")

// A Cell is a shared storage slot for one value of type T, produced by the
// first winning Init call and readable afterwards through a Witness.
//
// The zero value is an empty cell ready for use, so a package-level var needs
// no constructor, allocates nothing, and is observably empty to every
// goroutine before any of them can call Init.
//
// Tag must be a distinct type per declared cell. Two cells sharing a Tag
// accept each other's witnesses, which lets a witness from the initialized
// cell unlock the uninitialized one; the cell cannot detect this at runtime.
// The tagcheck analyzer under linters/ reports reused tags statically.
type Cell[T any, Tag any] struct {
	state atomic.Uint32
	mu    sync.Mutex
	value T
}

// A Witness proves that the cell sharing its Tag has completed
// initialization. It carries no data; its existence is the proof, which is
// why Get needs no runtime state check. Obtain a witness only from Init:
// constructing a Witness literal directly voids the guarantee the type
// exists to provide.
type Witness[Tag any] struct{}

// Init initializes the cell with the result of producer if no caller has done
// so yet, and returns a witness for the cell's tag.
//
// Exactly one concurrent caller runs producer. Every other caller blocks
// until the produced value is stored and published, then returns an identical
// witness; there is no timeout, so a slow producer holds all waiters for as
// long as it runs. Once the cell is ready, Init never runs producer again and
// returns a fresh witness immediately.
//
// If producer panics, the cell is poisoned: the panic propagates out of the
// winning caller's Init, and every waiting and future Init call panics with
// ErrPoisoned. A poisoned cell never runs another producer.
func (c *Cell[T, Tag]) Init(producer func() T) Witness[Tag] {
	if c.state.Load() != stateReady {
		c.initSlow(producer)
	}
	return Witness[Tag]{}
}

// initSlow serializes racing initializers. The mutex doubles as the wait
// mechanism: losers block on Lock until the winner has published or poisoned
// the cell, and the atomic state store pairs with the fast-path load in Init
// to make the stored value visible to goroutines that never touch the mutex.
func (c *Cell[T, Tag]) initSlow(producer func() T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.CompareAndSwap(stateEmpty, stateInitializing) {
		defer func() {
			// Still initializing here means producer panicked before the
			// value was stored. Mark the cell terminally poisoned so waiters
			// fail instead of blocking forever, then let the panic continue.
			if c.state.Load() == stateInitializing {
				c.state.Store(statePoisoned)
			}
		}()
		c.value = producer()
		c.state.Store(stateReady)
		return
	}
	switch c.state.Load() {
	case stateReady:
	case statePoisoned:
		panic(ErrPoisoned)
	default:
		// Past the empty->initializing edge the state only changes under mu,
		// so holding mu with a non-terminal state is unreachable.
		panic("taggedcell: corrupt cell state")
	}
}

// Get returns the value stored by the cell's single producer run. Presenting
// the witness is the entire precondition: Get performs no state check and
// never blocks, and a well-typed witness guarantees the value was fully
// written and published before the witness existed.
//
// The returned pointer aliases storage shared by every witness holder. The
// cell synchronizes initialization only; if T has internally mutable state,
// coordinating post-initialization mutation is the caller's responsibility.
func (c *Cell[T, Tag]) Get(_ Witness[Tag]) *T {
	return &c.value
}
