// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

package breadboard

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// A Board is an editable gate graph with live-evaluated outputs.
//
// All methods serialize through one mutex, so every mutation together with
// the re-evaluation it triggers is a single atomic step: concurrent readers
// never observe a half-applied edit or a stale output. The zero Board is not
// usable; call New.
//
type Board struct {
	mu       sync.Mutex
	gates    map[GateID]*Gate
	wires    map[WireID]Wire
	drivers  map[slotKey]WireID
	nextGate GateID
	nextWire WireID
	version  uint64

	listeners []func(Snapshot)

	// scratch for the evaluator's active descent path
	path *bitset.BitSet
}

// New returns an empty board.
//
func New() *Board {
	return &Board{
		gates:   make(map[GateID]*Gate),
		wires:   make(map[WireID]Wire),
		drivers: make(map[slotKey]WireID),
		path:    bitset.New(64),
	}
}

// AddGate creates a gate of the given kind with a zero output, a default
// position and the slot count mandated by the kind, and returns its id.
// The label may be empty.
//
func (b *Board) AddGate(kind Kind, label string) GateID {
	b.mu.Lock()
	id := b.nextGate
	b.nextGate++
	b.gates[id] = &Gate{ID: id, Kind: kind, Label: label}
	snap, ls := b.commitLocked(true)
	b.mu.Unlock()
	emit(ls, snap)
	return id
}

// RemoveGate deletes the gate and every wire whose source or destination
// references it, as one observable transition. Unknown ids are a no-op.
//
func (b *Board) RemoveGate(id GateID) {
	b.mu.Lock()
	if _, ok := b.gates[id]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.gates, id)
	for wid, w := range b.wires {
		if w.Source == id || w.Dest == id {
			delete(b.wires, wid)
			delete(b.drivers, slotKey{w.Dest, w.Slot})
		}
	}
	snap, ls := b.commitLocked(true)
	b.mu.Unlock()
	emit(ls, snap)
}

// SetInput stores a stimulus value on an Input gate. It fails with
// ErrNotInput if id does not name an Input gate, including when the gate
// does not exist.
//
func (b *Board) SetInput(id GateID, v bool) error {
	b.mu.Lock()
	g, ok := b.gates[id]
	if !ok || g.Kind != Input {
		b.mu.Unlock()
		return errors.Wrapf(ErrNotInput, "gate %d", id)
	}
	g.Out = v
	snap, ls := b.commitLocked(true)
	b.mu.Unlock()
	emit(ls, snap)
	return nil
}

// ToggleInput flips the stored value of an Input gate and returns the new
// value. Same failure contract as SetInput.
//
func (b *Board) ToggleInput(id GateID) (bool, error) {
	b.mu.Lock()
	g, ok := b.gates[id]
	if !ok || g.Kind != Input {
		b.mu.Unlock()
		return false, errors.Wrapf(ErrNotInput, "gate %d", id)
	}
	g.Out = !g.Out
	v := g.Out
	snap, ls := b.commitLocked(true)
	b.mu.Unlock()
	emit(ls, snap)
	return v, nil
}

// MoveGate updates a gate's display position. Outputs cannot change, so the
// graph is not re-evaluated, but the version still advances and listeners
// run so renderers stay consistent. Unknown ids are a no-op.
//
func (b *Board) MoveGate(id GateID, x, y float64) {
	b.mu.Lock()
	g, ok := b.gates[id]
	if !ok {
		b.mu.Unlock()
		return
	}
	g.X, g.Y = x, y
	snap, ls := b.commitLocked(false)
	b.mu.Unlock()
	emit(ls, snap)
}

// commitLocked finishes a successful mutation: it re-evaluates the graph
// when eval is set, advances the version and returns the new snapshot along
// with a copy of the listener list to run once the lock is released.
func (b *Board) commitLocked(eval bool) (Snapshot, []func(Snapshot)) {
	if eval {
		b.evalLocked()
	}
	b.version++
	snap := b.snapshotLocked()
	ls := make([]func(Snapshot), len(b.listeners))
	copy(ls, b.listeners)
	return snap, ls
}

func emit(ls []func(Snapshot), snap Snapshot) {
	for _, fn := range ls {
		fn(snap)
	}
}
