// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

package breadboard

import "sort"

// A Snapshot is an immutable copy of the whole board at one version:
// every gate with its settled output, every wire, in id order. Snapshots
// passed to OnChange listeners and returned by Board.Snapshot never alias
// board state, so holders may keep them as long as they like.
//
type Snapshot struct {
	Version uint64 `json:"version"`
	Gates   []Gate `json:"gates"`
	Wires   []Wire `json:"wires"`
}

// Gate returns the gate with the given id, or ok=false if the snapshot
// does not contain it.
//
func (s Snapshot) Gate(id GateID) (Gate, bool) {
	i := sort.Search(len(s.Gates), func(i int) bool { return s.Gates[i].ID >= id })
	if i < len(s.Gates) && s.Gates[i].ID == id {
		return s.Gates[i], true
	}
	return Gate{}, false
}

func (b *Board) snapshotLocked() Snapshot {
	s := Snapshot{
		Version: b.version,
		Gates:   make([]Gate, 0, len(b.gates)),
		Wires:   make([]Wire, 0, len(b.wires)),
	}
	for _, g := range b.gates {
		s.Gates = append(s.Gates, *g)
	}
	for _, w := range b.wires {
		s.Wires = append(s.Wires, w)
	}
	sort.Slice(s.Gates, func(i, j int) bool { return s.Gates[i].ID < s.Gates[j].ID })
	sort.Slice(s.Wires, func(i, j int) bool { return s.Wires[i].ID < s.Wires[j].ID })
	return s
}

// Snapshot returns a copy of the current board state.
//
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Version returns the current version counter. It starts at zero on an
// empty board and advances by one on every applied mutation or stimulus
// change.
//
func (b *Board) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Gate returns a copy of the gate with the given id.
//
func (b *Board) Gate(id GateID) (Gate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.gates[id]
	if !ok {
		return Gate{}, false
	}
	return *g, true
}

// Output returns the settled output of the gate with the given id, or
// ok=false if no such gate exists.
//
func (b *Board) Output(id GateID) (bool, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.gates[id]
	if !ok {
		return false, false
	}
	return g.Out, true
}

// WiresTouching returns every wire that starts or ends at the given gate,
// in id order.
//
func (b *Board) WiresTouching(id GateID) []Wire {
	b.mu.Lock()
	var ws []Wire
	for _, w := range b.wires {
		if w.Source == id || w.Dest == id {
			ws = append(ws, w)
		}
	}
	b.mu.Unlock()
	sort.Slice(ws, func(i, j int) bool { return ws[i].ID < ws[j].ID })
	return ws
}

// OnChange registers fn to run after every applied board transition with
// the snapshot that transition produced. Listeners run outside the board
// lock, in registration order, on the goroutine that performed the
// mutation; a listener may therefore call back into the board but should
// return quickly. There is no way to unregister.
//
func (b *Board) OnChange(fn func(Snapshot)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}
