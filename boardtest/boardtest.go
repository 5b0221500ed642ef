// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package boardtest provides utility functions for testing circuits built
// on a breadboard.
//
package boardtest

import (
	"testing"

	bb "github.com/logiclab/breadboard"
)

// CheckTruthTable drives the given Input gates through all 2^n combinations
// and compares the probed gate's settled output against want, one entry per
// combination. inputs[0] is the most significant bit of the combination
// index, so for two inputs want reads in (false,false), (false,true),
// (true,false), (true,true) order.
//
func CheckTruthTable(t *testing.T, b *bb.Board, inputs []bb.GateID, probe bb.GateID, want []bool) {
	t.Helper()
	tot := 1 << uint(len(inputs))
	if len(want) != tot {
		t.Fatalf("truth table has %d entries, want %d", len(want), tot)
	}
	vals := make([]bool, len(inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			j := len(inputs) - bit - 1
			vals[j] = i&(1<<uint(bit)) != 0
			if err := b.SetInput(inputs[j], vals[j]); err != nil {
				t.Fatal(err)
			}
		}
		got, ok := b.Output(probe)
		if !ok {
			t.Fatalf("probe gate %d gone", probe)
		}
		if got != want[i] {
			t.Errorf("%v => %v, want %v", vals, got, want[i])
		}
	}
}

// RequireConsistent fails the test unless the board's snapshot is
// structurally sound: ids sorted, every wire endpoint resolving to a live
// gate, slots within the destination's arity and driven at most once, and
// the snapshot agreeing with the point queries.
//
func RequireConsistent(t *testing.T, b *bb.Board) {
	t.Helper()
	s := b.Snapshot()

	kinds := make(map[bb.GateID]bb.Kind, len(s.Gates))
	for i, g := range s.Gates {
		if i > 0 && s.Gates[i-1].ID >= g.ID {
			t.Fatalf("gates out of order at index %d: %d after %d", i, g.ID, s.Gates[i-1].ID)
		}
		kinds[g.ID] = g.Kind
		live, ok := b.Gate(g.ID)
		if !ok || live != g {
			t.Fatalf("gate %d: snapshot %+v disagrees with query %+v", g.ID, g, live)
		}
	}

	drivers := make(map[bb.GateID]map[int]bb.WireID)
	for i, w := range s.Wires {
		if i > 0 && s.Wires[i-1].ID >= w.ID {
			t.Fatalf("wires out of order at index %d: %d after %d", i, w.ID, s.Wires[i-1].ID)
		}
		if _, ok := kinds[w.Source]; !ok {
			t.Fatalf("wire %d: source gate %d gone", w.ID, w.Source)
		}
		k, ok := kinds[w.Dest]
		if !ok {
			t.Fatalf("wire %d: destination gate %d gone", w.ID, w.Dest)
		}
		if w.Slot < 0 || w.Slot >= k.Arity() {
			t.Fatalf("wire %d: slot %d out of range for %s gate %d", w.ID, w.Slot, k, w.Dest)
		}
		if drivers[w.Dest] == nil {
			drivers[w.Dest] = make(map[int]bb.WireID)
		}
		if prev, taken := drivers[w.Dest][w.Slot]; taken {
			t.Fatalf("slot %d of gate %d driven by wires %d and %d", w.Slot, w.Dest, prev, w.ID)
		}
		drivers[w.Dest][w.Slot] = w.ID
	}

	for id := range kinds {
		for _, w := range b.WiresTouching(id) {
			if w.Source != id && w.Dest != id {
				t.Fatalf("WiresTouching(%d) returned unrelated wire %+v", id, w)
			}
		}
	}
}
