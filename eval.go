// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

package breadboard

// evalLocked recomputes the output of every gate from the current inputs
// and wiring. Each gate gets its own fresh descent: values are collected
// first and written back in a second pass, so a gate never reads a
// neighbour's output from mid-refresh state.
func (b *Board) evalLocked() {
	if len(b.gates) == 0 {
		return
	}
	out := make(map[GateID]bool, len(b.gates))
	for id, g := range b.gates {
		b.path.ClearAll()
		b.path.Set(uint(id))
		out[id] = b.valueLocked(g)
	}
	for id, v := range out {
		b.gates[id].Out = v
	}
}

// valueLocked computes one gate's output by walking its input cone. The
// path set holds every gate on the active descent; a wire whose source is
// already on the path would close a loop, so that slot reads low instead
// of recursing. Unconnected slots and wires to deleted gates read low for
// the same reason: a missing signal is a low signal.
func (b *Board) valueLocked(g *Gate) bool {
	if g.Kind == Input {
		return g.Out
	}
	var in [2]bool
	for slot := 0; slot < g.Kind.Arity(); slot++ {
		wid, ok := b.drivers[slotKey{g.ID, slot}]
		if !ok {
			continue
		}
		w := b.wires[wid]
		src, ok := b.gates[w.Source]
		if !ok {
			continue
		}
		if b.path.Test(uint(src.ID)) {
			continue
		}
		b.path.Set(uint(src.ID))
		in[slot] = b.valueLocked(src)
		b.path.Clear(uint(src.ID))
	}
	return g.Kind.combine(in)
}
