// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

package breadboard

import "github.com/pkg/errors"

// slotKey identifies one input slot of one gate. The drivers index maps
// occupied slots to the wire driving them, which is what makes the
// one-driver-per-slot rule an O(1) check.
type slotKey struct {
	gate GateID
	slot int
}

// AddWire connects source's output to input slot slot of gate dest.
//
// It fails with ErrInvalidReference if either gate does not exist or slot
// is out of range for dest's kind (Input gates accept no wires at all),
// and with ErrSlotOccupied if another wire already drives that slot. A
// failed call leaves the board unchanged: no id is consumed and no
// listener runs. Fan-out from source is unrestricted, and wires that close
// a loop are accepted; the evaluator breaks loops at read time.
//
func (b *Board) AddWire(source, dest GateID, slot int) (WireID, error) {
	b.mu.Lock()
	id, snap, ls, err := b.addWireLocked(source, dest, slot)
	b.mu.Unlock()
	if err != nil {
		return 0, err
	}
	emit(ls, snap)
	return id, nil
}

func (b *Board) addWireLocked(source, dest GateID, slot int) (WireID, Snapshot, []func(Snapshot), error) {
	if _, ok := b.gates[source]; !ok {
		return 0, Snapshot{}, nil, errors.Wrapf(ErrInvalidReference, "source gate %d", source)
	}
	dst, ok := b.gates[dest]
	if !ok {
		return 0, Snapshot{}, nil, errors.Wrapf(ErrInvalidReference, "destination gate %d", dest)
	}
	if slot < 0 || slot >= dst.Kind.Arity() {
		return 0, Snapshot{}, nil, errors.Wrapf(ErrInvalidReference, "slot %d out of range for %s gate %d", slot, dst.Kind, dest)
	}
	key := slotKey{dest, slot}
	if prev, taken := b.drivers[key]; taken {
		return 0, Snapshot{}, nil, errors.Wrapf(ErrSlotOccupied, "slot %d of gate %d already driven by wire %d", slot, dest, prev)
	}
	id := b.nextWire
	b.nextWire++
	b.wires[id] = Wire{ID: id, Source: source, Dest: dest, Slot: slot}
	b.drivers[key] = id
	snap, ls := b.commitLocked(true)
	return id, snap, ls, nil
}

// RemoveWire deletes a wire and frees the slot it drove. Unknown ids are a
// no-op: the version does not advance and listeners do not run.
//
func (b *Board) RemoveWire(id WireID) {
	b.mu.Lock()
	w, ok := b.wires[id]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.wires, id)
	delete(b.drivers, slotKey{w.Dest, w.Slot})
	snap, ls := b.commitLocked(true)
	b.mu.Unlock()
	emit(ls, snap)
}
