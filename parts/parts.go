// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package parts provides prewired composite parts for breadboard.
//
// A builder stamps primitive gates and internal wires onto a live board and
// returns the part's boundary: the output gate ids and, for each part input,
// the list of taps to drive. Taps exist because a slot takes a single driver
// while one part input may feed several internal slots; Drive fans a source
// out to all of them.
//
package parts

import (
	bb "github.com/logiclab/breadboard"
)

// A Tap names one undriven input slot on a stamped part.
//
type Tap struct {
	Gate bb.GateID
	Slot int
}

// Drive wires source to every tap in taps. It stops at the first wiring
// error, leaving the earlier wires in place.
//
func Drive(b *bb.Board, source bb.GateID, taps []Tap) error {
	for _, tp := range taps {
		if _, err := b.AddWire(source, tp.Gate, tp.Slot); err != nil {
			return err
		}
	}
	return nil
}

// wire connects two gates stamped by the calling builder. All ids are fresh
// and every slot is wired exactly once, so failure means a builder bug.
func wire(b *bb.Board, source, dest bb.GateID, slot int) {
	if _, err := b.AddWire(source, dest, slot); err != nil {
		panic(err)
	}
}

// sub derives an internal gate label from the part label.
func sub(label, part string) string {
	if label == "" {
		return part
	}
	return label + "." + part
}

// XorPart is the boundary of a stamped exclusive-or.
//
type XorPart struct {
	A, B []Tap
	Out  bb.GateID
}

// Xor stamps an exclusive-or built from primitives onto b.
//
//	Taps: A, B
//	Outputs: Out
//	Function: Out = (A && !B) || (!A && B)
//
func Xor(b *bb.Board, label string) XorPart {
	notA := b.AddGate(bb.Not, sub(label, "nA"))
	notB := b.AddGate(bb.Not, sub(label, "nB"))
	andX := b.AddGate(bb.And, sub(label, "aX"))
	andY := b.AddGate(bb.And, sub(label, "aY"))
	or := b.AddGate(bb.Or, sub(label, "or"))
	wire(b, notB, andX, 1)
	wire(b, notA, andY, 0)
	wire(b, andX, or, 0)
	wire(b, andY, or, 1)
	return XorPart{
		A:   []Tap{{andX, 0}, {notA, 0}},
		B:   []Tap{{andY, 1}, {notB, 0}},
		Out: or,
	}
}

// XnorPart is the boundary of a stamped exclusive-nor.
//
type XnorPart struct {
	A, B []Tap
	Out  bb.GateID
}

// Xnor stamps an exclusive-nor built from primitives onto b.
//
//	Taps: A, B
//	Outputs: Out
//	Function: Out = (A && B) || (!A && !B)
//
func Xnor(b *bb.Board, label string) XnorPart {
	notA := b.AddGate(bb.Not, sub(label, "nA"))
	notB := b.AddGate(bb.Not, sub(label, "nB"))
	andX := b.AddGate(bb.And, sub(label, "aX"))
	andY := b.AddGate(bb.And, sub(label, "aY"))
	or := b.AddGate(bb.Or, sub(label, "or"))
	wire(b, notA, andY, 0)
	wire(b, notB, andY, 1)
	wire(b, andX, or, 0)
	wire(b, andY, or, 1)
	return XnorPart{
		A:   []Tap{{andX, 0}, {notA, 0}},
		B:   []Tap{{andX, 1}, {notB, 0}},
		Out: or,
	}
}

// MuxPart is the boundary of a stamped two-way multiplexer.
//
type MuxPart struct {
	A, B, Sel []Tap
	Out       bb.GateID
}

// Mux stamps a two-way multiplexer onto b.
//
//	Taps: A, B, Sel
//	Outputs: Out
//	Function: Out = (A && !Sel) || (B && Sel)
//
func Mux(b *bb.Board, label string) MuxPart {
	notSel := b.AddGate(bb.Not, sub(label, "nSel"))
	andA := b.AddGate(bb.And, sub(label, "aA"))
	andB := b.AddGate(bb.And, sub(label, "aB"))
	or := b.AddGate(bb.Or, sub(label, "or"))
	wire(b, notSel, andA, 1)
	wire(b, andA, or, 0)
	wire(b, andB, or, 1)
	return MuxPart{
		A:   []Tap{{andA, 0}},
		B:   []Tap{{andB, 0}},
		Sel: []Tap{{notSel, 0}, {andB, 1}},
		Out: or,
	}
}

// HalfAdderPart is the boundary of a stamped half adder.
//
type HalfAdderPart struct {
	A, B       []Tap
	Sum, Carry bb.GateID
}

// HalfAdder stamps a half adder onto b.
//
//	Taps: A, B
//	Outputs: Sum, Carry
//	Function: Sum = A != B, Carry = A && B
//
func HalfAdder(b *bb.Board, label string) HalfAdderPart {
	x := Xor(b, sub(label, "sum"))
	carry := b.AddGate(bb.And, sub(label, "carry"))
	return HalfAdderPart{
		A:     append(x.A, Tap{carry, 0}),
		B:     append(x.B, Tap{carry, 1}),
		Sum:   x.Out,
		Carry: carry,
	}
}
