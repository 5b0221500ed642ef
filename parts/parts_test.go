package parts_test

import (
	"testing"

	"github.com/pkg/errors"

	bb "github.com/logiclab/breadboard"
	"github.com/logiclab/breadboard/boardtest"
	"github.com/logiclab/breadboard/parts"
)

// drive adds an Input gate and fans it out to all taps.
func drive(t *testing.T, b *bb.Board, label string, taps []parts.Tap) bb.GateID {
	t.Helper()
	in := b.AddGate(bb.Input, label)
	if err := parts.Drive(b, in, taps); err != nil {
		t.Fatal(err)
	}
	return in
}

func Test_parts(t *testing.T) {
	td := []struct {
		name  string
		build func(t *testing.T, b *bb.Board) ([]bb.GateID, bb.GateID)
		want  []bool
	}{
		{"XOR", func(t *testing.T, b *bb.Board) ([]bb.GateID, bb.GateID) {
			p := parts.Xor(b, "x")
			return []bb.GateID{drive(t, b, "a", p.A), drive(t, b, "b", p.B)}, p.Out
		}, []bool{false, true, true, false}},

		{"XNOR", func(t *testing.T, b *bb.Board) ([]bb.GateID, bb.GateID) {
			p := parts.Xnor(b, "x")
			return []bb.GateID{drive(t, b, "a", p.A), drive(t, b, "b", p.B)}, p.Out
		}, []bool{true, false, false, true}},

		{"MUX", func(t *testing.T, b *bb.Board) ([]bb.GateID, bb.GateID) {
			p := parts.Mux(b, "m")
			return []bb.GateID{
				drive(t, b, "a", p.A),
				drive(t, b, "b", p.B),
				drive(t, b, "sel", p.Sel),
			}, p.Out
		}, []bool{false, false, false, true, true, false, true, true}},

		{"HALFADD.sum", func(t *testing.T, b *bb.Board) ([]bb.GateID, bb.GateID) {
			p := parts.HalfAdder(b, "h")
			return []bb.GateID{drive(t, b, "a", p.A), drive(t, b, "b", p.B)}, p.Sum
		}, []bool{false, true, true, false}},

		{"HALFADD.carry", func(t *testing.T, b *bb.Board) ([]bb.GateID, bb.GateID) {
			p := parts.HalfAdder(b, "h")
			return []bb.GateID{drive(t, b, "a", p.A), drive(t, b, "b", p.B)}, p.Carry
		}, []bool{false, false, false, true}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			b := bb.New()
			ins, probe := d.build(t, b)
			boardtest.CheckTruthTable(t, b, ins, probe, d.want)
			boardtest.RequireConsistent(t, b)
		})
	}
}

// A full adder from two half adders and an Or, to check that taps compose:
// Drive works with part outputs as sources, not just Input gates.
func Test_full_adder(t *testing.T) {
	b := bb.New()
	ha1 := parts.HalfAdder(b, "ha1")
	ha2 := parts.HalfAdder(b, "ha2")
	or := b.AddGate(bb.Or, "cout")

	a := drive(t, b, "a", ha1.A)
	c := drive(t, b, "b", ha1.B)
	cin := drive(t, b, "cin", ha2.B)
	if err := parts.Drive(b, ha1.Sum, ha2.A); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddWire(ha1.Carry, or, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddWire(ha2.Carry, or, 1); err != nil {
		t.Fatal(err)
	}

	ins := []bb.GateID{a, c, cin}
	boardtest.CheckTruthTable(t, b, ins, ha2.Sum, []bool{false, true, true, false, true, false, false, true})
	boardtest.CheckTruthTable(t, b, ins, or, []bool{false, false, false, true, false, true, true, true})
	boardtest.RequireConsistent(t, b)
}

func Test_drive_errors(t *testing.T) {
	b := bb.New()
	p := parts.Xor(b, "x")
	in := b.AddGate(bb.Input, "a")
	if err := parts.Drive(b, in, p.A); err != nil {
		t.Fatal(err)
	}
	if err := parts.Drive(b, in, p.A); !errors.Is(err, bb.ErrSlotOccupied) {
		t.Errorf("redriving taps: error = %v, want %v", err, bb.ErrSlotOccupied)
	}
	if err := parts.Drive(b, 99, p.B); !errors.Is(err, bb.ErrInvalidReference) {
		t.Errorf("driving from unknown gate: error = %v, want %v", err, bb.ErrInvalidReference)
	}
}
