package breadboard

import "testing"

// The evaluator never trusts wire endpoints: a wire whose source is gone
// reads low instead of crashing the walk. The public API cascades deletes
// so this state is unreachable from outside, hence the white box.
func Test_dangling_wire_reads_low(t *testing.T) {
	b := New()
	in := b.AddGate(Input, "a")
	o := b.AddGate(Output, "")
	if _, err := b.AddWire(in, o, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.SetInput(in, true); err != nil {
		t.Fatal(err)
	}
	if out, _ := b.Output(o); !out {
		t.Fatal("wired output should follow its input")
	}

	b.mu.Lock()
	delete(b.gates, in)
	b.evalLocked()
	b.mu.Unlock()

	if out, _ := b.Output(o); out {
		t.Error("wire from a missing gate should read low")
	}
}

func Test_driver_index_consistent(t *testing.T) {
	b := New()
	a := b.AddGate(Input, "a")
	c := b.AddGate(Input, "b")
	and := b.AddGate(And, "")
	w0, err := b.AddWire(a, and, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddWire(c, and, 1); err != nil {
		t.Fatal(err)
	}

	b.mu.Lock()
	n := len(b.drivers)
	b.mu.Unlock()
	if n != 2 {
		t.Fatalf("driver index has %d entries, want 2", n)
	}

	b.RemoveWire(w0)
	b.mu.Lock()
	_, stale := b.drivers[slotKey{and, 0}]
	b.mu.Unlock()
	if stale {
		t.Error("driver index keeps a deleted wire")
	}

	b.RemoveGate(and)
	b.mu.Lock()
	n = len(b.drivers)
	b.mu.Unlock()
	if n != 0 {
		t.Errorf("driver index has %d entries after cascade, want 0", n)
	}
}
