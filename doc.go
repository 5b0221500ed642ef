// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package breadboard implements the core of an interactive logic-gate sandbox:
an editable graph of boolean gates and wires whose outputs are re-evaluated
after every edit.

A Board owns the gates and wires. Gates come in five kinds: And, Or, Not,
Input and Output. Input gates hold a value toggled by the user; every other
gate derives its output from the wires driving its input slots. Mutations go
through the Board's methods, which enforce referential integrity (a slot
accepts a single driver, deleting a gate deletes every wire touching it) and
trigger a whole-graph re-evaluation before returning, so a Board is never
observed with stale outputs.

Unconnected and dangling inputs read as false rather than failing, and a
cycle guard keeps evaluation terminating under arbitrary wiring, so the
evaluator itself cannot fail; only mutations can.

	b := breadboard.New()
	a := b.AddGate(breadboard.Input, "a")
	n := b.AddGate(breadboard.Not, "")
	b.AddWire(a, n, 0)
	b.SetInput(a, true)
	out, _ := b.Output(n) // false

Rendering and interaction layers consume the Board through Snapshot and
OnChange and request edits through the mutation methods; they never touch
the graph directly.
*/
package breadboard
