// Copyright 2026 logiclab. All rights reserved.
// Licensed under the MIT license. See license text in the LICENSE file.

package breadboard

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// A Kind identifies the boolean function of a gate.
//
type Kind uint8

// Gate kinds. Input gates source a user-toggled value, Output gates pass
// their single slot through for display, the rest compute their function
// over their slots.
//
const (
	And Kind = iota
	Or
	Not
	Input
	Output
)

var kindNames = [...]string{
	And:    "AND",
	Or:     "OR",
	Not:    "NOT",
	Input:  "INPUT",
	Output: "OUTPUT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// ParseKind converts a gate kind name to a Kind. Names are matched
// case-insensitively.
//
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown gate kind %q", name)
}

// Arity returns the number of input slots a gate of kind k carries.
// Input gates have none: a wire can never target an Input gate.
//
func (k Kind) Arity() int {
	switch k {
	case And, Or:
		return 2
	case Not, Output:
		return 1
	default:
		return 0
	}
}

// combine folds resolved slot values through the gate's boolean function.
// Input gates hold stored state instead and never reach here. Unknown kinds
// read as false, like everything else malformed.
//
func (k Kind) combine(in [2]bool) bool {
	switch k {
	case And:
		return in[0] && in[1]
	case Or:
		return in[0] || in[1]
	case Not:
		return !in[0]
	case Output:
		return in[0]
	default:
		return false
	}
}

// MarshalText makes Kind render as its name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name, accepting any case.
func (k *Kind) UnmarshalText(text []byte) error {
	p, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = p
	return nil
}

// A GateID is a handle to a gate on a Board. IDs are allocated sequentially
// and never reused within a Board's lifetime.
//
type GateID int

// A WireID is a handle to a wire on a Board.
//
type WireID int

// Gate is the externally visible state of one gate: its identity, function,
// display attributes and current output. X and Y belong to the rendering
// layer; the evaluator ignores them.
//
type Gate struct {
	ID    GateID  `json:"id"`
	Kind  Kind    `json:"kind"`
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Out   bool    `json:"out"`
}

// MarshalJSON adds the kind's slot count so clients need no gate table.
func (g Gate) MarshalJSON() ([]byte, error) {
	type gate Gate
	return json.Marshal(struct {
		gate
		Slots int `json:"slots"`
	}{gate(g), g.Kind.Arity()})
}

// Wire is the externally visible state of one wire: it carries Source's
// output to input slot Slot of gate Dest. A slot has at most one driver;
// fan-out from a source is unrestricted.
//
type Wire struct {
	ID     WireID `json:"id"`
	Source GateID `json:"source"`
	Dest   GateID `json:"dest"`
	Slot   int    `json:"slot"`
}
