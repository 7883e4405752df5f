// Package dfa implements the DFA graph representation (spec component G)
// and Hopcroft's minimization algorithm (component H).
package dfa

import (
	"fmt"

	"github.com/shadowCow/lexgen/internal/alphabet"
	"github.com/shadowCow/lexgen/internal/automaton"
)

// State is one DFA state: at most one target per symbol, and an optional
// accepting rule ID.
type State struct {
	ID        int
	Accepting int // 0 = not accepting; positive = rule ID
	Trans     [alphabet.NumSymbols]int
}

const noTarget = -1

// DFA is a deterministic automaton: arena-allocated states addressed by
// dense integer ID, no epsilon edges, at most one transition per symbol
// per state.
type DFA struct {
	States []*State
	Start  int
	frozen bool
}

// New creates an empty DFA with no states.
func New() *DFA {
	return &DFA{}
}

// AddState allocates a fresh state, with every transition slot empty, and
// returns its ID.
func (d *DFA) AddState() (int, error) {
	if d.frozen {
		return 0, &automaton.InvariantViolation{Msg: "cannot add a state to a frozen DFA"}
	}
	st := &State{ID: len(d.States)}
	for i := range st.Trans {
		st.Trans[i] = noTarget
	}
	d.States = append(d.States, st)
	return st.ID, nil
}

// AddTransition sets the sole from--sym-->to edge. Adding a second
// transition on the same symbol from the same state is an invariant
// violation: the DFA's defining property is at most one target per symbol.
func (d *DFA) AddTransition(from int, sym byte, to int) error {
	if d.frozen {
		return &automaton.InvariantViolation{Msg: "cannot add a transition to a frozen DFA"}
	}
	if !alphabet.InAlphabet(sym) {
		return &automaton.InvariantViolation{Msg: fmt.Sprintf("symbol 0x%02x outside alphabet", sym)}
	}
	if d.States[from].Trans[sym] != noTarget {
		return &automaton.InvariantViolation{Msg: fmt.Sprintf("duplicate DFA transition from state %d on %q", from, sym)}
	}
	d.States[from].Trans[sym] = to
	return nil
}

// Target returns the state reached from `from` on sym, or -1 if there is
// none.
func (d *DFA) Target(from int, sym byte) int {
	return d.States[from].Trans[sym]
}

// Freeze marks the automaton immutable.
func (d *DFA) Freeze() { d.frozen = true }

// Frozen reports whether the automaton has been frozen.
func (d *DFA) Frozen() bool { return d.frozen }

// NumStates returns the number of allocated states.
func (d *DFA) NumStates() int { return len(d.States) }

// TypeName implements automaton.GraphView.
func (d *DFA) TypeName() string { return "DFA" }

// StartState implements automaton.GraphView.
func (d *DFA) StartState() int { return d.Start }

// Accepting implements automaton.GraphView.
func (d *DFA) Accepting(id int) int { return d.States[id].Accepting }

// Edges implements automaton.GraphView.
func (d *DFA) Edges(id int) []automaton.Edge {
	st := d.States[id]
	var edges []automaton.Edge
	for sym := 0; sym < alphabet.NumSymbols; sym++ {
		if st.Trans[sym] != noTarget {
			edges = append(edges, automaton.Edge{Label: printableSymbol(byte(sym)), Target: st.Trans[sym]})
		}
	}
	return edges
}

func printableSymbol(b byte) string {
	return fmt.Sprintf("%q", string(rune(b)))
}
