// Package nfa implements the NFA graph representation (spec component E)
// and Thompson's construction from a regex AST (component D).
package nfa

import (
	"fmt"

	"github.com/shadowCow/lexgen/internal/alphabet"
	"github.com/shadowCow/lexgen/internal/automaton"
)

// State is one NFA state: an optional accepting rule ID, a set of labeled
// transitions, and a set of epsilon transitions.
type State struct {
	ID        int
	Accepting int // 0 = not accepting; positive = rule ID
	Trans     map[byte][]int
	Eps       []int
}

// NFA is a directed graph of States, arena-allocated and addressed by
// dense integer ID. An NFA may contain epsilon edges and states with
// multiple targets per symbol.
type NFA struct {
	States []*State
	Start  int
	frozen bool
}

// New creates an empty NFA with no states.
func New() *NFA {
	return &NFA{}
}

// AddState allocates a fresh state and returns its ID.
func (n *NFA) AddState() (int, error) {
	if n.frozen {
		return 0, &automaton.InvariantViolation{Msg: "cannot add a state to a frozen NFA"}
	}
	id := len(n.States)
	n.States = append(n.States, &State{ID: id, Trans: make(map[byte][]int)})
	return id, nil
}

// AddTransition adds an edge from -sym-> to.
func (n *NFA) AddTransition(from int, sym byte, to int) error {
	if n.frozen {
		return &automaton.InvariantViolation{Msg: "cannot add a transition to a frozen NFA"}
	}
	if !alphabet.InAlphabet(sym) {
		return &automaton.InvariantViolation{Msg: fmt.Sprintf("symbol 0x%02x outside alphabet", sym)}
	}
	n.States[from].Trans[sym] = append(n.States[from].Trans[sym], to)
	return nil
}

// AddEpsilon adds an epsilon edge from -> to.
func (n *NFA) AddEpsilon(from, to int) error {
	if n.frozen {
		return &automaton.InvariantViolation{Msg: "cannot add an epsilon transition to a frozen NFA"}
	}
	n.States[from].Eps = append(n.States[from].Eps, to)
	return nil
}

// Freeze marks the automaton as numbered and immutable. Any further
// AddState/AddTransition/AddEpsilon call fails with InvariantViolation.
func (n *NFA) Freeze() {
	n.frozen = true
}

// Frozen reports whether the automaton has been frozen.
func (n *NFA) Frozen() bool {
	return n.frozen
}

// NumStates returns the number of allocated states.
func (n *NFA) NumStates() int {
	return len(n.States)
}

// TypeName implements automaton.GraphView.
func (n *NFA) TypeName() string { return "NFA" }

// StartState implements automaton.GraphView. The start state is also
// exported directly as the Start field; a method cannot share that name.
func (n *NFA) StartState() int { return n.Start }

// Accepting implements automaton.GraphView.
func (n *NFA) Accepting(id int) int {
	return n.States[id].Accepting
}

// Edges implements automaton.GraphView.
func (n *NFA) Edges(id int) []automaton.Edge {
	st := n.States[id]
	edges := make([]automaton.Edge, 0, len(st.Eps))
	for _, target := range st.Eps {
		edges = append(edges, automaton.Edge{Label: `"ε"`, Target: target})
	}
	for sym, targets := range st.Trans {
		for _, target := range targets {
			edges = append(edges, automaton.Edge{Label: printableSymbol(sym), Target: target})
		}
	}
	return edges
}

func printableSymbol(b byte) string {
	return fmt.Sprintf("%q", string(rune(b)))
}
