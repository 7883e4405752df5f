// Package subset implements the Rabin-Scott subset construction: turning
// an NFA into an equivalent DFA (spec component F).
package subset

import (
	"github.com/shadowCow/lexgen/internal/alphabet"
	"github.com/shadowCow/lexgen/internal/dfa"
	"github.com/shadowCow/lexgen/internal/nfa"
)

// Construct builds a DFA equivalent to n via the worklist form of the
// subset construction: each DFA state is the epsilon-closure of a set of
// NFA states, discovered breadth-first starting from the closure of the
// NFA's start state.
//
// When a DFA state's underlying NFA configuration contains more than one
// accepting NFA state, the DFA state's rule ID is the minimum of them
// (spec §4.4: earliest-declared rule wins ties).
func Construct(n *nfa.NFA) (*dfa.DFA, error) {
	d := dfa.New()

	startClosure := nfa.EpsilonClosure(n, []int{n.Start})
	startID, err := d.AddState()
	if err != nil {
		return nil, err
	}
	d.Start = startID
	d.States[startID].Accepting = nfa.MinAccepting(n, startClosure.IDs())

	seen := map[string]int{startClosure.Key(): startID}
	worklist := []*nfa.StateSet{startClosure}

	for len(worklist) > 0 {
		configuration := worklist[0]
		worklist = worklist[1:]
		fromID := seen[configuration.Key()]

		for sym := 0; sym < alphabet.NumSymbols; sym++ {
			moved := nfa.Move(n, configuration, byte(sym))
			if len(moved) == 0 {
				continue
			}
			closure := nfa.EpsilonClosure(n, moved)
			if closure.IsEmpty() {
				continue
			}
			key := closure.Key()
			toID, ok := seen[key]
			if !ok {
				toID, err = d.AddState()
				if err != nil {
					return nil, err
				}
				d.States[toID].Accepting = nfa.MinAccepting(n, closure.IDs())
				seen[key] = toID
				worklist = append(worklist, closure)
			}
			if err := d.AddTransition(fromID, byte(sym), toID); err != nil {
				return nil, err
			}
		}
	}

	d.Freeze()
	return d, nil
}
