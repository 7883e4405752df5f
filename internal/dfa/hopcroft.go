package dfa

import "github.com/shadowCow/lexgen/internal/alphabet"

// Minimize collapses d into an equivalent DFA with the fewest states,
// using partition refinement.
//
// The open question of how to group states within a block is resolved by
// signature: two states in the same block split apart as soon as they
// disagree, for any symbol, about *which partition* (not which specific
// state) their transition lands in. This is Moore's formulation of
// Hopcroft's algorithm rather than the pairwise first-element comparison
// some textbook presentations use; it converges in the same number of
// rounds without depending on an arbitrary representative element, which
// makes the rewrite easier to get right than distinguishing states pair
// by pair.
//
// Initial partition: states are split by accepting rule ID, so two
// accepting states for different rules are never merged even if their
// future behavior is identical -- rule identity is observable.
func Minimize(d *DFA) (*DFA, error) {
	partition := initialPartition(d)
	blockOf := make([]int, d.NumStates())
	assignBlocks(partition, blockOf)

	for {
		newPartition, changed := refine(d, partition, blockOf)
		if !changed {
			break
		}
		partition = newPartition
		assignBlocks(partition, blockOf)
	}

	return build(d, partition, blockOf)
}

// initialPartition groups states by accepting rule ID: one block per rule
// ID (including 0, the non-accepting block).
func initialPartition(d *DFA) [][]int {
	byRule := map[int][]int{}
	var order []int
	for _, st := range d.States {
		if _, ok := byRule[st.Accepting]; !ok {
			order = append(order, st.Accepting)
		}
		byRule[st.Accepting] = append(byRule[st.Accepting], st.ID)
	}
	partition := make([][]int, 0, len(order))
	for _, rule := range order {
		partition = append(partition, byRule[rule])
	}
	return partition
}

func assignBlocks(partition [][]int, blockOf []int) {
	for b, block := range partition {
		for _, id := range block {
			blockOf[id] = b
		}
	}
}

// signature is a state's per-symbol vector of target block indices (or -1
// for no transition), used as a map key to group states that must stay
// together.
func signature(d *DFA, blockOf []int, id int) [alphabet.NumSymbols + 1]int {
	var sig [alphabet.NumSymbols + 1]int
	st := d.States[id]
	for sym := 0; sym < alphabet.NumSymbols; sym++ {
		if st.Trans[sym] == noTarget {
			sig[sym] = -1
		} else {
			sig[sym] = blockOf[st.Trans[sym]]
		}
	}
	sig[alphabet.NumSymbols] = st.Accepting
	return sig
}

func refine(d *DFA, partition [][]int, blockOf []int) ([][]int, bool) {
	var next [][]int
	changed := false
	for _, block := range partition {
		groups := map[[alphabet.NumSymbols + 1]int][]int{}
		var order [][alphabet.NumSymbols + 1]int
		for _, id := range block {
			sig := signature(d, blockOf, id)
			if _, ok := groups[sig]; !ok {
				order = append(order, sig)
			}
			groups[sig] = append(groups[sig], id)
		}
		if len(order) > 1 {
			changed = true
		}
		for _, sig := range order {
			next = append(next, groups[sig])
		}
	}
	return next, changed
}

func build(d *DFA, partition [][]int, blockOf []int) (*DFA, error) {
	out := New()
	for range partition {
		if _, err := out.AddState(); err != nil {
			return nil, err
		}
	}
	for b, block := range partition {
		rep := d.States[block[0]]
		out.States[b].Accepting = rep.Accepting
		for sym := 0; sym < alphabet.NumSymbols; sym++ {
			if rep.Trans[sym] == noTarget {
				continue
			}
			target := blockOf[rep.Trans[sym]]
			if err := out.AddTransition(b, byte(sym), target); err != nil {
				return nil, err
			}
		}
	}
	out.Start = blockOf[d.Start]
	out.Freeze()
	return out, nil
}
