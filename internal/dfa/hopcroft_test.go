package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRedundantDFA recognizes (a|b)c: two distinguishable start branches
// on 'a' and 'b' that are actually equivalent (both go on to accept on
// 'c' and nothing else), so a correct minimizer merges them.
func buildRedundantDFA(t *testing.T) *DFA {
	t.Helper()
	d := New()
	start, err := d.AddState()
	require.NoError(t, err)
	viaA, err := d.AddState()
	require.NoError(t, err)
	viaB, err := d.AddState()
	require.NoError(t, err)
	accept, err := d.AddState()
	require.NoError(t, err)
	dead, err := d.AddState()
	require.NoError(t, err)

	d.Start = start
	require.NoError(t, d.AddTransition(start, 'a', viaA))
	require.NoError(t, d.AddTransition(start, 'b', viaB))
	require.NoError(t, d.AddTransition(viaA, 'c', accept))
	require.NoError(t, d.AddTransition(viaB, 'c', accept))
	for _, s := range []int{start, viaA, viaB, accept, dead} {
		for _, sym := range []byte{'a', 'b', 'c'} {
			if d.Target(s, sym) == noTarget && s != start {
				require.NoError(t, d.AddTransition(s, sym, dead))
			}
		}
	}
	d.States[accept].Accepting = 1
	d.Freeze()
	return d
}

func TestMinimizeMergesEquivalentStates(t *testing.T) {
	d := buildRedundantDFA(t)
	min, err := Minimize(d)
	require.NoError(t, err)

	// viaA and viaB behave identically (both dead-end except 'c' to
	// accept), and dead is its own class, so the merged automaton has
	// start, {viaA,viaB}, accept, dead = 4 states instead of 5.
	assert.Equal(t, 4, min.NumStates())

	// Behavior is preserved: "ac" and "bc" both land on the same
	// accepting state.
	s := min.StartState()
	s = min.Target(s, 'a')
	require.NotEqual(t, -1, s)
	s = min.Target(s, 'c')
	require.NotEqual(t, -1, s)
	assert.Equal(t, 1, min.Accepting(s))

	s2 := min.StartState()
	s2 = min.Target(s2, 'b')
	s2 = min.Target(s2, 'c')
	assert.Equal(t, 1, min.Accepting(s2))
}

func TestMinimizeKeepsDistinctRulesSeparate(t *testing.T) {
	d := New()
	start, _ := d.AddState()
	acceptRule1, _ := d.AddState()
	acceptRule2, _ := d.AddState()
	d.Start = start
	require.NoError(t, d.AddTransition(start, 'a', acceptRule1))
	require.NoError(t, d.AddTransition(start, 'b', acceptRule2))
	d.States[acceptRule1].Accepting = 1
	d.States[acceptRule2].Accepting = 2
	d.Freeze()

	min, err := Minimize(d)
	require.NoError(t, err)
	// Both accepting states have no outgoing transitions and would look
	// identical under a signature that ignores rule ID; they must not be
	// merged because they report different rules.
	assert.Equal(t, 3, min.NumStates())
}

func TestMinimizeOnAlreadyMinimalDFAIsNoop(t *testing.T) {
	d := buildSimpleDFA(t)
	d.Freeze()
	min, err := Minimize(d)
	require.NoError(t, err)
	assert.Equal(t, d.NumStates(), min.NumStates())
}
