package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/lexgen/internal/ast"
)

func TestFromRulesSingleSymbol(t *testing.T) {
	n, err := FromRules([]ast.Node{ast.Symbol{Byte: 'a'}})
	require.NoError(t, err)
	assert.True(t, n.Frozen())

	closure := EpsilonClosure(n, []int{n.Start})
	moved := Move(n, closure, 'a')
	require.Len(t, moved, 1)
	after := EpsilonClosure(n, moved)
	assert.Equal(t, 1, MinAccepting(n, after.IDs()))
}

func TestFromRulesAltPicksEitherBranch(t *testing.T) {
	n, err := FromRules([]ast.Node{
		ast.Alt{LHS: ast.Symbol{Byte: 'a'}, RHS: ast.Symbol{Byte: 'b'}},
	})
	require.NoError(t, err)

	start := EpsilonClosure(n, []int{n.Start})
	for _, sym := range []byte{'a', 'b'} {
		moved := Move(n, start, sym)
		require.NotEmptyf(t, moved, "expected a transition on %q", sym)
		after := EpsilonClosure(n, moved)
		assert.Equal(t, 1, MinAccepting(n, after.IDs()))
	}

	moved := Move(n, start, 'c')
	assert.Empty(t, moved)
}

func TestFromRulesKleeneAcceptsEmpty(t *testing.T) {
	n, err := FromRules([]ast.Node{ast.Kleene{Child: ast.Symbol{Byte: 'a'}}})
	require.NoError(t, err)

	start := EpsilonClosure(n, []int{n.Start})
	assert.Equal(t, 1, MinAccepting(n, start.IDs()))

	moved := Move(n, start, 'a')
	after := EpsilonClosure(n, moved)
	assert.Equal(t, 1, MinAccepting(n, after.IDs()))
	// still accepting and still able to consume more a's
	moved2 := Move(n, after, 'a')
	assert.NotEmpty(t, moved2)
}

func TestFromRulesPlusRejectsEmpty(t *testing.T) {
	n, err := FromRules([]ast.Node{ast.Plus{Child: ast.Symbol{Byte: 'a'}}})
	require.NoError(t, err)

	start := EpsilonClosure(n, []int{n.Start})
	assert.Equal(t, 0, MinAccepting(n, start.IDs()))

	moved := Move(n, start, 'a')
	after := EpsilonClosure(n, moved)
	assert.Equal(t, 1, MinAccepting(n, after.IDs()))
}

func TestFromRulesCharClass(t *testing.T) {
	n, err := FromRules([]ast.Node{ast.CharClass{Set: []byte{'x', 'y', 'z'}}})
	require.NoError(t, err)

	start := EpsilonClosure(n, []int{n.Start})
	for _, sym := range []byte{'x', 'y', 'z'} {
		moved := Move(n, start, sym)
		require.NotEmpty(t, moved)
	}
	assert.Empty(t, Move(n, start, 'w'))
}

func TestFromRulesPriorityIsEarliestRule(t *testing.T) {
	// Two rules both matching "a": the first-declared rule's ID must win.
	n, err := FromRules([]ast.Node{
		ast.Symbol{Byte: 'a'},
		ast.Symbol{Byte: 'a'},
	})
	require.NoError(t, err)

	start := EpsilonClosure(n, []int{n.Start})
	moved := Move(n, start, 'a')
	after := EpsilonClosure(n, moved)
	assert.Equal(t, 1, MinAccepting(n, after.IDs()))
}

func TestAddTransitionRejectsOutOfAlphabet(t *testing.T) {
	n := New()
	s0, _ := n.AddState()
	s1, _ := n.AddState()
	err := n.AddTransition(s0, 0x80, s1)
	require.Error(t, err)
}

func TestFrozenNFARejectsMutation(t *testing.T) {
	n, err := FromRules([]ast.Node{ast.Symbol{Byte: 'a'}})
	require.NoError(t, err)
	_, err = n.AddState()
	require.Error(t, err)
}

func TestGraphViewAccessors(t *testing.T) {
	n, err := FromRules([]ast.Node{ast.Symbol{Byte: 'a'}})
	require.NoError(t, err)
	assert.Equal(t, "NFA", n.TypeName())
	assert.Equal(t, n.Start, n.StartState())
	assert.Positive(t, n.NumStates())
	edges := n.Edges(n.Start)
	require.Len(t, edges, 1)
	assert.Equal(t, `"ε"`, edges[0].Label)
}
