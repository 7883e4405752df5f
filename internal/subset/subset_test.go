package subset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowCow/lexgen/internal/ast"
	"github.com/shadowCow/lexgen/internal/nfa"
)

func TestConstructSingleSymbol(t *testing.T) {
	n, err := nfa.FromRules([]ast.Node{ast.Symbol{Byte: 'a'}})
	require.NoError(t, err)
	d, err := Construct(n)
	require.NoError(t, err)

	s := d.Target(d.StartState(), 'a')
	require.NotEqual(t, -1, s)
	assert.Equal(t, 1, d.Accepting(s))
	assert.Equal(t, -1, d.Target(d.StartState(), 'b'))
}

func TestConstructDeterminizesSharedPrefix(t *testing.T) {
	// ab | ac: the NFA has two competing 'a' edges from a shared start;
	// the DFA must merge them into a single deterministic 'a' edge.
	n, err := nfa.FromRules([]ast.Node{
		ast.Concat{LHS: ast.Symbol{Byte: 'a'}, RHS: ast.Symbol{Byte: 'b'}},
		ast.Concat{LHS: ast.Symbol{Byte: 'a'}, RHS: ast.Symbol{Byte: 'c'}},
	})
	require.NoError(t, err)
	d, err := Construct(n)
	require.NoError(t, err)

	afterA := d.Target(d.StartState(), 'a')
	require.NotEqual(t, -1, afterA)
	afterAB := d.Target(afterA, 'b')
	require.NotEqual(t, -1, afterAB)
	assert.Equal(t, 1, d.Accepting(afterAB))
	afterAC := d.Target(afterA, 'c')
	require.NotEqual(t, -1, afterAC)
	assert.Equal(t, 2, d.Accepting(afterAC))
}

func TestConstructPriorityCollapsesToEarliestRule(t *testing.T) {
	// "if" as a keyword (rule 1) vs identifier char class+ (rule 2): when
	// both can match, the DFA state inherits rule 1.
	n, err := nfa.FromRules([]ast.Node{
		ast.Concat{LHS: ast.Symbol{Byte: 'i'}, RHS: ast.Symbol{Byte: 'f'}},
		ast.Plus{Child: ast.CharClass{Set: []byte{'i', 'f'}}},
	})
	require.NoError(t, err)
	d, err := Construct(n)
	require.NoError(t, err)

	s := d.Target(d.StartState(), 'i')
	s = d.Target(s, 'f')
	require.NotEqual(t, -1, s)
	assert.Equal(t, 1, d.Accepting(s))
}

func TestConstructStartStateHasNoAcceptance(t *testing.T) {
	n, err := nfa.FromRules([]ast.Node{ast.Symbol{Byte: 'a'}})
	require.NoError(t, err)
	d, err := Construct(n)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Accepting(d.StartState()))
}
