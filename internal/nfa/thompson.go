package nfa

import "github.com/shadowCow/lexgen/internal/ast"

// fragment is an NFA fragment with a single entry state and a single exit
// state; neither is accepting. Fragments compose structurally, mirroring
// the AST shape they were built from (spec §4.3: Thompson's construction).
type fragment struct {
	entry, exit int
}

// FromRules builds a single NFA recognizing the union of rules, in the
// order given. Rule i (0-indexed) is assigned accepting ID i+1; rule
// priority among ties goes to the lowest ID, i.e. the earliest rule.
func FromRules(rules []ast.Node) (*NFA, error) {
	n := New()
	start, err := n.AddState()
	if err != nil {
		return nil, err
	}
	n.Start = start

	for i, rule := range rules {
		frag, err := build(n, rule)
		if err != nil {
			return nil, err
		}
		if err := n.AddEpsilon(start, frag.entry); err != nil {
			return nil, err
		}
		n.States[frag.exit].Accepting = i + 1
	}

	n.Freeze()
	return n, nil
}

func build(n *NFA, node ast.Node) (fragment, error) {
	switch v := node.(type) {
	case ast.Symbol:
		return buildSymbol(n, v.Byte)
	case ast.CharClass:
		return buildCharClass(n, v.Set)
	case ast.Kleene:
		return buildKleene(n, v.Child)
	case ast.Plus:
		return buildPlus(n, v.Child)
	case ast.Concat:
		return buildConcat(n, v.LHS, v.RHS)
	case ast.Alt:
		return buildAlt(n, v.LHS, v.RHS)
	default:
		panic("nfa: unknown ast node type")
	}
}

func buildSymbol(n *NFA, b byte) (fragment, error) {
	entry, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	exit, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	if err := n.AddTransition(entry, b, exit); err != nil {
		return fragment{}, err
	}
	return fragment{entry: entry, exit: exit}, nil
}

// buildCharClass desugars [abc] as Alt(a, Alt(b, c)) at the automaton
// level: a shared entry/exit with one transition per member byte.
func buildCharClass(n *NFA, set []byte) (fragment, error) {
	entry, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	exit, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	for _, b := range set {
		if err := n.AddTransition(entry, b, exit); err != nil {
			return fragment{}, err
		}
	}
	return fragment{entry: entry, exit: exit}, nil
}

// buildKleene builds the standard four-epsilon Thompson construction for
// zero-or-more repetition.
func buildKleene(n *NFA, child ast.Node) (fragment, error) {
	inner, err := build(n, child)
	if err != nil {
		return fragment{}, err
	}
	entry, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	exit, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(entry, inner.entry); err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(entry, exit); err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(inner.exit, inner.entry); err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(inner.exit, exit); err != nil {
		return fragment{}, err
	}
	return fragment{entry: entry, exit: exit}, nil
}

// buildPlus builds child followed by Kleene(child): the parser keeps a+ as
// an ast.Plus node, and it is desugared to Concat(a, a*) here, at the
// automaton level.
func buildPlus(n *NFA, child ast.Node) (fragment, error) {
	first, err := build(n, child)
	if err != nil {
		return fragment{}, err
	}
	star, err := buildKleene(n, child)
	if err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(first.exit, star.entry); err != nil {
		return fragment{}, err
	}
	return fragment{entry: first.entry, exit: star.exit}, nil
}

func buildConcat(n *NFA, lhs, rhs ast.Node) (fragment, error) {
	left, err := build(n, lhs)
	if err != nil {
		return fragment{}, err
	}
	right, err := build(n, rhs)
	if err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(left.exit, right.entry); err != nil {
		return fragment{}, err
	}
	return fragment{entry: left.entry, exit: right.exit}, nil
}

func buildAlt(n *NFA, lhs, rhs ast.Node) (fragment, error) {
	left, err := build(n, lhs)
	if err != nil {
		return fragment{}, err
	}
	right, err := build(n, rhs)
	if err != nil {
		return fragment{}, err
	}
	entry, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	exit, err := n.AddState()
	if err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(entry, left.entry); err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(entry, right.entry); err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(left.exit, exit); err != nil {
		return fragment{}, err
	}
	if err := n.AddEpsilon(right.exit, exit); err != nil {
		return fragment{}, err
	}
	return fragment{entry: entry, exit: exit}, nil
}
