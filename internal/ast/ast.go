// Package ast defines the abstract syntax tree produced by the regex
// parser. Nodes are immutable once built and form a tagged variant closed
// under the six shapes a regex can take.
package ast

import (
	"fmt"
	"strings"
)

// Node is the marker interface implemented by every AST node type.
type Node interface {
	// String renders the node in the debug form emitted by the -a sink.
	String() string
	isNode()
}

// Symbol is a leaf node matching a single byte.
type Symbol struct {
	Byte byte
}

func (Symbol) isNode() {}
func (s Symbol) String() string {
	return fmt.Sprintf("Symbol(%q)", string(rune(s.Byte)))
}

// CharClass is a leaf node matching any one byte from Set. Semantically
// equivalent to an alternation of its members. Set must be sorted and
// non-empty; that invariant is established by the scanner/parser.
type CharClass struct {
	Set []byte
}

func (CharClass) isNode() {}
func (c CharClass) String() string {
	members := make([]string, len(c.Set))
	for i, b := range c.Set {
		members[i] = string(rune(b))
	}
	return fmt.Sprintf("CharClass(%q)", strings.Join(members, ""))
}

// Kleene matches zero or more repetitions of Child.
type Kleene struct {
	Child Node
}

func (Kleene) isNode() {}
func (k Kleene) String() string { return fmt.Sprintf("Kleene(%s)", k.Child) }

// Plus matches one or more repetitions of Child. Semantically
// Concat(Child, Kleene(Child)).
type Plus struct {
	Child Node
}

func (Plus) isNode() {}
func (p Plus) String() string { return fmt.Sprintf("Plus(%s)", p.Child) }

// Alt matches LHS or RHS.
type Alt struct {
	LHS, RHS Node
}

func (Alt) isNode() {}
func (a Alt) String() string { return fmt.Sprintf("Alt(%s, %s)", a.LHS, a.RHS) }

// Concat matches LHS followed by RHS.
type Concat struct {
	LHS, RHS Node
}

func (Concat) isNode() {}
func (c Concat) String() string { return fmt.Sprintf("Concat(%s, %s)", c.LHS, c.RHS) }

// Size returns the number of nodes in the tree rooted at n, used to bound
// parser output (spec invariant: parser output is O(|input|)).
func Size(n Node) int {
	switch v := n.(type) {
	case Symbol, CharClass:
		return 1
	case Kleene:
		return 1 + Size(v.Child)
	case Plus:
		return 1 + Size(v.Child)
	case Alt:
		return 1 + Size(v.LHS) + Size(v.RHS)
	case Concat:
		return 1 + Size(v.LHS) + Size(v.RHS)
	default:
		return 0
	}
}
