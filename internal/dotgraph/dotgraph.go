// Package dotgraph renders an automaton.GraphView as Graphviz dot source,
// for the -n/-d/-m sinks (spec §6). The layout mirrors pylex's
// Automaton.print_graphviz: a left-to-right digraph with an invisible
// entry node pointing at the start state, double circles for accepting
// states carrying their rule ID as a subscript, and one edge per
// transition.
package dotgraph

import (
	"fmt"
	"io"

	"github.com/shadowCow/lexgen/internal/automaton"
)

// Write renders g to w as a Graphviz dot digraph.
func Write(w io.Writer, g automaton.GraphView) error {
	bw := &errWriter{w: w}

	fmt.Fprintf(bw, "digraph %s {\n", g.TypeName())
	fmt.Fprintln(bw, "    rankdir = LR;")
	fmt.Fprintln(bw, "    I [style = invis];")
	fmt.Fprintf(bw, "    I -> S%d;\n", g.StartState())

	for id := 0; id < g.NumStates(); id++ {
		writeState(bw, g, id)
	}

	fmt.Fprintln(bw, "}")
	return bw.err
}

func writeState(w io.Writer, g automaton.GraphView, id int) {
	accepting := g.Accepting(id)

	subscript := fmt.Sprintf("%d", id)
	if accepting > 0 {
		subscript = fmt.Sprintf("%d,%d", id, accepting)
	}
	fmt.Fprintf(w, "    S%d [label = <s<sub>%s</sub>>, shape = circle", id, subscript)
	if accepting > 0 {
		fmt.Fprint(w, ", peripheries = 2")
	}
	fmt.Fprintln(w, "];")

	for _, edge := range g.Edges(id) {
		fmt.Fprintf(w, "    S%d -> S%d [label = %s];\n", id, edge.Target, edge.Label)
	}
}

// errWriter swallows individual Fprint errors and surfaces the first one,
// since dot rendering is a sequence of unconditional writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
