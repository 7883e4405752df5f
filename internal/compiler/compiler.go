// Package compiler wires the regex->scanner pipeline together (stages
// A through I), mirroring the original pylex.py main()'s stage ordering:
// scan+parse all rules, optionally render the AST list, build the NFA,
// optionally render its dot form, subset-construct to a DFA, optionally
// render its dot form, minimize, optionally render its dot form, then
// always emit C.
package compiler

import (
	"fmt"
	"io"

	"github.com/projectdiscovery/gologger"

	"github.com/shadowCow/lexgen/internal/codegen"
	"github.com/shadowCow/lexgen/internal/dfa"
	"github.com/shadowCow/lexgen/internal/dotgraph"
	"github.com/shadowCow/lexgen/internal/nfa"
	"github.com/shadowCow/lexgen/internal/reparse"
	"github.com/shadowCow/lexgen/internal/rescan"
	"github.com/shadowCow/lexgen/internal/subset"
)

// Sinks names the optional debug outputs a caller may want populated
// alongside the mandatory generated C. A nil sink is skipped.
type Sinks struct {
	Tokens  io.Writer // -l: regex token log
	AST     io.Writer // -a: one AST per line
	NFA     io.Writer // -n: NFA dot
	DFA     io.Writer // -d: DFA dot
	Minimal io.Writer // -m: minimized DFA dot
}

// Compile runs the full pipeline over src (one regex per line) and writes
// the generated C scanner to out. Any populated Sinks field is written as
// its corresponding intermediate representation becomes available.
// Verbose, when true, logs per-stage state counts via gologger.
func Compile(src io.Reader, out io.Writer, sinks Sinks, verbose bool) error {
	scanner := rescan.New(src, sinks.Tokens)
	defer scanner.Close()

	parser := reparse.New(scanner)
	nodes, err := parser.ParseTopLevel()
	if err != nil {
		return fmt.Errorf("compiling regex source: %w", err)
	}
	if verbose {
		gologger.Verbose().Msgf("parsed %d rule(s)", len(nodes))
	}

	if sinks.AST != nil {
		for _, n := range nodes {
			fmt.Fprintln(sinks.AST, n.String())
		}
	}

	nfaGraph, err := nfa.FromRules(nodes)
	if err != nil {
		return fmt.Errorf("building NFA: %w", err)
	}
	if verbose {
		gologger.Verbose().Msgf("NFA: %d state(s)", nfaGraph.NumStates())
	}
	if sinks.NFA != nil {
		if err := dotgraph.Write(sinks.NFA, nfaGraph); err != nil {
			return fmt.Errorf("rendering NFA dot: %w", err)
		}
	}

	dfaGraph, err := subset.Construct(nfaGraph)
	if err != nil {
		return fmt.Errorf("subset construction: %w", err)
	}
	if verbose {
		gologger.Verbose().Msgf("DFA: %d state(s)", dfaGraph.NumStates())
	}
	if sinks.DFA != nil {
		if err := dotgraph.Write(sinks.DFA, dfaGraph); err != nil {
			return fmt.Errorf("rendering DFA dot: %w", err)
		}
	}

	minimal, err := dfa.Minimize(dfaGraph)
	if err != nil {
		return fmt.Errorf("minimizing DFA: %w", err)
	}
	if verbose {
		gologger.Verbose().Msgf("minimized DFA: %d state(s)", minimal.NumStates())
	}
	if sinks.Minimal != nil {
		if err := dotgraph.Write(sinks.Minimal, minimal); err != nil {
			return fmt.Errorf("rendering minimized DFA dot: %w", err)
		}
	}

	source, err := codegen.Generate(minimal)
	if err != nil {
		return fmt.Errorf("generating C scanner: %w", err)
	}
	if _, err := io.WriteString(out, source); err != nil {
		return fmt.Errorf("writing generated C scanner: %w", err)
	}

	return nil
}
