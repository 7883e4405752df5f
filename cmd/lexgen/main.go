// Command lexgen reads a list of regular expressions on stdin and emits a
// table-driven C scanner recognizing their union, with optional debug
// sinks for the regex tokens, ASTs, NFA, DFA, and minimized DFA produced
// along the way (spec §6).
package main

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/shadowCow/lexgen/internal/compiler"
)

type options struct {
	tokensFile  string
	astFile     string
	nfaFile     string
	dfaFile     string
	minimalFile string
	cFile       string
	verbose     bool
}

func parseFlags() *options {
	opts := &options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("lexgen compiles a list of regular expressions into a table-driven C scanner.")

	flagSet.CreateGroup("sinks", "Sinks",
		flagSet.StringVarP(&opts.tokensFile, "log", "l", "", "write the scanned regex token log to FILE"),
		flagSet.StringVarP(&opts.astFile, "ast", "a", "", "write one AST per line to FILE"),
		flagSet.StringVarP(&opts.nfaFile, "nfa", "n", "", "write the NFA in Graphviz dot form to FILE"),
		flagSet.StringVarP(&opts.dfaFile, "dfa", "d", "", "write the DFA in Graphviz dot form to FILE"),
		flagSet.StringVarP(&opts.minimalFile, "min", "m", "", "write the minimized DFA in Graphviz dot form to FILE"),
		flagSet.StringVarP(&opts.cFile, "c-out", "c", "", "write the generated C scanner to FILE (default stdout)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-stage state counts"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("parsing flags: %v", err)
	}
	return opts
}

// openSink opens path for writing if non-empty, returning (nil, nil) when
// the sink was not requested. Caller is responsible for closing non-nil
// files.
func openSink(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.Create(path)
}

func main() {
	opts := parseFlags()
	if opts.verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	tokensFile, err := openSink(opts.tokensFile)
	fatalOnErr(err, "opening token log sink")
	astFile, err := openSink(opts.astFile)
	fatalOnErr(err, "opening AST sink")
	nfaFile, err := openSink(opts.nfaFile)
	fatalOnErr(err, "opening NFA dot sink")
	dfaFile, err := openSink(opts.dfaFile)
	fatalOnErr(err, "opening DFA dot sink")
	minimalFile, err := openSink(opts.minimalFile)
	fatalOnErr(err, "opening minimized DFA dot sink")
	for _, f := range []*os.File{tokensFile, astFile, nfaFile, dfaFile, minimalFile} {
		if f != nil {
			defer f.Close()
		}
	}

	out := os.Stdout
	if opts.cFile != "" {
		cFile, err := os.Create(opts.cFile)
		fatalOnErr(err, "opening C output sink")
		defer cFile.Close()
		out = cFile
	}

	var sinks compiler.Sinks
	// Assigned individually, not via a struct literal, so that an unset
	// *os.File(nil) never gets boxed into a non-nil io.Writer interface
	// value (compiler.Compile treats any non-nil Sinks field as wanted).
	if tokensFile != nil {
		sinks.Tokens = tokensFile
	}
	if astFile != nil {
		sinks.AST = astFile
	}
	if nfaFile != nil {
		sinks.NFA = nfaFile
	}
	if dfaFile != nil {
		sinks.DFA = dfaFile
	}
	if minimalFile != nil {
		sinks.Minimal = minimalFile
	}

	if err := compiler.Compile(os.Stdin, out, sinks, opts.verbose); err != nil {
		gologger.Fatal().Msgf("%v", err)
	}
}

func fatalOnErr(err error, context string) {
	if err != nil {
		gologger.Fatal().Msgf("%s: %v", context, err)
	}
}
