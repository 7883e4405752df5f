// Package codegen implements the code generator (spec component I):
// minimal DFA in, a self-contained C translation unit out, exporting
//
//	char *pylex(FILE *file, int *category_out);
//
// The driver body (backtracking loop, buffer-growth macros) is a fixed
// template; only the two table initializers vary per grammar, so it is
// rendered with fasttemplate rather than assembled by hand.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/projectdiscovery/fasttemplate"

	"github.com/shadowCow/lexgen/internal/alphabet"
	"github.com/shadowCow/lexgen/internal/dfa"
)

const openTag, closeTag = "{{", "}}"

const source = `#include <stdio.h>
#include <stdlib.h>

static int accepting[] = {{accepting}};
static int transitions[][{{num_symbols}}] = {{transitions}};

static int *backtrack_stack = NULL;
static size_t stack_size = 0;
static size_t stack_capacity = 0;

#define PUSH_STACK(state) \
    do { \
        if (stack_size == stack_capacity) { \
            if (stack_capacity == 0) \
                stack_capacity = 64; \
            else \
                stack_capacity *= 2; \
            backtrack_stack = realloc(backtrack_stack, stack_capacity * sizeof(int)); \
            if (!backtrack_stack) { \
                fprintf(stderr, "pylex: memory exhausted\n"); \
                exit(EXIT_FAILURE); \
            } \
        } \
        backtrack_stack[stack_size++] = state; \
    } while (0);

char *pylex(FILE *file, int *category_out)
{
    char *lexeme = NULL;
    size_t lexeme_size = 0;
    size_t lexeme_capacity = 0;

#define APPEND_TO_LEXEME(c) \
    do { \
        if (lexeme_size == lexeme_capacity) { \
            if (lexeme_capacity == 0) \
                lexeme_capacity = 64; \
            else \
                lexeme_capacity *= 2; \
            lexeme = realloc(lexeme, lexeme_capacity); \
            if (!lexeme) { \
                fprintf(stderr, "pylex: memory exhausted\n"); \
                exit(EXIT_FAILURE); \
            } \
        } \
        lexeme[lexeme_size++] = c; \
    } while (0);

    stack_size = 0;

    int curstate = 0;

    do {
        char c = getc(file);
        if (c == EOF)
            break;

        APPEND_TO_LEXEME(c);

        if (accepting[curstate])
            stack_size = 0;
        PUSH_STACK(curstate);

        curstate = transitions[curstate][(unsigned char) c];
    } while (curstate != -1);

    while (!accepting[curstate] && stack_size > 0) {
        curstate = backtrack_stack[--stack_size];

        if (ungetc(lexeme[--lexeme_size], file) == EOF) {
            fprintf(stderr, "pylex: backtracking error\n");
            exit(EXIT_FAILURE);
        }
    }

    if (accepting[curstate]) {
        *category_out = accepting[curstate];
        APPEND_TO_LEXEME('\0');
        return lexeme;
    } else {
        *category_out = -1;
        return NULL;
    }
}
`

// Generate renders d's scanner tables into the C driver template and
// returns the complete translation unit as a string. d's start state must
// be state 0; callers pass the output of subset.Construct or
// dfa.Minimize, both of which number the start state first.
func Generate(d *dfa.DFA) (string, error) {
	if d.StartState() != 0 {
		return "", fmt.Errorf("codegen: DFA start state must be 0, got %d", d.StartState())
	}

	values := map[string]interface{}{
		"accepting":   initializerList(acceptingColumn(d)),
		"num_symbols": strconv.Itoa(alphabet.NumSymbols),
		"transitions": nestedInitializerList(transitionTable(d)),
	}
	return fasttemplate.ExecuteStringStd(source, openTag, closeTag, values), nil
}

func acceptingColumn(d *dfa.DFA) []int {
	col := make([]int, d.NumStates())
	for i := range col {
		col[i] = d.Accepting(i)
	}
	return col
}

func transitionTable(d *dfa.DFA) [][]int {
	table := make([][]int, d.NumStates())
	for i := range table {
		row := make([]int, alphabet.NumSymbols)
		for sym := 0; sym < alphabet.NumSymbols; sym++ {
			row[sym] = d.Target(i, byte(sym))
		}
		table[i] = row
	}
	return table
}

func initializerList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func nestedInitializerList(rows [][]int) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = "    " + initializerList(row) + ","
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}
