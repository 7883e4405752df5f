// Package reparse implements the syntactic-analysis phase of the regex
// compiler: a recursive-descent parser that turns a token stream into a
// list of regex ASTs, one per non-blank input line.
package reparse

import (
	"fmt"

	"github.com/shadowCow/lexgen/internal/ast"
	"github.com/shadowCow/lexgen/internal/token"
)

// ParsingError reports a violation of the regex grammar: an unterminated
// group, a missing term, or trailing junk after a complete regex.
type ParsingError struct {
	Msg    string
	Line   int
	Column int
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Lexer is the pull interface the parser consumes, satisfied by
// *rescan.Scanner.
type Lexer interface {
	Lex() (token.Token, error)
}

// Parser is a regular-expression parser over a token stream.
type Parser struct {
	lexer   Lexer
	current token.Token
}

// New creates a parser over lexer.
func New(lexer Lexer) *Parser {
	return &Parser{lexer: lexer}
}

func (p *Parser) consume() error {
	tok, err := p.lexer.Lex()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// ParseTopLevel parses a newline-delimited list of regular expressions.
// Blank lines are skipped silently; the result may be empty.
//
//	top_level   := (line)*
//	line        := EOL | regex EOL | regex EOF
func (p *Parser) ParseTopLevel() ([]ast.Node, error) {
	var nodes []ast.Node

	if err := p.consume(); err != nil {
		return nil, err
	}

	for p.current.Category != token.EOF {
		if p.current.Category != token.EOL {
			n, err := p.parseRegex()
			if err != nil {
				return nil, err
			}
			if !p.current.IsEnd() {
				return nil, &ParsingError{Msg: "junk after regex", Line: p.current.Line, Column: p.current.Column}
			}
			nodes = append(nodes, n)
		}

		if err := p.consume(); err != nil {
			return nil, err
		}
	}

	return nodes, nil
}

// regex := alternation
func (p *Parser) parseRegex() (ast.Node, error) {
	return p.parseAlternation()
}

// alternation := concat ('|' alternation)?   -- right-associative
func (p *Parser) parseAlternation() (ast.Node, error) {
	lhs, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.current.Category == token.PIPE {
		if err := p.consume(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		return ast.Alt{LHS: lhs, RHS: rhs}, nil
	}
	return lhs, nil
}

// concat := kleene (concat)?   -- right-associative
func (p *Parser) parseConcat() (ast.Node, error) {
	lhs, err := p.parseKleene()
	if err != nil {
		return nil, err
	}
	if p.startsTerm() {
		rhs, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return ast.Concat{LHS: lhs, RHS: rhs}, nil
	}
	return lhs, nil
}

// kleene := term ('*' | '+')?   -- postfix
func (p *Parser) parseKleene() (ast.Node, error) {
	n, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	switch p.current.Category {
	case token.STAR:
		if err := p.consume(); err != nil {
			return nil, err
		}
		return ast.Kleene{Child: n}, nil
	case token.PLUS:
		if err := p.consume(); err != nil {
			return nil, err
		}
		return ast.Plus{Child: n}, nil
	}
	return n, nil
}

// term := SYMBOL | CHARCLASS | '(' regex ')'
func (p *Parser) parseTerm() (ast.Node, error) {
	switch p.current.Category {
	case token.SYMBOL:
		n := ast.Symbol{Byte: p.current.Symbol}
		if err := p.consume(); err != nil {
			return nil, err
		}
		return n, nil
	case token.CHARCLASS:
		n := ast.CharClass{Set: p.current.Class}
		if err := p.consume(); err != nil {
			return nil, err
		}
		return n, nil
	case token.LPAREN:
		return p.parseParenthetical()
	default:
		return nil, &ParsingError{Msg: "expected regex term", Line: p.current.Line, Column: p.current.Column}
	}
}

func (p *Parser) parseParenthetical() (ast.Node, error) {
	line, column := p.current.Line, p.current.Column
	if err := p.consume(); err != nil { // eat '('
		return nil, err
	}
	n, err := p.parseRegex()
	if err != nil {
		return nil, err
	}
	if p.current.Category != token.RPAREN {
		return nil, &ParsingError{Msg: "unmatched parentheses", Line: line, Column: column}
	}
	if err := p.consume(); err != nil { // eat ')'
		return nil, err
	}
	return n, nil
}

func (p *Parser) startsTerm() bool {
	switch p.current.Category {
	case token.SYMBOL, token.CHARCLASS, token.LPAREN:
		return true
	}
	return false
}
