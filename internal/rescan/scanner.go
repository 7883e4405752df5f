// Package rescan implements the lexical-analysis phase of the regex
// compiler: a byte-stream scanner that produces one token at a time, with
// support for backslash escapes and bracketed character classes.
package rescan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shadowCow/lexgen/internal/alphabet"
	"github.com/shadowCow/lexgen/internal/token"
)

// ScanningError reports a malformed regex byte stream: a trailing
// backslash, an unterminated character class, or an invalid range.
type ScanningError struct {
	Msg    string
	Line   int
	Column int
}

func (e *ScanningError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

var escapeSequence = map[byte]byte{
	'0': 0,
	'a': 7,
	'b': 8,
	't': 9,
	'n': 10,
	'v': 11,
	'f': 12,
	'r': 13,
}

var charToCategory = map[byte]token.Category{
	'\n': token.EOL,
	'*':  token.STAR,
	'+':  token.PLUS,
	'|':  token.PIPE,
	'(':  token.LPAREN,
	')':  token.RPAREN,
}

// Scanner is a regular-expression scanner (a.k.a. lexer) over a byte
// source. It owns the source and releases it on Close.
type Scanner struct {
	r      *bufio.Reader
	closer io.Closer
	log    io.Writer
	line   int
	column int
	atEOF  bool
}

// New creates a scanner over r. If log is non-nil, each lexed token is
// written to it in string form, space-separated, newline-terminated after
// an end token.
func New(r io.Reader, log io.Writer) *Scanner {
	closer, _ := r.(io.Closer)
	return &Scanner{
		r:      bufio.NewReader(r),
		closer: closer,
		log:    log,
		line:   1,
		column: 1,
	}
}

// Close releases the underlying input source, if it is closable. The
// scanner must not be used afterward.
func (s *Scanner) Close() error {
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}

// getc reads the next byte, tracking line/column. ok is false at EOF.
func (s *Scanner) getc() (b byte, ok bool) {
	c, err := s.r.ReadByte()
	if err != nil {
		s.atEOF = true
		return 0, false
	}
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c, true
}

// Lex reads a single token from the input. Once the input is exhausted,
// every subsequent call returns an EOF token.
func (s *Scanner) Lex() (token.Token, error) {
	startLine, startColumn := s.line, s.column

	if s.atEOF {
		tok := token.Token{Category: token.EOF, Line: startLine, Column: startColumn}
		s.logToken(tok)
		return tok, nil
	}

	c, ok := s.getc()
	if !ok {
		tok := token.Token{Category: token.EOF, Line: startLine, Column: startColumn}
		s.logToken(tok)
		return tok, nil
	}

	var tok token.Token
	var err error
	switch {
	case c == '\\':
		tok, err = s.lexEscape(startLine, startColumn)
	case c == '[':
		tok, err = s.lexCharClass(startLine, startColumn)
	default:
		if cat, known := charToCategory[c]; known {
			tok = token.Token{Category: cat, Line: startLine, Column: startColumn}
		} else {
			tok, err = s.symbolToken(c, startLine, startColumn)
		}
	}
	if err != nil {
		return token.Token{}, err
	}

	s.logToken(tok)
	return tok, nil
}

func (s *Scanner) symbolToken(c byte, line, column int) (token.Token, error) {
	if !alphabet.InAlphabet(c) {
		return token.Token{}, &ScanningError{Msg: fmt.Sprintf("byte 0x%02x outside alphabet", c), Line: line, Column: column}
	}
	return token.Token{Category: token.SYMBOL, Symbol: c, Line: line, Column: column}, nil
}

func (s *Scanner) lexEscape(line, column int) (token.Token, error) {
	c, ok := s.getc()
	if !ok {
		return token.Token{}, &ScanningError{Msg: "trailing backslash", Line: line, Column: column}
	}
	if mapped, isEscape := escapeSequence[c]; isEscape {
		return token.Token{Category: token.SYMBOL, Symbol: mapped, Line: line, Column: column}, nil
	}
	return s.symbolToken(c, line, column)
}

// lexCharClass scans a bracketed character class, assuming the opening '['
// has already been consumed. See spec §4.1 for the full grammar.
func (s *Scanner) lexCharClass(line, column int) (token.Token, error) {
	var set alphabet.Set
	invert := false
	first := true
	havePrev := false
	var prev byte

	for {
		c, ok := s.getc()
		if !ok {
			return token.Token{}, &ScanningError{Msg: "unmatched [ or [^", Line: line, Column: column}
		}

		if first && c == '^' && !invert {
			invert = true
			continue
		}

		if c == ']' {
			if first {
				set.Add(']')
				prev, havePrev = ']', true
				first = false
				continue
			}
			break
		}
		first = false

		if c == '-' {
			if !havePrev {
				set.Add('-')
				prev, havePrev = '-', true
				continue
			}
			next, ok := s.getc()
			if !ok {
				return token.Token{}, &ScanningError{Msg: "unmatched [ or [^", Line: line, Column: column}
			}
			if next == ']' {
				// Trailing hyphen: literal '-', then close.
				set.Add('-')
				break
			}
			if next < prev {
				return token.Token{}, &ScanningError{Msg: "invalid range end", Line: line, Column: column}
			}
			for b := int(prev); b <= int(next); b++ {
				set.Add(byte(b))
			}
			havePrev = false
			continue
		}

		// Ordinary literal byte: includes a non-leading '^' and, inside a
		// class, a backslash (escapes have no meaning here).
		if !alphabet.InAlphabet(c) {
			return token.Token{}, &ScanningError{Msg: fmt.Sprintf("byte 0x%02x outside alphabet", c), Line: line, Column: column}
		}
		set.Add(c)
		prev, havePrev = c, true
	}

	if invert {
		set = set.Complement()
	}
	if set.Len() == 0 {
		return token.Token{}, &ScanningError{Msg: "empty character class", Line: line, Column: column}
	}

	return token.Token{Category: token.CHARCLASS, Class: set.Members(), Line: line, Column: column}, nil
}

func (s *Scanner) logToken(tok token.Token) {
	if s.log == nil {
		return
	}
	if tok.IsEnd() {
		fmt.Fprintf(s.log, "%s\n", tok)
	} else {
		fmt.Fprintf(s.log, "%s ", tok)
	}
}
