package diceroll

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Operators contains the runes which are always tokens on their own.
const Operators = "+-*/"

// Brackets contains the grouping runes, which are also always tokens on their
// own.
const Brackets = "()"

type lexer struct {
	src string
	pos int
}

func lex(src string) *lexer {
	return &lexer{src: strings.TrimSpace(src)}
}

// next scans the next token. The second result is false once the input is
// exhausted.
func (l *lexer) next() (string, bool) {
	// Skip whitespace.
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += sz
	}
	if l.pos >= len(l.src) {
		return "", false
	}
	start := l.pos
	r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
	if isSingle(r) {
		l.pos += sz
		return l.src[start:l.pos], true
	}
	// Scan to the next whitespace or single-rune token.
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if unicode.IsSpace(r) || isSingle(r) {
			break
		}
		l.pos += sz
	}
	return l.src[start:l.pos], true
}

func isSingle(r rune) bool {
	return strings.ContainsRune(Operators, r) || strings.ContainsRune(Brackets, r)
}

// Tokenize splits an expression into string tokens. Whitespace separates
// tokens and never appears in them. Each operator and bracket is a token by
// itself; any other run of characters is one token. Blank input produces no
// tokens.
func Tokenize(src string) []string {
	var toks []string
	l := lex(src)
	for {
		tok, ok := l.next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}
