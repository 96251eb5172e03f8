package diceroll

import (
	"regexp"
	"strconv"
	"strings"
)

// Token is a parsed token. It is one of Operator, Paren, Number, ContextRef,
// or RollSpec.
type Token interface {
	// String returns the token as it would be written in an expression.
	String() string
	token()
}

// Operator is a binary arithmetic operator.
type Operator int8

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Paren is a grouping bracket.
type Paren bool

const (
	ParenLeft  Paren = false
	ParenRight Paren = true
)

func (p Paren) String() string {
	if p == ParenRight {
		return ")"
	}
	return "("
}

// Number is an integer literal.
type Number int

func (n Number) String() string {
	return strconv.Itoa(int(n))
}

// ContextRef is a named value resolved when the expression is evaluated.
type ContextRef string

func (c ContextRef) String() string {
	return string(c)
}

// RollSpec describes a dice term. The zero value of each modifier means the
// modifier is absent.
type RollSpec struct {
	// Count is the number of dice to roll.
	Count int
	// Sides is the number of sides on each die.
	Sides int
	// Reroll rerolls a die once if it shows Reroll or less.
	Reroll int
	// RecursiveReroll rerolls a die for as long as it shows RecursiveReroll
	// or less.
	RecursiveReroll int
	// Pick keeps only the highest Pick dice.
	Pick int
	// PickLowest keeps only the lowest PickLowest dice.
	PickLowest int
	// Drop discards the lowest Drop dice.
	Drop int
}

// String formats the roll in dice notation with suffixes in canonical order.
func (s RollSpec) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Count))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(s.Sides))
	suffix := func(p string, n int) {
		if n > 0 {
			b.WriteString(p)
			b.WriteString(strconv.Itoa(n))
		}
	}
	suffix("rr", s.RecursiveReroll)
	suffix("r", s.Reroll)
	suffix("pl", s.PickLowest)
	suffix("p", s.Pick)
	suffix("d", s.Drop)
	return b.String()
}

func (Operator) token()   {}
func (Paren) token()      {}
func (Number) token()     {}
func (ContextRef) token() {}
func (RollSpec) token()   {}

var (
	dicePrefix = regexp.MustCompile(`^(\d*)d(\d+)`)
	numberTok  = regexp.MustCompile(`^\d+$`)
	refTok     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// suffixes lists dice modifiers in the order they are extracted. Extracting
// rr before r and pl before p keeps the shorter patterns from claiming part
// of the longer ones.
var suffixes = []struct {
	name string
	re   *regexp.Regexp
	set  func(*RollSpec, int)
}{
	{"rr", regexp.MustCompile(`rr(\d+)`), func(s *RollSpec, n int) { s.RecursiveReroll = n }},
	{"r", regexp.MustCompile(`r(\d+)`), func(s *RollSpec, n int) { s.Reroll = n }},
	{"pl", regexp.MustCompile(`pl(\d+)`), func(s *RollSpec, n int) { s.PickLowest = n }},
	{"p", regexp.MustCompile(`p(\d+)`), func(s *RollSpec, n int) { s.Pick = n }},
	{"d", regexp.MustCompile(`d(\d+)`), func(s *RollSpec, n int) { s.Drop = n }},
}

// ParseToken parses a single string token.
func ParseToken(tok string, opts ...ParseOption) (Token, error) {
	p := newParsectx(opts)
	return p.token(tok, 0)
}

// ParseTokens parses each of a sequence of string tokens. The first token
// that fails to parse aborts the whole sequence.
func ParseTokens(toks []string, opts ...ParseOption) ([]Token, error) {
	p := newParsectx(opts)
	r := make([]Token, 0, len(toks))
	for i, tok := range toks {
		t, err := p.token(tok, i+1)
		if err != nil {
			return nil, err
		}
		r = append(r, t)
	}
	return r, nil
}

// token parses one token. pos is the 1-based index of the token in its
// expression, or 0 if unknown.
func (p *parsectx) token(tok string, pos int) (Token, error) {
	switch tok {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "(":
		return ParenLeft, nil
	case ")":
		return ParenRight, nil
	}
	switch {
	case dicePrefix.MatchString(tok):
		return p.rollSpec(tok, pos)
	case numberTok.MatchString(tok):
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &TokenError{Col: pos, Token: tok, Err: err}
		}
		return Number(n), nil
	case refTok.MatchString(tok):
		return ContextRef(tok), nil
	default:
		return nil, &TokenError{Col: pos, Token: tok}
	}
}

func (p *parsectx) rollSpec(tok string, pos int) (Token, error) {
	bad := func(reason string) error {
		return &RollSpecError{Col: pos, Token: tok, Reason: reason}
	}
	m := dicePrefix.FindStringSubmatch(tok)
	if m[1] == "" {
		return nil, bad("missing number of dice")
	}
	var s RollSpec
	var err error
	if s.Count, err = strconv.Atoi(m[1]); err != nil {
		return nil, bad("number of dice out of range")
	}
	if s.Sides, err = strconv.Atoi(m[2]); err != nil {
		return nil, bad("number of sides out of range")
	}
	if s.Count <= 0 || s.Sides <= 0 {
		return nil, bad("dice count and sides must be greater than 0")
	}
	if p.maxDice > 0 && s.Count > p.maxDice {
		return nil, bad("more than " + strconv.Itoa(p.maxDice) + " dice")
	}
	if p.maxSides > 0 && s.Sides > p.maxSides {
		return nil, bad("more than " + strconv.Itoa(p.maxSides) + " sides")
	}

	rest := tok[len(m[0]):]
	for _, sfx := range suffixes {
		loc := sfx.re.FindAllStringSubmatchIndex(rest, -1)
		switch len(loc) {
		case 0:
			continue
		case 1: // ok
		default:
			return nil, bad("duplicate " + sfx.name + " suffix")
		}
		n, err := strconv.Atoi(rest[loc[0][2]:loc[0][3]])
		if err != nil {
			return nil, bad(sfx.name + " suffix out of range")
		}
		if n < 1 {
			return nil, bad(sfx.name + " suffix must be at least 1")
		}
		sfx.set(&s, n)
		rest = rest[:loc[0][0]] + rest[loc[0][1]:]
	}
	if rest != "" {
		return nil, bad("unrecognized suffix " + strconv.Quote(rest))
	}

	switch {
	case s.RecursiveReroll >= s.Sides:
		return nil, bad("recursive reroll threshold must be less than the number of sides")
	case s.Reroll >= s.Sides:
		return nil, bad("reroll threshold must be less than the number of sides")
	case s.Pick > 0 && s.PickLowest > 0:
		return nil, bad("cannot pick both highest and lowest")
	case s.Pick > s.Count, s.PickLowest > s.Count:
		return nil, bad("cannot pick more dice than rolled")
	case s.Drop > s.Count:
		return nil, bad("cannot drop more dice than rolled")
	case s.Pick+s.Drop > s.Count:
		return nil, bad("cannot pick and drop more dice than rolled")
	}
	return s, nil
}
