package diceroll

import (
	"sort"
	"strings"
)

// Expr = Term { Op Term }
// Term = num | name | roll | '(' Expr ')'
// Op = '+' | '-' | '*' | '/'

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of context names used in the expression.
	names []string
}

// pending is an entry on the parser's operator stack: either a binary
// operator or an open bracket.
type pending struct {
	op   operator
	open bool
	col  int
}

// Parse builds an expression from a token sequence using operator precedence.
// Multiplication and division bind more tightly than addition and subtraction,
// and operators of equal precedence group left to right.
func Parse(toks []Token) (*Expr, error) {
	if len(toks) == 0 {
		return nil, &EmptyExpressionError{}
	}
	var (
		operands []*node
		ops      []pending
		names    = make(map[string]bool)
	)
	// reduce pops the top operator and its two operands and pushes the
	// combined node.
	reduce := func() {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		r := operands[len(operands)-1]
		l := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, &node{kind: op.op.op, left: l, right: r})
	}

	i := 0
	for {
		// Expect an operand, possibly preceded by open brackets.
		for i < len(toks) && toks[i] == Token(ParenLeft) {
			ops = append(ops, pending{open: true, col: i + 1})
			i++
		}
		if i >= len(toks) {
			return nil, &SyntaxError{Expected: "operand"}
		}
		n := leaf(toks[i])
		if n == nil {
			return nil, &SyntaxError{Col: i + 1, Token: toks[i].String(), Expected: "operand"}
		}
		if n.kind == nodeRef {
			names[n.name] = true
		}
		operands = append(operands, n)
		i++

		// Expect an operator, possibly preceded by close brackets.
		for i < len(toks) && toks[i] == Token(ParenRight) {
			for len(ops) > 0 && !ops[len(ops)-1].open {
				reduce()
			}
			if len(ops) == 0 {
				return nil, &BracketError{Col: i + 1, Right: true}
			}
			ops = ops[:len(ops)-1]
			operands[len(operands)-1].paren = true
			i++
		}
		if i >= len(toks) {
			break
		}
		tok, ok := toks[i].(Operator)
		if !ok {
			return nil, &SyntaxError{Col: i + 1, Token: toks[i].String(), Expected: "operator"}
		}
		prec := binop(tok)
		for len(ops) > 0 && !ops[len(ops)-1].open && !prec.moreBinding(ops[len(ops)-1].op) {
			reduce()
		}
		ops = append(ops, pending{op: prec, col: i + 1})
		i++
	}

	for len(ops) > 0 {
		if top := ops[len(ops)-1]; top.open {
			return nil, &BracketError{Col: top.col, Right: false}
		}
		reduce()
	}
	if len(operands) != 1 {
		return nil, &SyntaxError{Expected: "operator"}
	}

	ex := Expr{
		n:     operands[0],
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sort.Strings(ex.names)
	return &ex, nil
}

// leaf creates a leaf node for an operand token. If the token is not an
// operand, the result is nil.
func leaf(tok Token) *node {
	switch tok := tok.(type) {
	case Number:
		return &node{kind: nodeNum, num: int(tok)}
	case ContextRef:
		return &node{kind: nodeRef, name: string(tok)}
	case RollSpec:
		return &node{kind: nodeRoll, roll: tok}
	case Operator, Paren:
		return nil
	default:
		panic("diceroll: unknown token type: " + tok.String())
	}
}

// ParseString tokenizes and parses an expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	toks, err := ParseTokens(Tokenize(src), opts...)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Vars returns the context names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String formats the expression in infix notation, with parentheses where
// they were written in the source. Nested redundant parentheses collapse to
// one pair, so "((1 + 2)) * 3" formats as "(1 + 2) * 3".
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// moreBinding reports whether p binds more tightly than an operator already
// on the stack, in which case the stacked operator must wait.
func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets the precedence information for an operator.
func binop(op Operator) operator {
	switch op {
	case OpAdd:
		return operator{1, false, nodeAdd}
	case OpSub:
		return operator{1, false, nodeSub}
	case OpMul:
		return operator{2, false, nodeMul}
	case OpDiv:
		return operator{2, false, nodeDiv}
	default:
		panic("diceroll: unknown operator " + op.String())
	}
}
