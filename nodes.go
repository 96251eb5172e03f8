package diceroll

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of an expression.
type node struct {
	kind nodeKind

	num  int
	name string
	roll RollSpec

	left  *node
	right *node

	// paren indicates the node was written inside parentheses. It only
	// affects how the node is displayed.
	paren bool
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodeRef  // lookup(name)
	nodeRoll // roll

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right rounding up
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeRef:
		return "Ref"
	case nodeRoll:
		return "Roll"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// op returns the operator for a binary node kind.
func (k nodeKind) op() Operator {
	switch k {
	case nodeAdd:
		return OpAdd
	case nodeSub:
		return OpSub
	case nodeMul:
		return OpMul
	case nodeDiv:
		return OpDiv
	default:
		panic("diceroll: no operator for node kind " + k.String())
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node in infix notation, with parentheses only where they
// were written.
func (n *node) fmt(b *strings.Builder) {
	if n.paren {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.Itoa(n.num))
	case nodeRef:
		b.WriteString(n.name)
	case nodeRoll:
		b.WriteString(n.roll.String())
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.op().String())
		b.WriteByte(' ')
		n.right.fmt(b)
	default:
		panic("diceroll: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
