package diceroll

import (
	"strconv"

	"github.com/google/uuid"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	names map[string]int
	src   Source
	ids   func() string
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  int
	}
	varsopt map[string]int
	srcopt  struct{ src Source }
	idopt   func() string
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (srcopt) ctxOption()  {}
func (idopt) ctxOption()   {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val int) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]int) ContextOption {
	return varsopt(vars)
}

// WithSource sets the source of randomness used to roll dice. A nil src
// selects DefaultSource.
func WithSource(src Source) ContextOption {
	return srcopt{src}
}

// WithIDs sets the function used to generate result identifiers. The default
// generates random UUIDs.
func WithIDs(gen func() string) ContextOption {
	return idopt(gen)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{src: DefaultSource, ids: uuid.NewString}
	return ctx.Clone(opts...)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value int) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]int)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is defined.
func (ctx *Context) Lookup(name string) (int, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Vars returns a copy of the variables defined in the context.
func (ctx *Context) Vars() map[string]int {
	m := make(map[string]int, len(ctx.names))
	for k, v := range ctx.names {
		m[k] = v
	}
	return m
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]int, len(ctx.names)),
		src:   ctx.src,
		ids:   ctx.ids,
	}
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case srcopt:
			n.src = opt.src
			if n.src == nil {
				n.src = DefaultSource
			}
		case idopt:
			n.ids = opt
		default:
			panic("diceroll: unknown option type")
		}
	}
	return &n
}

func (ctx *Context) newID() string {
	if ctx.ids == nil {
		return uuid.NewString()
	}
	return ctx.ids()
}

// partial is the result of evaluating a subtree.
type partial struct {
	trace []Entry
	total int
}

// Eval evaluates an expression. The only errors are *NameError for a context
// name with no value and *DivisionError for division by zero. No partial
// result is returned on error.
func (ctx *Context) Eval(e *Expr) (*Result, error) {
	p, err := e.n.eval(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Trace: p.trace, Total: p.total, ID: ctx.newID()}, nil
}

// EvalString tokenizes, parses, and evaluates an expression. The first error
// from any stage is returned unchanged.
func (ctx *Context) EvalString(src string, opts ...ParseOption) (*Result, error) {
	e, err := ParseString(src, opts...)
	if err != nil {
		return nil, err
	}
	return ctx.Eval(e)
}

// eval evaluates the node and its children.
func (n *node) eval(ctx *Context) (partial, error) {
	var p partial
	switch n.kind {
	case nodeNum:
		p = partial{trace: []Entry{Number(n.num)}, total: n.num}
	case nodeRef:
		v, ok := ctx.names[n.name]
		if !ok {
			return partial{}, &NameError{Name: n.name}
		}
		p = partial{trace: []Entry{Number(v)}, total: v}
	case nodeRoll:
		g := ctx.roll(n.roll)
		p = partial{trace: []Entry{g}, total: g.Total}
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		l, err := n.left.eval(ctx)
		if err != nil {
			return partial{}, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return partial{}, err
		}
		p.trace = make([]Entry, 0, len(l.trace)+len(r.trace)+3)
		p.trace = append(p.trace, l.trace...)
		p.trace = append(p.trace, n.kind.op())
		p.trace = append(p.trace, r.trace...)
		switch n.kind {
		case nodeAdd:
			p.total = l.total + r.total
		case nodeSub:
			p.total = l.total - r.total
		case nodeMul:
			p.total = l.total * r.total
		case nodeDiv:
			if r.total == 0 {
				return partial{}, &DivisionError{Dividend: l.total}
			}
			p.total = divCeil(l.total, r.total)
		}
	default:
		panic("diceroll: invalid AST node " + n.kind.String())
	}
	if n.paren {
		t := make([]Entry, 0, len(p.trace)+2)
		t = append(t, ParenLeft)
		t = append(t, p.trace...)
		p.trace = append(t, ParenRight)
	}
	return p, nil
}

// divCeil divides a by b, rounding toward positive infinity.
func divCeil(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

// roll rolls the dice for a spec and selects which to keep.
func (ctx *Context) roll(s RollSpec) *RollGroup {
	kept := make([]DieResult, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		kept = append(kept, ctx.rollDie(s))
	}

	var dropped []DieResult
	for i := 0; i < s.Drop; i++ {
		kept, dropped = remove(kept, dropped, lowest(kept))
	}
	if s.PickLowest > 0 {
		for len(kept) > s.PickLowest {
			kept, dropped = remove(kept, dropped, highest(kept))
		}
	}
	if s.Pick > 0 {
		for len(kept) > s.Pick {
			kept, dropped = remove(kept, dropped, lowest(kept))
		}
	}

	g := RollGroup{
		Kept:    kept,
		Dropped: dropped,
		Count:   s.Count,
		Sides:   s.Sides,
	}
	if g.Dropped == nil {
		g.Dropped = []DieResult{}
	}
	for _, d := range kept {
		g.Total += d.Value
	}
	return &g
}

// rollDie rolls one die, applying rerolls. Any value at or below the
// recursive threshold is always rerolled. The first value at or below the
// one-time threshold that survives recursive rerolling is rerolled once more.
func (ctx *Context) rollDie(s RollSpec) DieResult {
	var rerolls []int
	v := Roll(ctx.src, s.Sides)
	rerolled := false
	for {
		if v <= s.RecursiveReroll {
			rerolls = append(rerolls, v)
			v = Roll(ctx.src, s.Sides)
			continue
		}
		if !rerolled && v <= s.Reroll {
			rerolled = true
			rerolls = append(rerolls, v)
			v = Roll(ctx.src, s.Sides)
			continue
		}
		break
	}
	return DieResult{Value: v, Rerolls: rerolls, ID: ctx.newID()}
}

// remove moves the die at index k from kept to dropped.
func remove(kept, dropped []DieResult, k int) ([]DieResult, []DieResult) {
	dropped = append(dropped, kept[k])
	kept = append(kept[:k], kept[k+1:]...)
	return kept, dropped
}

// lowest returns the index of the first lowest die.
func lowest(dice []DieResult) int {
	k := 0
	for i, d := range dice {
		if d.Value < dice[k].Value {
			k = i
		}
	}
	return k
}

// highest returns the index of the first highest die.
func highest(dice []DieResult) int {
	k := 0
	for i, d := range dice {
		if d.Value > dice[k].Value {
			k = i
		}
	}
	return k
}

// EvalString is a shortcut to tokenize, parse, and evaluate an expression in
// a new context.
func EvalString(src string, opts ...ContextOption) (*Result, error) {
	return NewContext(opts...).EvalString(src)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionError is an error from dividing by zero.
type DivisionError struct {
	// Dividend is the value that was divided.
	Dividend int
}

func (err *DivisionError) Error() string {
	return "division by zero: " + strconv.Itoa(err.Dividend) + " / 0"
}
