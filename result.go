package diceroll

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DieResult is the outcome of rolling one die.
type DieResult struct {
	// Value is the face the die finally settled on.
	Value int `json:"value"`
	// Rerolls lists the rejected faces in the order they were rolled.
	Rerolls []int `json:"rerolls,omitempty"`
	// ID uniquely identifies this result. It has no meaning beyond that.
	ID string `json:"id"`
}

func (d DieResult) String() string {
	s := strconv.Itoa(d.Value)
	if len(d.Rerolls) == 0 {
		return s
	}
	r := make([]string, len(d.Rerolls))
	for i, v := range d.Rerolls {
		r[i] = strconv.Itoa(v)
	}
	return s + "(" + strings.Join(r, ",") + ")"
}

// RollGroup is the outcome of rolling one dice term.
type RollGroup struct {
	// Kept holds the dice that count toward the total, in the order rolled.
	Kept []DieResult `json:"kept"`
	// Dropped holds the discarded dice, in the order they were discarded.
	Dropped []DieResult `json:"dropped"`
	// Total is the sum of the kept dice.
	Total int `json:"total"`
	// Count and Sides describe the dice that were rolled.
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// String formats the group as its kept dice followed by its dropped dice,
// which are wrapped in tildes, e.g. "[5 4 3 ~1~]".
func (g *RollGroup) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range g.Kept {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.String())
	}
	for i, d := range g.Dropped {
		if i > 0 || len(g.Kept) > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('~')
		b.WriteString(d.String())
		b.WriteByte('~')
	}
	b.WriteByte(']')
	return b.String()
}

// Entry is an element of a result trace. It is one of Operator, Paren,
// Number, or *RollGroup.
type Entry interface {
	String() string
	entry()
}

func (Operator) entry()   {}
func (Paren) entry()      {}
func (Number) entry()     {}
func (*RollGroup) entry() {}

// Result is the outcome of evaluating an expression.
type Result struct {
	// Trace lists the evaluated terms, operators, and brackets in the order
	// they appear in the expression. As with Expr.String, nested redundant
	// parentheses around one subexpression appear as a single pair.
	Trace []Entry
	// Total is the value of the expression.
	Total int
	// ID uniquely identifies this result. It has no meaning beyond that.
	ID string
}

// String formats the trace and total, e.g. "([3 5] + 2) * 2 = 20".
func (r *Result) String() string {
	var b strings.Builder
	prev := Entry(nil)
	for _, e := range r.Trace {
		if prev != nil && spaced(prev, e) {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
		prev = e
	}
	b.WriteString(" = ")
	b.WriteString(strconv.Itoa(r.Total))
	return b.String()
}

// spaced reports whether a space separates two adjacent trace entries.
func spaced(prev, next Entry) bool {
	return prev != Entry(ParenLeft) && next != Entry(ParenRight)
}

type jsonEntry struct {
	Type     string     `json:"type"`
	Operator string     `json:"operator,omitempty"`
	Paren    string     `json:"paren,omitempty"`
	Value    *int       `json:"value,omitempty"`
	Roll     *RollGroup `json:"roll,omitempty"`
}

// MarshalJSON encodes the result with each trace entry tagged by its type.
func (r *Result) MarshalJSON() ([]byte, error) {
	trace := make([]jsonEntry, len(r.Trace))
	for i, e := range r.Trace {
		switch e := e.(type) {
		case Operator:
			trace[i] = jsonEntry{Type: "operator", Operator: e.String()}
		case Paren:
			trace[i] = jsonEntry{Type: "paren", Paren: e.String()}
		case Number:
			v := int(e)
			trace[i] = jsonEntry{Type: "number", Value: &v}
		case *RollGroup:
			trace[i] = jsonEntry{Type: "roll", Roll: e}
		default:
			panic("diceroll: unknown trace entry: " + e.String())
		}
	}
	return json.Marshal(struct {
		ID    string      `json:"id"`
		Total int         `json:"total"`
		Trace []jsonEntry `json:"trace"`
	}{r.ID, r.Total, trace})
}
