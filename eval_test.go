package diceroll_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/diceroll"
)

// faces is a Source that produces a fixed sequence of die faces.
type faces []int

func (f *faces) IntN(n int) int {
	if len(*f) == 0 {
		panic("out of faces")
	}
	v := (*f)[0]
	*f = (*f)[1:]
	if v < 1 || v > n {
		panic(fmt.Sprintf("face %d out of range for d%d", v, n))
	}
	return v - 1
}

func scripted(v ...int) *diceroll.Context {
	f := faces(v)
	return diceroll.NewContext(diceroll.WithSource(&f), diceroll.WithIDs(func() string { return "id" }))
}

func TestEval(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		faces []int
		total int
		str   string
	}{
		{"num", "3", nil, 3, "3 = 3"},
		{"add", "2d6 + 3", []int{4, 5}, 12, "[4 5] + 3 = 12"},
		{"sub", "1d4 - 5", []int{2}, -3, "[2] - 5 = -3"},
		{"mul", "2 * 1d8", []int{7}, 14, "2 * [7] = 14"},
		{"prec", "1 + 2 * 3", nil, 7, "1 + 2 * 3 = 7"},
		{"left", "10 - 4 - 3", nil, 3, "10 - 4 - 3 = 3"},
		{"parens", "(1 + 2) * 3", nil, 9, "(1 + 2) * 3 = 9"},
		{"nested", "((1 + 1d4) * 2)", []int{3}, 8, "((1 + [3]) * 2) = 8"},
		{"redundant-parens", "((1 + 2)) * 3", nil, 9, "(1 + 2) * 3 = 9"},
		{"div-ceil", "10 / 3", nil, 4, "10 / 3 = 4"},
		{"div-exact", "9 / 3", nil, 3, "9 / 3 = 3"},
		{"div-neg", "(1 - 8) / 2", nil, -3, "(1 - 8) / 2 = -3"},
		{"div-neg-divisor", "7 / (0 - 2)", nil, -3, "7 / (0 - 2) = -3"},
		{"div-both-neg", "(0 - 7) / (0 - 2)", nil, 4, "(0 - 7) / (0 - 2) = 4"},
		{"div-left", "20 / 3 / 2", nil, 4, "20 / 3 / 2 = 4"},
		{"drop", "4d6d1", []int{3, 1, 6, 4}, 13, "[3 6 4 ~1~] = 13"},
		{"drop-tie", "4d6d2", []int{2, 1, 1, 5}, 7, "[2 5 ~1~ ~1~] = 7"},
		{"drop-all", "1d6d1", []int{4}, 0, "[~4~] = 0"},
		{"pick", "2d20p1", []int{7, 15}, 15, "[15 ~7~] = 15"},
		{"pick-lowest", "2d20pl1", []int{7, 15}, 7, "[7 ~15~] = 7"},
		{"pick-lowest-tie", "3d6pl2", []int{6, 2, 6}, 8, "[2 6 ~6~] = 8"},
		{"pick-drop", "4d6p2d1", []int{1, 5, 3, 6}, 11, "[5 6 ~1~ ~3~] = 11"},
		{"reroll", "1d6r2", []int{2, 1}, 1, "[1(2)] = 1"},
		{"reroll-ok", "1d6r2", []int{3}, 3, "[3] = 3"},
		{"recursive", "2d8rr1", []int{1, 1, 3, 8}, 11, "[3(1,1) 8] = 11"},
		{"both-rerolls", "1d6rr1r3", []int{1, 2, 1, 5}, 5, "[5(1,2,1)] = 5"},
		{"reroll-into-recursive", "1d6rr1r3", []int{3, 1, 4}, 4, "[4(3,1)] = 4"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := scripted(c.faces...)
			r, err := ctx.EvalString(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.total, r.Total)
			assert.Equal(t, c.str, r.String())
			assert.Equal(t, "id", r.ID)
		})
	}
}

func TestEvalTrace(t *testing.T) {
	r, err := scripted().EvalString("(1 + 2) * 3")
	require.NoError(t, err)
	want := []diceroll.Entry{
		diceroll.ParenLeft, diceroll.Number(1), diceroll.OpAdd, diceroll.Number(2),
		diceroll.ParenRight, diceroll.OpMul, diceroll.Number(3),
	}
	assert.Equal(t, want, r.Trace)
}

func TestEvalRollGroup(t *testing.T) {
	r, err := scripted(2, 1, 4, 3).EvalString("3d6rr1p2")
	require.NoError(t, err)
	require.Len(t, r.Trace, 1)
	g, ok := r.Trace[0].(*diceroll.RollGroup)
	require.True(t, ok)
	assert.Equal(t, 3, g.Count)
	assert.Equal(t, 6, g.Sides)
	assert.Equal(t, 7, g.Total)
	assert.Equal(t, []diceroll.DieResult{{Value: 4, Rerolls: []int{1}, ID: "id"}, {Value: 3, ID: "id"}}, g.Kept)
	assert.Equal(t, []diceroll.DieResult{{Value: 2, ID: "id"}}, g.Dropped)

	r, err = scripted(5, 6).EvalString("2d6")
	require.NoError(t, err)
	g = r.Trace[0].(*diceroll.RollGroup)
	assert.NotNil(t, g.Dropped)
	assert.Empty(t, g.Dropped)
}

func TestEvalVars(t *testing.T) {
	ctx := scripted(12).Clone(diceroll.SetVar("str", 3), diceroll.SetVars(map[string]int{"pb": 2}))
	r, err := ctx.EvalString("1d20 + str + pb")
	require.NoError(t, err)
	assert.Equal(t, 17, r.Total)
	assert.Equal(t, "[12] + 3 + 2 = 17", r.String())
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"name", "x + 1", &diceroll.NameError{Name: "x"}},
		{"name-right", "1 + (2 * x)", &diceroll.NameError{Name: "x"}},
		{"div-zero", "1 / (1 - 1)", &diceroll.DivisionError{Dividend: 1}},
		{"div-zero-var", "7 / z", &diceroll.DivisionError{Dividend: 7}},
		{"empty", "", &diceroll.EmptyExpressionError{}},
		{"blank", "   ", &diceroll.EmptyExpressionError{}},
		{"spec", "1d6p1pl1", &diceroll.RollSpecError{Col: 1, Token: "1d6p1pl1", Reason: "cannot pick both highest and lowest"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := diceroll.NewContext(diceroll.SetVar("z", 0))
			r, err := ctx.EvalString(c.src)
			assert.Nil(t, r)
			assert.Equal(t, c.err, err)
		})
	}
	assert.EqualError(t, &diceroll.NameError{Name: "x"}, `undefined variable: "x"`)
	assert.EqualError(t, &diceroll.DivisionError{Dividend: 7}, "division by zero: 7 / 0")
}

func TestEvalRepeated(t *testing.T) {
	e, err := diceroll.ParseString("4d6d1")
	require.NoError(t, err)
	ctx := diceroll.NewContext()
	for i := 0; i < 1000; i++ {
		r, err := ctx.Eval(e)
		require.NoError(t, err)
		g := r.Trace[0].(*diceroll.RollGroup)
		require.Len(t, g.Kept, 3)
		require.Len(t, g.Dropped, 1)
		sum := 0
		for _, d := range g.Kept {
			assert.True(t, 1 <= d.Value && d.Value <= 6, "die %d", d.Value)
			assert.LessOrEqual(t, g.Dropped[0].Value, d.Value)
			sum += d.Value
		}
		assert.Equal(t, sum, r.Total)
		assert.True(t, 3 <= r.Total && r.Total <= 18)
	}
}

func TestEvalRecursiveRerollNeverLow(t *testing.T) {
	ctx := diceroll.NewContext()
	for i := 0; i < 1000; i++ {
		r, err := ctx.EvalString("2d8rr1")
		require.NoError(t, err)
		g := r.Trace[0].(*diceroll.RollGroup)
		for _, d := range g.Kept {
			assert.Greater(t, d.Value, 1)
			for _, v := range d.Rerolls {
				assert.Equal(t, 1, v)
			}
		}
	}
}

func TestEvalRandomGroups(t *testing.T) {
	cases := []struct {
		src  string
		kept int
	}{
		{"2d8rr1", 2},
		{"4d6d1", 3},
		{"6d6d1pl3", 3},
		{"6d6d2p3", 3},
		{"5d10r3p2d2", 2},
		{"6d6rr1r2d1pl3", 3},
		{"3d4pl1", 1},
	}
	ctx := diceroll.NewContext()
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := diceroll.ParseString(c.src)
			require.NoError(t, err)
			for i := 0; i < 500; i++ {
				r, err := ctx.Eval(e)
				require.NoError(t, err)
				g := r.Trace[0].(*diceroll.RollGroup)
				checkGroup(t, c.src, g)
				require.Len(t, g.Kept, c.kept)
				assert.Equal(t, g.Total, r.Total)
			}
		})
	}
}

func TestEvalPickAdvantage(t *testing.T) {
	ctx := diceroll.NewContext()
	for i := 0; i < 1000; i++ {
		r, err := ctx.EvalString("2d20p1")
		require.NoError(t, err)
		g := r.Trace[0].(*diceroll.RollGroup)
		require.Len(t, g.Kept, 1)
		require.Len(t, g.Dropped, 1)
		assert.GreaterOrEqual(t, g.Kept[0].Value, g.Dropped[0].Value)
		assert.Equal(t, g.Kept[0].Value, r.Total)
	}
}

func TestEvalIDs(t *testing.T) {
	r, err := diceroll.EvalString("3d6 + 1d4")
	require.NoError(t, err)
	seen := map[string]bool{r.ID: true}
	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	for _, e := range r.Trace {
		g, ok := e.(*diceroll.RollGroup)
		if !ok {
			continue
		}
		for _, d := range g.Kept {
			assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
			seen[d.ID] = true
		}
	}
	assert.Len(t, seen, 5)

	n := 0
	ctx := diceroll.NewContext(diceroll.WithIDs(func() string { n++; return fmt.Sprint(n) }))
	r, err = ctx.EvalString("2d6")
	require.NoError(t, err)
	g := r.Trace[0].(*diceroll.RollGroup)
	assert.Equal(t, "1", g.Kept[0].ID)
	assert.Equal(t, "2", g.Kept[1].ID)
	assert.Equal(t, "3", r.ID)
}

func TestContextClone(t *testing.T) {
	a := diceroll.NewContext(diceroll.SetVar("x", 1))
	b := a.Clone(diceroll.SetVar("y", 2))
	b.Set("x", 5)
	v, ok := a.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = a.Lookup("y")
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"x": 5, "y": 2}, b.Vars())

	var zero diceroll.Context
	zero.Set("q", 4)
	r, err := zero.EvalString("q * 2")
	require.NoError(t, err)
	assert.Equal(t, 8, r.Total)
	assert.NotEmpty(t, r.ID)
}
