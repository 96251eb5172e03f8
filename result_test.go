package diceroll_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/diceroll"
)

func TestDieResultString(t *testing.T) {
	assert.Equal(t, "4", diceroll.DieResult{Value: 4}.String())
	assert.Equal(t, "4(1,2)", diceroll.DieResult{Value: 4, Rerolls: []int{1, 2}}.String())
}

func TestRollGroupString(t *testing.T) {
	g := &diceroll.RollGroup{
		Kept:    []diceroll.DieResult{{Value: 5}, {Value: 4, Rerolls: []int{1}}},
		Dropped: []diceroll.DieResult{{Value: 1}},
	}
	assert.Equal(t, "[5 4(1) ~1~]", g.String())
	assert.Equal(t, "[]", (&diceroll.RollGroup{}).String())
}

func TestResultJSON(t *testing.T) {
	r, err := scripted(2, 1).EvalString("1d6r2 + (0)")
	require.NoError(t, err)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "id",
		"total": 1,
		"trace": [
			{"type": "roll", "roll": {
				"kept": [{"value": 1, "rerolls": [2], "id": "id"}],
				"dropped": [],
				"total": 1,
				"count": 1,
				"sides": 6
			}},
			{"type": "operator", "operator": "+"},
			{"type": "paren", "paren": "("},
			{"type": "number", "value": 0},
			{"type": "paren", "paren": ")"}
		]
	}`, string(b))
}
