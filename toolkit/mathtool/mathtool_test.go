package mathtool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/reagent"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"10 - 3", 7},
		{"3.14 * 2", 6.28},
		{"10 / 4", 2.5},
		{"7 % 3", 1},
		{"10 ** 2", 100},
		{"2 ** 3 ** 2", 512}, // right-associative
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"-5 + 3", -2},
		{"-(2 + 3)", -5},
		{"2*-3", -6},
		{"  42  ", 42},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEval_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"division by zero", "1 / 0"},
		{"modulo by zero", "1 % 0"},
		{"letters", "two plus two"},
		{"trailing operator", "2 +"},
		{"unbalanced paren", "(2 + 3"},
		{"trailing junk", "2 + 2 = 4"},
		{"double dot", "1.2.3"},
		{"overflow to inf", "10 ** 10 ** 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(tt.expr)
			require.Error(t, err)
			assert.True(t, reagent.IsClientError(err))
			assert.Contains(t, err.Error(), "invalid mathematical expression")
		})
	}
}

func TestCalculatorTool_Dispatch(t *testing.T) {
	tool, err := New()
	require.NoError(t, err)
	assert.Equal(t, "calculator", tool.Name())
	assert.Equal(t, []string{"expression"}, tool.Required())

	reg := reagent.NewRegistry()
	require.NoError(t, reg.Register(tool))
	d := reagent.NewDispatcher(reg)

	obs := d.Dispatch(context.Background(), reagent.Intent{
		Type:        reagent.IntentAction,
		Action:      "calculator",
		ActionInput: json.RawMessage(`{"expression": "6 * 7"}`),
	})
	assert.False(t, obs.IsError)
	assert.Equal(t, "42", obs.Text)
}

func TestCalculatorTool_BadExpressionObservation(t *testing.T) {
	tool, err := New()
	require.NoError(t, err)

	reg := reagent.NewRegistry()
	require.NoError(t, reg.Register(tool))
	d := reagent.NewDispatcher(reg)

	obs := d.Dispatch(context.Background(), reagent.Intent{
		Type:        reagent.IntentAction,
		Action:      "calculator",
		ActionInput: json.RawMessage(`{"expression": "import os"}`),
	})
	assert.True(t, obs.IsError)
	assert.Contains(t, obs.Text, "Error executing tool calculator")
	assert.Contains(t, obs.Text, "invalid mathematical expression")
}
