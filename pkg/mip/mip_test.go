package mip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Maximize 3a + 2b - U subject to a + b <= 1, 2a - U <= 0
func smallMip() MIP {
	return MIP{
		Variables: []Variable{
			{Name: "a", Kind: Binary, Lower: 0, Upper: 1},
			{Name: "b", Kind: Binary, Lower: 0, Upper: 1},
			{Name: "U", Kind: Continuous, Lower: 0, Upper: math.Inf(1)},
		},
		Objective: []Term{{Variable: 0, Coefficient: 3}, {Variable: 1, Coefficient: 2}, {Variable: 2, Coefficient: -1}},
		Maximize:  true,
		Constraints: []Constraint{
			{Name: "pick", Terms: []Term{{Variable: 0, Coefficient: 1}, {Variable: 1, Coefficient: 1}}, Sense: LessEqual, Rhs: 1},
			{Name: "bound", Terms: []Term{{Variable: 0, Coefficient: 2}, {Variable: 2, Coefficient: -1}}, Sense: LessEqual, Rhs: 0},
		},
	}
}

func TestToLP(t *testing.T) {
	//** Arrange
	instance := smallMip()
	instance.Constraints = append(instance.Constraints, Constraint{
		Terms: []Term{{Variable: 1, Coefficient: 0}},
		Sense: GreaterEqual,
		Rhs:   -0.5,
	})

	//** Act
	lp := instance.ToLP()

	//** Assert
	expected := "Maximize\n" +
		" obj: + 3 a + 2 b - 1 U\n" +
		"Subject To\n" +
		" pick: + 1 a + 1 b <= 1\n" +
		" bound: + 2 a - 1 U <= 0\n" +
		" c2: + 0 b >= -0.5\n" +
		"Bounds\n" +
		" U >= 0\n" +
		"Binary\n" +
		" a\n" +
		" b\n" +
		"End\n"
	assert.Equal(t, expected, lp)
}

func TestToLPWrapsLongRows(t *testing.T) {
	//** Arrange
	instance := MIP{Maximize: false}
	for i := range 10 {
		instance.Variables = append(instance.Variables, Variable{Name: string(rune('a' + i)), Kind: Continuous, Lower: -1, Upper: 2})
		instance.Objective = append(instance.Objective, Term{Variable: uint64(i), Coefficient: 0.5})
	}

	//** Act
	lp := instance.ToLP()

	//** Assert
	assert.Contains(t, lp, "Minimize\n obj: + 0.5 a + 0.5 b + 0.5 c + 0.5 d + 0.5 e + 0.5 f + 0.5 g + 0.5 h\n    + 0.5 i + 0.5 j\n")
	assert.Contains(t, lp, " -1 <= a <= 2\n")
	assert.NotContains(t, lp, "Binary")
}

func TestEvaluateAndVariableIndex(t *testing.T) {
	instance := smallMip()

	assert.Equal(t, 1.0, instance.Evaluate([]float64{1, 0, 2}))
	assert.Equal(t, map[string]uint64{"a": 0, "b": 1, "U": 2}, instance.VariableIndex())
	assert.Equal(t, "<=", LessEqual.String())
	assert.Equal(t, ">=", GreaterEqual.String())
	assert.Equal(t, "=", Equal.String())
}
