package mip

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type VariableKind int

const (
	Continuous VariableKind = iota
	Binary
)

type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

func (sense Sense) String() string {
	switch sense {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	default:
		return "="
	}
}

type Variable struct {
	Name  string
	Kind  VariableKind
	Lower float64
	Upper float64 // math.Inf(1) stands for no upper bound
}

type Term struct {
	Variable    uint64
	Coefficient float64
}

type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	Rhs   float64
}

type MIP struct {
	Variables   []Variable
	Objective   []Term
	Maximize    bool
	Constraints []Constraint
}

type MIPSolution struct {
	Values    []float64
	Objective float64
	Optimal   bool // False when the solver stopped on a limit and returned its incumbent
}

const termsPerLine = 8

// Renders the MIP in CPLEX-LP format, which is understood by every supported backend
func (m MIP) ToLP() string {
	var builder strings.Builder

	if m.Maximize {
		builder.WriteString("Maximize\n")
	} else {
		builder.WriteString("Minimize\n")
	}

	// Every variable is listed in the objective (even with a zero coefficient) so that solvers register it
	coefficients := make([]float64, len(m.Variables))
	for _, term := range m.Objective {
		coefficients[term.Variable] += term.Coefficient
	}
	builder.WriteString(" obj:")
	m.writeTerms(&builder, lo.Map(coefficients, func(coefficient float64, i int) Term {
		return Term{Variable: uint64(i), Coefficient: coefficient}
	}))

	builder.WriteString("\nSubject To\n")
	for i, constraint := range m.Constraints {
		name := constraint.Name
		if name == "" {
			name = fmt.Sprintf("c%d", i)
		}
		fmt.Fprintf(&builder, " %s:", name)

		terms := lo.Filter(constraint.Terms, func(term Term, _ int) bool { return term.Coefficient != 0 })
		if len(terms) == 0 {
			// LP format does not allow an empty left-hand side
			variable := uint64(0)
			if len(constraint.Terms) > 0 {
				variable = constraint.Terms[0].Variable
			}
			terms = []Term{{Variable: variable, Coefficient: 0}}
		}
		m.writeTerms(&builder, terms)
		fmt.Fprintf(&builder, " %v %v\n", constraint.Sense, formatFloat(constraint.Rhs))
	}

	builder.WriteString("Bounds\n")
	for _, variable := range m.Variables {
		if variable.Kind == Binary {
			continue
		}
		if math.IsInf(variable.Upper, 1) {
			fmt.Fprintf(&builder, " %v >= %v\n", variable.Name, formatFloat(variable.Lower))
		} else {
			fmt.Fprintf(&builder, " %v <= %v <= %v\n", formatFloat(variable.Lower), variable.Name, formatFloat(variable.Upper))
		}
	}

	binaries := lo.Filter(m.Variables, func(variable Variable, _ int) bool { return variable.Kind == Binary })
	if len(binaries) > 0 {
		builder.WriteString("Binary\n")
		for _, variable := range binaries {
			fmt.Fprintf(&builder, " %v\n", variable.Name)
		}
	}

	builder.WriteString("End\n")
	return builder.String()
}

// Evaluates the objective function on the given values
func (m MIP) Evaluate(values []float64) float64 {
	return lo.SumBy(m.Objective, func(term Term) float64 {
		return term.Coefficient * values[term.Variable]
	})
}

// Returns a map from variable name to its position
func (m MIP) VariableIndex() map[string]uint64 {
	index := make(map[string]uint64, len(m.Variables))
	for i, variable := range m.Variables {
		index[variable.Name] = uint64(i)
	}
	return index
}

func (m MIP) writeTerms(builder *strings.Builder, terms []Term) {
	for i, term := range terms {
		if i > 0 && i%termsPerLine == 0 {
			builder.WriteString("\n   ")
		}
		sign := "+"
		if term.Coefficient < 0 {
			sign = "-"
		}
		fmt.Fprintf(builder, " %v %v %v", sign, formatFloat(math.Abs(term.Coefficient)), m.Variables[term.Variable].Name)
	}
}

func formatFloat(value float64) string {
	if math.IsInf(value, 1) {
		return "inf"
	} else if math.IsInf(value, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
