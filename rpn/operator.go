package rpn

import "math"

// Operator is one of the five binary operators, in dispatch order.
type Operator int8

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpPow

	numOperators
)

type operatorInfo struct {
	symbol string
	name   string
	apply  func(val1, val2 float64) float64
}

var operators = [numOperators]operatorInfo{
	OpAdd: {"+", "add", func(val1, val2 float64) float64 { return val1 + val2 }},
	OpSub: {"-", "subtract", func(val1, val2 float64) float64 { return val1 - val2 }},
	OpMul: {"*", "multiply", func(val1, val2 float64) float64 { return val1 * val2 }},
	// x/0 is left to IEEE-754: +Inf, -Inf or NaN.
	OpDiv: {"/", "divide", func(val1, val2 float64) float64 { return val1 / val2 }},
	OpPow: {"^", "power", math.Pow},
}

var operatorBySymbol = func() map[string]Operator {
	m := make(map[string]Operator, numOperators)
	for op := OpAdd; op < numOperators; op++ {
		m[operators[op].symbol] = op
	}
	return m
}()

// LookupOperator returns the operator spelled exactly as symbol.
func LookupOperator(symbol string) (Operator, bool) {
	op, ok := operatorBySymbol[symbol]
	return op, ok
}

// Operators returns all operators in dispatch order.
func Operators() []Operator {
	ops := make([]Operator, 0, numOperators)
	for op := OpAdd; op < numOperators; op++ {
		ops = append(ops, op)
	}
	return ops
}

// Apply computes val1 op val2. val1 is the left-hand operand, i.e. the
// value that was pushed first.
func (op Operator) Apply(val1, val2 float64) float64 {
	return operators[op].apply(val1, val2)
}

func (op Operator) Symbol() string { return operators[op].symbol }

// Name is the long name used by listings ("add", "power", ...).
func (op Operator) Name() string { return operators[op].name }

func (op Operator) String() string { return op.Symbol() }
