package rpn

import (
	"math"
	"testing"
)

func TestOperatorTableOrder(t *testing.T) {
	want := []string{"+", "-", "*", "/", "^"}
	ops := Operators()
	if len(ops) != len(want) {
		t.Fatalf("Operators() has %d entries, want %d", len(ops), len(want))
	}
	for i, op := range ops {
		if op.Symbol() != want[i] {
			t.Errorf("Operators()[%d] = %q, want %q", i, op.Symbol(), want[i])
		}
		got, ok := LookupOperator(want[i])
		if !ok || got != op {
			t.Errorf("LookupOperator(%q) = %v, %v", want[i], got, ok)
		}
	}
	if _, ok := LookupOperator("%"); ok {
		t.Error("LookupOperator(\"%\") succeeded")
	}
}

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		op         Operator
		val1, val2 float64
		want       float64
	}{
		{OpAdd, 3, 4, 7},
		{OpSub, 5, 2, 3},
		{OpSub, 2, 5, -3},
		{OpMul, 6, 7, 42},
		{OpDiv, 10, 2, 5},
		{OpDiv, 2, 0, math.Inf(1)},
		{OpDiv, -2, 0, math.Inf(-1)},
		{OpPow, 2, 3, 8},
		{OpPow, 2, -1, 0.5},
		{OpPow, 9, 0.5, 3},
	}
	for _, tt := range tests {
		if got := tt.op.Apply(tt.val1, tt.val2); got != tt.want {
			t.Errorf("%v %s %v = %v, want %v", tt.val1, tt.op, tt.val2, got, tt.want)
		}
	}
	if got := OpDiv.Apply(0, 0); !math.IsNaN(got) {
		t.Errorf("0 / 0 = %v, want NaN", got)
	}
}
