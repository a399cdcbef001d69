package main

import (
	"fmt"
	"io"
	"strconv"

	"rpncalc-go/rpn"
)

// Explanations prints one line per evaluated token for "-d explain".
type Explanations struct {
	out io.Writer
}

func NewExplanations(out io.Writer) *Explanations {
	return &Explanations{out: out}
}

func (this *Explanations) Record(step rpn.Step) {
	fmt.Fprintf(this.out, "rpncalc explain: [%d] %q ", step.Pos, step.Token.Text)
	switch {
	case step.Skipped:
		fmt.Fprintf(this.out, "not a number or operator, skipped")
	case step.Token.Kind == rpn.TokenOperator:
		fmt.Fprintf(this.out, "%s %s %s = %s", formatValue(step.Left), step.Token.Op,
			formatValue(step.Right), formatValue(step.Result))
	default:
		fmt.Fprintf(this.out, "push %s", formatValue(step.Result))
	}
	fmt.Fprintf(this.out, " (depth %d)\n", step.Depth)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
