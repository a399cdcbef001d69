package rpn

// UnknownTokenPolicy selects what happens to tokens that are neither
// numbers nor operator symbols.
type UnknownTokenPolicy int8

const (
	// UnknownTokenIgnore skips the token without touching the stack.
	UnknownTokenIgnore UnknownTokenPolicy = iota
	// UnknownTokenWarn skips the token and reports it through
	// Options.OnUnknown.
	UnknownTokenWarn
	// UnknownTokenError fails the evaluation with ErrInvalidToken.
	UnknownTokenError
)

func (p UnknownTokenPolicy) String() string {
	switch p {
	case UnknownTokenWarn:
		return "warn"
	case UnknownTokenError:
		return "err"
	}
	return "ignore"
}

// Step records the effect of one token on the stack.
type Step struct {
	Pos   int
	Token Token
	// Left and Right are the popped operands of an operator token.
	Left, Right float64
	// Result is the value pushed by the token. Unset for skipped tokens.
	Result  float64
	Depth   int
	Skipped bool
}

type Options struct {
	UnknownTokens UnknownTokenPolicy

	// OnUnknown is called for each skipped token under UnknownTokenWarn.
	OnUnknown func(pos int, token string)

	// Trace, when set, is called once per token after it was applied.
	Trace func(step Step)
}

// Evaluator evaluates RPN expressions. It holds no state besides its
// options, so one Evaluator may be shared by concurrent callers.
type Evaluator struct {
	opts Options
}

func NewEvaluator(opts Options) *Evaluator {
	return &Evaluator{opts: opts}
}

var defaultEvaluator = NewEvaluator(Options{})

// Evaluate evaluates expr with the default options: unknown tokens are
// ignored and nothing is traced.
func Evaluate(expr string) (float64, error) {
	return defaultEvaluator.Evaluate(expr)
}

// Evaluate tokenizes expr and reduces it on a fresh operand stack. The
// right-hand operand of an operator is the first value popped.
func (e *Evaluator) Evaluate(expr string) (float64, error) {
	st := NewStack()
	for i, text := range Tokenize(expr) {
		pos := i + 1
		tok := Classify(text)
		switch tok.Kind {
		case TokenOperand:
			st.Push(tok.Value)
			e.trace(Step{Pos: pos, Token: tok, Result: tok.Value, Depth: st.Len()})

		case TokenOperator:
			val2, err := st.Pop()
			if err != nil {
				return 0, &EvalError{Err: err, Token: text, Pos: pos}
			}
			val1, err := st.Pop()
			if err != nil {
				return 0, &EvalError{Err: err, Token: text, Pos: pos}
			}
			res := tok.Op.Apply(val1, val2)
			st.Push(res)
			e.trace(Step{Pos: pos, Token: tok, Left: val1, Right: val2, Result: res, Depth: st.Len()})

		default:
			switch e.opts.UnknownTokens {
			case UnknownTokenError:
				return 0, &EvalError{Err: ErrInvalidToken, Token: text, Pos: pos}
			case UnknownTokenWarn:
				if e.opts.OnUnknown != nil {
					e.opts.OnUnknown(pos, text)
				}
			}
			e.trace(Step{Pos: pos, Token: tok, Depth: st.Len(), Skipped: true})
		}
	}

	if st.Len() != 1 {
		return 0, &EvalError{Err: ErrIncorrectFormat, Depth: st.Len()}
	}
	return st.Pop()
}

func (e *Evaluator) trace(step Step) {
	if e.opts.Trace != nil {
		e.opts.Trace(step)
	}
}
