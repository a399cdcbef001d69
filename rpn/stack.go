package rpn

import "github.com/ahrtr/gocontainer/stack"

// Stack is the operand stack of a single evaluation.
type Stack struct {
	values stack.Interface
}

func NewStack() *Stack {
	return &Stack{values: stack.New()}
}

// Push places value on top of the stack.
func (s *Stack) Push(value float64) {
	s.values.Push(value)
}

// Pop removes and returns the top value. It fails with ErrStackUnderflow
// when the stack is empty.
func (s *Stack) Pop() (float64, error) {
	if s.values.IsEmpty() {
		return 0, ErrStackUnderflow
	}
	return s.values.Pop().(float64), nil
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (float64, bool) {
	if s.values.IsEmpty() {
		return 0, false
	}
	return s.values.Peek().(float64), true
}

func (s *Stack) Len() int { return s.values.Size() }
