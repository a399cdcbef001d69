package rpn

import (
	"errors"
	"testing"
)

func TestStackLIFO(t *testing.T) {
	s := NewStack()
	for _, v := range []float64{1, 2, 3} {
		s.Push(v)
	}
	if top, ok := s.Peek(); !ok || top != 3 {
		t.Fatalf("Peek() = %v, %v; want 3, true", top, ok)
	}
	for _, want := range []float64{3, 2, 1} {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop() error: %v", err)
		}
		if got != want {
			t.Errorf("Pop() = %v, want %v", got, want)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after draining", s.Len())
	}
}

func TestStackUnderflow(t *testing.T) {
	s := NewStack()
	if _, err := s.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("Pop() on empty stack: err = %v, want ErrStackUnderflow", err)
	}
	if _, ok := s.Peek(); ok {
		t.Error("Peek() on empty stack reported a value")
	}
	s.Push(4)
	if _, err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("second Pop(): err = %v, want ErrStackUnderflow", err)
	}
}
