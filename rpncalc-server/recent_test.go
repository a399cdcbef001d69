package main

import (
	"testing"

	"rpncalc-go/rpn"
)

func TestRecentEvaluationsRing(t *testing.T) {
	r := NewRecentEvaluations(3)
	for _, expr := range []string{"a", "b", "c", "d", "e"} {
		r.Push(RecentEvaluation{Expression: expr})
	}
	got := r.Snapshot()
	if len(got) != 3 || got[0].Expression != "e" || got[1].Expression != "d" || got[2].Expression != "c" {
		t.Errorf("Snapshot() = %+v", got)
	}
	// Snapshot leaves the ring intact
	if again := r.Snapshot(); len(again) != 3 || again[0].Expression != "e" {
		t.Errorf("second Snapshot() = %+v", again)
	}
}

func TestResultCache(t *testing.T) {
	c := NewResultCache(2)
	c.Put("3 4 +", rpn.UnknownTokenIgnore, 7)
	if v, ok := c.Get("3 4 +", rpn.UnknownTokenIgnore); !ok || v != 7 {
		t.Errorf("Get = %v, %v", v, ok)
	}
	if _, ok := c.Get("3 4 +", rpn.UnknownTokenError); ok {
		t.Error("entry shared across policies")
	}
	c.Put("1 1 +", rpn.UnknownTokenIgnore, 2)
	c.Put("2 2 +", rpn.UnknownTokenIgnore, 4)
	if c.Len() != 1 {
		t.Errorf("Len() = %d after overflow, want 1", c.Len())
	}

	off := NewResultCache(0)
	off.Put("3 4 +", rpn.UnknownTokenIgnore, 7)
	if _, ok := off.Get("3 4 +", rpn.UnknownTokenIgnore); ok {
		t.Error("disabled cache returned a value")
	}
}
