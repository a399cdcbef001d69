package main

import (
	"sync"

	"github.com/edwingeng/deque"
)

type RecentEvaluation struct {
	Expression string     `json:"expression"`
	Result     *JSONFloat `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	At         int64      `json:"at"`
}

// RecentEvaluations keeps the last capacity evaluations in memory,
// oldest at the front.
type RecentEvaluations struct {
	mu       sync.Mutex
	items    deque.Deque // <RecentEvaluation>
	capacity int
}

func NewRecentEvaluations(capacity int) *RecentEvaluations {
	return &RecentEvaluations{items: deque.NewDeque(), capacity: capacity}
}

func (this *RecentEvaluations) Push(e RecentEvaluation) {
	if this.capacity <= 0 {
		return
	}
	this.mu.Lock()
	defer this.mu.Unlock()
	this.items.PushBack(e)
	for this.items.Len() > this.capacity {
		this.items.PopFront()
	}
}

// Snapshot returns the kept evaluations, newest first.
func (this *RecentEvaluations) Snapshot() []RecentEvaluation {
	this.mu.Lock()
	defer this.mu.Unlock()
	n := this.items.Len()
	ret := make([]RecentEvaluation, n)
	// rotate once through the deque; it is back in order afterwards
	for i := 0; i < n; i++ {
		e := this.items.Front()
		this.items.PopFront()
		ret[n-1-i] = e.(RecentEvaluation)
		this.items.PushBack(e)
	}
	return ret
}
