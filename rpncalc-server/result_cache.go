package main

import (
	"sync"

	"github.com/segmentio/fasthash/fnv1a"

	"rpncalc-go/rpn"
)

type cachedResult struct {
	expression string
	policy     rpn.UnknownTokenPolicy
	result     float64
}

// ResultCache memoizes successful evaluations by normalized expression.
// It is flushed when full.
type ResultCache struct {
	mu       sync.RWMutex
	items    map[uint64]cachedResult
	capacity int
}

func NewResultCache(capacity int) *ResultCache {
	return &ResultCache{items: make(map[uint64]cachedResult), capacity: capacity}
}

func cacheKey(expression string, policy rpn.UnknownTokenPolicy) uint64 {
	h := fnv1a.HashString64(expression)
	return fnv1a.AddUint64(h, uint64(policy))
}

func (this *ResultCache) Get(expression string, policy rpn.UnknownTokenPolicy) (float64, bool) {
	this.mu.RLock()
	defer this.mu.RUnlock()
	item, ok := this.items[cacheKey(expression, policy)]
	if !ok || item.expression != expression || item.policy != policy {
		return 0, false
	}
	return item.result, true
}

func (this *ResultCache) Put(expression string, policy rpn.UnknownTokenPolicy, result float64) {
	if this.capacity <= 0 {
		return
	}
	this.mu.Lock()
	defer this.mu.Unlock()
	if len(this.items) >= this.capacity {
		this.items = make(map[uint64]cachedResult)
	}
	this.items[cacheKey(expression, policy)] = cachedResult{expression: expression, policy: policy, result: result}
}

func (this *ResultCache) Len() int {
	this.mu.RLock()
	defer this.mu.RUnlock()
	return len(this.items)
}
