package service

import (
	"math/rand/v2"
	"sync"
)

// Picker is a goroutine-safe source of random choices.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker returns a Picker with a deterministic seed, for tests.
func NewPicker(seed uint64) *Picker {
	return &Picker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomPicker returns a Picker seeded from the runtime's random source.
func NewRandomPicker() *Picker {
	return NewPicker(rand.Uint64())
}

// Pick returns a uniformly chosen element of items, or "" when items is empty.
func (p *Picker) Pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return items[p.rng.IntN(len(items))]
}

// Shuffle randomizes the order of n elements using swap.
func (p *Picker) Shuffle(n int, swap func(i, j int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rng.Shuffle(n, swap)
}
