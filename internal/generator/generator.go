// Package generator draws secret numbers for rounds.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces secrets from a single pseudo-random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
// Two processes started in the same clock tick draw the same secrets.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Secret returns a number drawn uniformly from [1, maxNumber].
func (g *Generator) Secret(maxNumber int) int {
	if maxNumber < 1 {
		maxNumber = 1
	}
	return g.rnd.Intn(maxNumber) + 1
}
