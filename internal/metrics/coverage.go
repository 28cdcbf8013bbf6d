// Package metrics computes per-run quality figures from match ticks.
package metrics

import "github.com/san-kum/sweepsim/internal/match"

// Coverage tracks the final cleaned percentage of the floor.
type Coverage struct {
	name    string
	percent float64
}

func NewCoverage() *Coverage {
	return &Coverage{
		name: "coverage",
	}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(tk match.Tick) {
	c.percent = tk.Arena.CleanedPercent
}

func (c *Coverage) Value() float64 {
	return c.percent
}

func (c *Coverage) Reset() {
	c.percent = 0
}
