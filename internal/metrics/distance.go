package metrics

import (
	"math"

	"github.com/san-kum/sweepsim/internal/match"
)

// Distance accumulates the path length driven during a match.
type Distance struct {
	name    string
	total   float64
	lastX   float64
	lastY   float64
	samples int
}

func NewDistance() *Distance {
	return &Distance{
		name: "distance",
	}
}

func (d *Distance) Name() string { return d.name }

func (d *Distance) Observe(tk match.Tick) {
	if d.samples > 0 {
		d.total += math.Hypot(tk.Pose.X-d.lastX, tk.Pose.Y-d.lastY)
	}
	d.lastX, d.lastY = tk.Pose.X, tk.Pose.Y
	d.samples++
}

func (d *Distance) Value() float64 {
	return d.total
}

func (d *Distance) Reset() {
	d.total = 0
	d.lastX, d.lastY = 0, 0
	d.samples = 0
}
