package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sweepsim/internal/arena"
	"github.com/san-kum/sweepsim/internal/match"
)

func tick(x, y, pct, battery float64) match.Tick {
	return match.Tick{
		Pose: match.Pose{X: x, Y: y},
		Arena: arena.Snapshot{
			CleanedPercent: pct,
			Battery:        battery,
			HasBattery:     true,
		},
	}
}

func TestCoverageTracksLatest(t *testing.T) {
	c := NewCoverage()
	c.Observe(tick(0, 0, 10, 100))
	c.Observe(tick(0, 0, 35, 100))
	if c.Value() != 35 {
		t.Errorf("coverage = %v, want 35", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Errorf("coverage after reset = %v", c.Value())
	}
}

func TestDistanceAccumulatesPath(t *testing.T) {
	d := NewDistance()
	d.Observe(tick(0, 0, 0, 100))
	d.Observe(tick(3, 4, 0, 100))
	d.Observe(tick(3, 4, 0, 100))
	if math.Abs(d.Value()-5) > 1e-12 {
		t.Errorf("distance = %v, want 5", d.Value())
	}
}

func TestDistanceFirstSampleIsFree(t *testing.T) {
	d := NewDistance()
	d.Observe(tick(7, -2, 0, 100))
	if d.Value() != 0 {
		t.Errorf("distance after one sample = %v", d.Value())
	}
}

func TestBatteryUsedCountsDrainAcrossRecharge(t *testing.T) {
	b := NewBatteryUsed()
	b.Observe(tick(0, 0, 0, 100))
	b.Observe(tick(0, 0, 0, 90))
	b.Observe(tick(0, 0, 0, 100)) // recharge, not counted
	b.Observe(tick(0, 0, 0, 95))
	if math.Abs(b.Value()-15) > 1e-12 {
		t.Errorf("battery used = %v, want 15", b.Value())
	}
}

func TestBatteryUsedIgnoresBatterylessMatch(t *testing.T) {
	b := NewBatteryUsed()
	tk := tick(0, 0, 0, 100)
	tk.Arena.HasBattery = false
	b.Observe(tk)
	tk.Arena.Battery = 50
	b.Observe(tk)
	if b.Value() != 0 {
		t.Errorf("battery used = %v, want 0", b.Value())
	}
}
