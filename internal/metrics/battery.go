package metrics

import "github.com/san-kum/sweepsim/internal/match"

// BatteryUsed totals the charge spent over the run, counting each recharge
// as a full cycle. Matches without a battery report zero.
type BatteryUsed struct {
	name    string
	used    float64
	last    float64
	samples int
}

func NewBatteryUsed() *BatteryUsed {
	return &BatteryUsed{
		name: "battery_used",
	}
}

func (b *BatteryUsed) Name() string { return b.name }

func (b *BatteryUsed) Observe(tk match.Tick) {
	if !tk.Arena.HasBattery {
		return
	}
	if b.samples > 0 && tk.Arena.Battery < b.last {
		b.used += b.last - tk.Arena.Battery
	}
	b.last = tk.Arena.Battery
	b.samples++
}

func (b *BatteryUsed) Value() float64 {
	return b.used
}

func (b *BatteryUsed) Reset() {
	b.used = 0
	b.last = 0
	b.samples = 0
}
