package arena

import (
	"testing"

	"github.com/san-kum/sweepsim/internal/config"
)

func u19Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Subleague = "U19"
	cfg.Battery.Positions = [][3]float64{{5, 5, 0}}
	cfg.Relocate.Positions = [][3]float64{{0, 0, 0}, {8, 8, 0}}
	return cfg
}

func TestScoreStartsAtBase(t *testing.T) {
	a := New(u19Config())
	if got := a.Score(); got != 1000 {
		t.Errorf("expected base score 1000, got %d", got)
	}
}

func TestUpdateCleansAndScores(t *testing.T) {
	a := New(u19Config())
	if !a.Update(0, 0, 0.016) {
		t.Fatal("robot should still be alive")
	}
	if a.CleanedPercent() <= 0 {
		t.Error("expected coverage after update")
	}
	if a.Score() <= 1000 {
		t.Error("expected score above base after cleaning")
	}
}

func TestBatteryDrainsAndRecharges(t *testing.T) {
	cfg := u19Config()
	cfg.Battery.DrainRate = 10.0
	a := New(cfg)

	a.Update(0, 0, 1.0)
	if a.Battery() >= 100 {
		t.Errorf("battery did not drain: %v", a.Battery())
	}

	a.Update(5, 5, 1.0) // on the charge pad
	if a.Battery() != 100 {
		t.Errorf("battery did not recharge on pad: %v", a.Battery())
	}
}

func TestBatteryEmptyEndsMatch(t *testing.T) {
	cfg := u19Config()
	cfg.Battery.DrainRate = 200.0
	a := New(cfg)

	if a.Update(0, 0, 1.0) {
		t.Error("expected robot removal on empty battery")
	}
	if a.Running() {
		t.Error("match should be over")
	}
	if !a.Snapshot().GameOver {
		t.Error("snapshot should report game over")
	}
}

func TestTimerExpiry(t *testing.T) {
	cfg := u19Config()
	cfg.RunTimeLimit = 1.0
	a := New(cfg)

	alive := true
	for i := 0; i < 100 && alive; i++ {
		alive = a.Update(0, 0, 0.016)
	}
	if alive {
		t.Error("expected match to end at the time limit")
	}
	if a.Remaining() != 0 {
		t.Errorf("remaining should clamp to 0, got %v", a.Remaining())
	}
}

func TestBoostPadsFireOnce(t *testing.T) {
	cfg := config.GetPreset("u14")
	a := New(cfg)

	pad := cfg.Boost.Positions[0]
	a.Update(pad[0], pad[1], 0.016)
	a.Update(pad[0], pad[1], 0.016)

	boosts := 0
	for _, e := range a.Snapshot().ScoreLog {
		if e.Source == "boost" {
			boosts++
			if e.Points != cfg.Boost.Points {
				t.Errorf("boost worth %d, want %d", e.Points, cfg.Boost.Points)
			}
		}
	}
	if boosts != 1 {
		t.Errorf("boost pad fired %d times, want 1", boosts)
	}
}

func TestRelocatePicksNearestAndPenalizes(t *testing.T) {
	a := New(u19Config())

	nx, ny, ok := a.Relocate(7, 7)
	if !ok {
		t.Fatal("expected relocation")
	}
	if nx != 8 || ny != 8 {
		t.Errorf("expected nearest pad (8,8), got (%v,%v)", nx, ny)
	}

	score := a.Score()
	if score != 1000-40 {
		t.Errorf("expected relocate penalty applied, score %d", score)
	}
}

func TestSnapshotU19HasBattery(t *testing.T) {
	a := New(u19Config())
	s := a.Snapshot()
	if !s.HasBattery {
		t.Error("U19 snapshot should expose battery")
	}
	if s.Subleague != "U19" {
		t.Errorf("unexpected subleague %s", s.Subleague)
	}
}

func TestSnapshotRoomsU14(t *testing.T) {
	a := New(config.GetPreset("u14"))
	a.Update(-5, -5, 0.016)
	s := a.Snapshot()
	if s.HasBattery {
		t.Error("U14 has no battery")
	}
	if len(s.RoomPercents) == 0 {
		t.Fatal("expected room stats")
	}
	if s.CurrentRoom < 0 {
		t.Error("robot should be inside a room")
	}
}

func TestStartResets(t *testing.T) {
	a := New(u19Config())
	a.Update(0, 0, 1.0)
	a.Relocate(0, 0)
	a.End()

	a.Start()
	if a.CleanedPercent() != 0 {
		t.Error("coverage not reset")
	}
	if a.Score() != 1000 {
		t.Errorf("score not reset: %d", a.Score())
	}
	if !a.Running() {
		t.Error("match should be running after start")
	}
}
