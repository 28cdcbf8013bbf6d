package config

// Presets are the standard competition layouts per subleague. Pad positions
// and room polygons mirror the reference 20x20 m house world.
var Presets = map[string]func() *Config{
	"u19": func() *Config {
		cfg := DefaultConfig()
		cfg.Subleague = "U19"
		cfg.Battery.Positions = [][3]float64{
			{-7.5, -7.5, 0},
			{7.5, 7.5, 0},
		}
		cfg.Relocate.Positions = [][3]float64{
			{0, 0, 0},
			{-5, 5, 0},
		}
		return cfg
	},
	"u14": func() *Config {
		cfg := DefaultConfig()
		cfg.Subleague = "U14"
		cfg.Boost.Positions = [][3]float64{
			{-6, 6, 0},
			{6, -6, 0},
			{6, 6, 0},
		}
		cfg.Relocate.Positions = [][3]float64{
			{0, 0, 0},
		}
		cfg.Rooms = [][][2]float64{
			{{-10, -10}, {0, -10}, {0, 0}, {-10, 0}},
			{{0, -10}, {10, -10}, {10, 0}, {0, 0}},
			{{-10, 0}, {10, 0}, {10, 10}, {-10, 10}},
		}
		return cfg
	},
	"fs": func() *Config {
		cfg := DefaultConfig()
		cfg.Subleague = "FS"
		cfg.Boost.Positions = [][3]float64{
			{-6, 6, 0},
			{6, -6, 0},
		}
		cfg.Relocate.Positions = [][3]float64{
			{0, 0, 0},
		}
		cfg.Rooms = [][][2]float64{
			{{-10, -10}, {10, -10}, {10, 0}, {-10, 0}},
			{{-10, 0}, {10, 0}, {10, 10}, {-10, 10}},
		}
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
