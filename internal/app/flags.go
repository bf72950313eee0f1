package app

import (
	"flag"
	"time"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Interval time.Duration
	Panel    int
	EnvFile  string
	Set      KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "dynamic",
		Scale:    48,
		TPS:      60,
		Seed:     1337,
		Interval: 500 * time.Millisecond,
		Panel:    300,
		EnvFile:  ".env",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "pause between alterations")
	fs.IntVar(&c.Panel, "panel", c.Panel, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.EnvFile, "env", c.EnvFile, "dotenv file with "+EnvPrefix+"* overrides")
	fs.Var(&c.Set, "set", "simulation parameter override in key=value form (repeatable)")
}

// SimConfig merges environment overrides with -set flags, flags winning, and
// adds the seed so the factory and Reset agree.
func (c *Config) SimConfig() (map[string]string, error) {
	merged, err := LoadEnvOverrides(EnvPrefix, c.EnvFile)
	if err != nil {
		return nil, err
	}
	merged["seed"] = formatSeed(c.Seed)
	set, err := c.Set.Map()
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		merged[k] = v
	}
	return merged, nil
}
