// Package config loads this module's YAML build/query configuration,
// following the teacher's ReadConfig-from-file convention.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ch-routing/engine/preproc"
)

// EngineConfig is the top-level config file shape: where to read the
// edge list from, how to weight it, and the preprocessor's tunables.
type EngineConfig struct {
	Source struct {
		EdgeList string `yaml:"edge-list"`
	} `yaml:"source"`
	Weight struct {
		Unit WeightUnit `yaml:"unit"`
	} `yaml:"weight"`
	Preprocessing struct {
		MaxShortcutsPerNode int `yaml:"max-shortcuts-per-node"`
		ComplexityThreshold int `yaml:"complexity-threshold"`
		HopLimitNormal      int `yaml:"hop-limit-normal"`
		HopLimitFast        int `yaml:"hop-limit-fast"`
	} `yaml:"preprocessing"`
}

// ReadConfig loads and parses file, panicking on I/O or parse failure
// the same way the teacher's build-time config loader does — this is
// a startup-time fatal condition, not a recoverable runtime error.
func ReadConfig(file string) EngineConfig {
	data, err := os.ReadFile(file)
	if err != nil {
		panic(err)
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(err)
	}
	return cfg
}

// PreprocConfig builds a preproc.Config from the file's values,
// falling back to preproc.DefaultConfig for any field left at zero.
func (c EngineConfig) PreprocConfig() preproc.Config {
	d := preproc.DefaultConfig()
	cfg := preproc.Config{
		MaxShortcutsPerNode: c.Preprocessing.MaxShortcutsPerNode,
		ComplexityThreshold: c.Preprocessing.ComplexityThreshold,
		HopLimitNormal:      c.Preprocessing.HopLimitNormal,
		HopLimitFast:        c.Preprocessing.HopLimitFast,
	}
	if cfg.MaxShortcutsPerNode == 0 {
		cfg.MaxShortcutsPerNode = d.MaxShortcutsPerNode
	}
	if cfg.ComplexityThreshold == 0 {
		cfg.ComplexityThreshold = d.ComplexityThreshold
	}
	if cfg.HopLimitNormal == 0 {
		cfg.HopLimitNormal = d.HopLimitNormal
	}
	if cfg.HopLimitFast == 0 {
		cfg.HopLimitFast = d.HopLimitFast
	}
	return cfg
}

// WeightUnit names the unit edge weights in the source file are given
// in. cmd/chroute multiplies every raw CSV weight by Scale before
// calling chgraph.AddEdge, and query.Divisor is divided back out at
// query time: Seconds are reported as seconds, Meters as kilometres.
type WeightUnit byte

const (
	Meters WeightUnit = iota
	Seconds
)

// Scale returns the multiplier cmd/chroute applies to a raw edge
// weight in this unit before storing it. Meters pass through unscaled,
// so dividing by query.Divisor (1000.0) at query time reports
// kilometres; Seconds is stored in milliseconds internally so that
// dividing by Divisor at query time reports whole seconds again.
func (u WeightUnit) Scale() float64 {
	switch u {
	case Meters:
		return 1.0
	case Seconds:
		return 1000.0
	default:
		panic("unknown weight unit")
	}
}

func (u WeightUnit) String() string {
	switch u {
	case Meters:
		return "meters"
	case Seconds:
		return "seconds"
	default:
		panic("unknown weight unit")
	}
}

func (u *WeightUnit) UnmarshalYAML(value *yaml.Node) error {
	unit, err := WeightUnitFromString(value.Value)
	if err != nil {
		return err
	}
	*u = unit
	return nil
}

func (u WeightUnit) MarshalYAML() (any, error) {
	return u.String(), nil
}

func WeightUnitFromString(s string) (WeightUnit, error) {
	switch s {
	case "meters":
		return Meters, nil
	case "seconds":
		return Seconds, nil
	default:
		return Meters, errors.New("config: unknown weight unit " + s)
	}
}
