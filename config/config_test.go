package config

import "testing"

func TestWeightUnitFromString(t *testing.T) {
	cases := []struct {
		in   string
		want WeightUnit
	}{
		{"meters", Meters},
		{"seconds", Seconds},
	}
	for _, c := range cases {
		got, err := WeightUnitFromString(c.in)
		if err != nil {
			t.Errorf("WeightUnitFromString(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("WeightUnitFromString(%q) = %v; want %v", c.in, got, c.want)
		}
	}
	if _, err := WeightUnitFromString("furlongs"); err == nil {
		t.Errorf("WeightUnitFromString(\"furlongs\") error = nil; want error")
	}
}

func TestWeightUnitString(t *testing.T) {
	if Meters.String() != "meters" {
		t.Errorf("Meters.String() = %q; want %q", Meters.String(), "meters")
	}
	if Seconds.String() != "seconds" {
		t.Errorf("Seconds.String() = %q; want %q", Seconds.String(), "seconds")
	}
}

func TestWeightUnitScale(t *testing.T) {
	if Meters.Scale() != 1.0 {
		t.Errorf("Meters.Scale() = %v; want 1.0", Meters.Scale())
	}
	if Seconds.Scale() != 1000.0 {
		t.Errorf("Seconds.Scale() = %v; want 1000.0", Seconds.Scale())
	}
}

func TestPreprocConfigFallsBackToDefaults(t *testing.T) {
	var c EngineConfig
	got := c.PreprocConfig()
	if got.MaxShortcutsPerNode != 100 {
		t.Errorf("MaxShortcutsPerNode = %d; want 100", got.MaxShortcutsPerNode)
	}
	if got.ComplexityThreshold != 500 {
		t.Errorf("ComplexityThreshold = %d; want 500", got.ComplexityThreshold)
	}
}

func TestPreprocConfigHonorsOverrides(t *testing.T) {
	var c EngineConfig
	c.Preprocessing.MaxShortcutsPerNode = 50
	got := c.PreprocConfig()
	if got.MaxShortcutsPerNode != 50 {
		t.Errorf("MaxShortcutsPerNode = %d; want 50", got.MaxShortcutsPerNode)
	}
	if got.ComplexityThreshold != 500 {
		t.Errorf("ComplexityThreshold = %d; want 500 (default)", got.ComplexityThreshold)
	}
}
