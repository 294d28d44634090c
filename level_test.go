package gck

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"none", LevelNone},
		{"LOW", LevelLow},
		{"Medium", LevelMedium},
		{"high", LevelHigh},
		{" highest ", LevelHighest},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("extreme"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("ParseLevel(extreme) err = %v, want ErrInvalidLevel", err)
	}
}

func TestLevelOrdering(t *testing.T) {
	if !(LevelNone < LevelLow && LevelLow < LevelMedium && LevelMedium < LevelHigh && LevelHigh < LevelHighest) {
		t.Error("levels are not ordered none < low < medium < high < highest")
	}
}

func TestLevelYAML(t *testing.T) {
	var v struct {
		Level Level `yaml:"level"`
	}
	if err := yaml.Unmarshal([]byte("level: high\n"), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Level != LevelHigh {
		t.Errorf("Level = %v, want high", v.Level)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "level: high\n" {
		t.Errorf("Marshal = %q", out)
	}
	if err := yaml.Unmarshal([]byte("level: bogus\n"), &v); err == nil {
		t.Error("Unmarshal(bogus) succeeded")
	}
}

func TestStepsFor(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelNone, nil},
		{LevelLow, []string{"duplicate features"}},
		{LevelMedium, []string{"small regions", "duplicate features"}},
		{LevelHigh, []string{"excluded features", "regions in features", "small regions", "duplicate features"}},
		{LevelHighest, []string{"features in features", "excluded features", "regions in features", "small regions", "duplicate features"}},
	}
	for _, tt := range tests {
		var got []string
		for _, s := range stepsFor(tt.level) {
			got = append(got, s.name)
		}
		if len(got) != len(tt.want) {
			t.Errorf("%v: steps = %v, want %v", tt.level, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v: steps = %v, want %v", tt.level, got, tt.want)
				break
			}
		}
	}
}
