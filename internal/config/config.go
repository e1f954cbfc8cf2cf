// Package config loads the detection service's YAML configuration into a
// package-level struct, with a handful of environment overrides for
// values operators commonly need to flip per-deployment without editing
// the file.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DetectionCfg struct {
	Alpha         float64 `yaml:"alpha" json:"alpha"`
	AlphaWidth    float64 `yaml:"alpha_width" json:"alpha_width"`
	Trials        int     `yaml:"trials" json:"trials"`
	MaxTextLength int     `yaml:"max_text_length" json:"max_text_length"`
	ProbThreshold float64 `yaml:"prob_threshold" json:"prob_threshold"`
}

type ThresholdsCfg struct {
	ReviewGap float64 `yaml:"review_gap" json:"review_gap"`
}

// CacheCfg holds cache tuning knobs that are genuinely part of the
// detection service's own config, as opposed to infra endpoints (Redis
// URL, Mongo URI, Meilisearch host) which main.go sources from viper and
// environment variables in its bootstrap.
type CacheCfg struct {
	TTLHours int `yaml:"ttl_hours" json:"ttl_hours"`
	LRUSize  int `yaml:"lru_size" json:"lru_size"`
}

type MeiliCfg struct {
	IndexName string `yaml:"index_name" json:"index_name"`
}

type ReloadCfg struct {
	Interval string `yaml:"interval" json:"interval"`
}

type Cfg struct {
	ProfilePath string        `yaml:"profile_path" json:"profile_path"`
	Detection   DetectionCfg  `yaml:"detection" json:"detection"`
	Thresholds  ThresholdsCfg `yaml:"thresholds" json:"thresholds"`
	Cache       CacheCfg      `yaml:"cache" json:"cache"`
	Meili       MeiliCfg      `yaml:"meili" json:"meili"`
	Reload      ReloadCfg     `yaml:"reload" json:"reload"`
}

// C is the process-wide loaded configuration. Load populates it; callers
// that need isolation (tests, the reload worker watching for a changed
// profile path) should keep their own copy instead of mutating C.
var C Cfg

// Load reads and parses the YAML file at path into C, then applies any
// recognized environment overrides.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}
	applyEnvOverrides()
	return nil
}

func applyEnvOverrides() {
	if v := os.Getenv("LANGIDENT_PROFILE_PATH"); v != "" {
		C.ProfilePath = v
	}
	if v := os.Getenv("LANGIDENT_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			C.Detection.Alpha = f
		}
	}
}
