package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema string

// FlockConfig describes a flock to spawn: who, how many, how it looks and how it behaves.
type FlockConfig struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Color string  `json:"color,omitempty"` // name or #rrggbb
	Image string  `json:"image,omitempty"` // takes precedence over Color
	Size  int     `json:"size"`
	Speed float64 `json:"speed"`

	Radii    Radii   `json:"radii"`
	Weights  Weights `json:"weights"`
	EdgeMode string  `json:"edgeMode,omitempty"` // "wrap" (default) or "bounce"
}

// UnmarshalJSON starts from DefaultFlockConfig so presets only list what they change,
// down to individual radii and weights.
func (fc *FlockConfig) UnmarshalJSON(b []byte) error {
	type plain FlockConfig
	p := plain(DefaultFlockConfig("", 0))
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*fc = FlockConfig(p)
	return nil
}

// Appearance resolves the configured image or colour.
func (fc FlockConfig) Appearance() (Appearance, error) {
	if fc.Image != "" {
		return ImageAppearance(fc.Image), nil
	}
	if fc.Color == "" {
		return DefaultAppearance, nil
	}
	c, err := ParseColor(fc.Color)
	if err != nil {
		return Appearance{}, fmt.Errorf("flock %q: %w", fc.Name, err)
	}
	return ColorAppearance(c), nil
}

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Delay between two steps, 100 gives 10 steps per second
	TickMillis int `json:"tickMillis"`

	// Seed for agent placement, 0 means "pick one from the clock"
	Seed uint64 `json:"seed"`

	Flocks []FlockConfig `json:"flocks"`
}

// DefaultFlockConfig is the look and behaviour of a flock created without any customisation.
func DefaultFlockConfig(name string, count int) FlockConfig {
	return FlockConfig{
		Name:    name,
		Count:   count,
		Color:   "blue",
		Size:    10,
		Speed:   5,
		Radii:   DefaultRadii,
		Weights: DefaultWeights,
	}
}

// DefaultConfig is the classic start-up world: a slow flock of birds and a few fast raptors.
func DefaultConfig() *Config {
	raptors := DefaultFlockConfig("Raptors", 10)
	raptors.Color = "red"
	raptors.Size = 15
	raptors.Speed = 15
	return &Config{
		WorldWidth:  1000,
		WorldHeight: 700,
		TickMillis:  100,
		Flocks: []FlockConfig{
			DefaultFlockConfig("Birds", 30),
			raptors,
		},
	}
}

// Bounds returns the configured world rectangle.
func (c *Config) Bounds() Bounds {
	return Bounds{Width: c.WorldWidth, Height: c.WorldHeight}
}

// TickInterval is the step cadence shells should use.
func (c *Config) TickInterval() time.Duration {
	if c.TickMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.TickMillis) * time.Millisecond
}

// LoadConfig loads a JSON or YAML (by extension) configuration and validates it against the schema.
// An empty schemaFile uses the schema compiled into the binary.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	var (
		sch *jsonschema.Schema
		err error
	)
	if schemaFile == "" {
		sch, err = jsonschema.CompileString("config.schema.json", configSchema)
	} else {
		sch, err = jsonschema.Compile(schemaFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File, YAML is turned into JSON so both formats share one path
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	b := raw
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		b, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	for i, fc := range cfg.Flocks {
		if _, err := fc.Appearance(); err != nil {
			return nil, fmt.Errorf("config flock #%d: %w", i, err)
		}
	}
	return &cfg, nil
}

func yamlToJSON(b []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
