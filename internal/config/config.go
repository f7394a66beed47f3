package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"perceptron-lab/internal/activation"
	"perceptron-lab/internal/dataset"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Datasets       []string `yaml:"datasets"`
	LearningRate   float64  `yaml:"learning_rate"`
	Epsilon        float64  `yaml:"epsilon"`
	Seed           int64    `yaml:"seed"`
	MaxEpochs      int      `yaml:"max_epochs"`
	LogEvery       int      `yaml:"log_every"`
	Workers        int      `yaml:"workers"`
	QuadrantPoints int      `yaml:"quadrant_points"`
	QuadrantDims   int      `yaml:"quadrant_dims"`
	Activation     string   `yaml:"activation"`
}

// Overrides captures CLI supplied values. Epsilon is a pointer because 0 is a
// valid setting.
type Overrides struct {
	Datasets     []string
	LearningRate float64
	Epsilon      *float64
	Seed         int64
	MaxEpochs    int
	LogEvery     int
	Workers      int
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Datasets:       []string{"and", "or"},
		LearningRate:   0.5,
		Epsilon:        0.0001,
		LogEvery:       1,
		Workers:        1,
		QuadrantPoints: 99,
		QuadrantDims:   3,
		Activation:     "step",
	}
}

// Load reads and validates a Config from YAML. Keys absent from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if len(o.Datasets) > 0 {
		c.Datasets = o.Datasets
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epsilon != nil {
		c.Epsilon = *o.Epsilon
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.MaxEpochs > 0 {
		c.MaxEpochs = o.MaxEpochs
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
}

// ActivationFunc resolves the configured activation. Step always fires at 0,
// the threshold the learning rule is defined for.
func (c *Config) ActivationFunc() (activation.Activation, error) {
	return activation.Parse(c.Activation)
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Datasets) == 0 {
		return errors.New("at least one dataset must be set")
	}
	known := make(map[string]bool)
	for _, name := range dataset.Names() {
		known[name] = true
	}
	for _, name := range c.Datasets {
		if !known[name] {
			return fmt.Errorf("unknown dataset %q (known: %s)", name, strings.Join(dataset.Names(), ", "))
		}
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.MaxEpochs < 0 {
		return fmt.Errorf("max_epochs must be >= 0 (got %d)", c.MaxEpochs)
	}
	if c.QuadrantPoints <= 0 || c.QuadrantDims <= 0 {
		return fmt.Errorf("quadrant_points and quadrant_dims must be > 0 (got %d, %d)", c.QuadrantPoints, c.QuadrantDims)
	}
	a, err := c.ActivationFunc()
	if err != nil {
		return err
	}
	if a.Kind != activation.Step && c.MaxEpochs == 0 {
		return fmt.Errorf("activation %s needs max_epochs > 0", a.Kind)
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 1
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: missing ':'", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")
		var err error
		switch key {
		case "datasets":
			cfg.Datasets = ParseList(value)
		case "learning_rate":
			cfg.LearningRate, err = strconv.ParseFloat(value, 64)
		case "epsilon":
			cfg.Epsilon, err = strconv.ParseFloat(value, 64)
		case "seed":
			cfg.Seed, err = strconv.ParseInt(value, 10, 64)
		case "max_epochs":
			cfg.MaxEpochs, err = strconv.Atoi(value)
		case "log_every":
			cfg.LogEvery, err = strconv.Atoi(value)
		case "workers":
			cfg.Workers, err = strconv.Atoi(value)
		case "quadrant_points":
			cfg.QuadrantPoints, err = strconv.Atoi(value)
		case "quadrant_dims":
			cfg.QuadrantDims, err = strconv.Atoi(value)
		case "activation":
			cfg.Activation = value
		default:
			return nil, fmt.Errorf("line %d: unknown key %s", lineNo, key)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseList splits a comma separated value, also accepting a [a, b] list.
func ParseList(value string) []string {
	value = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(value), "["), "]")
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.Trim(strings.TrimSpace(item), "\"'"))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
