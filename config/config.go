// Package config loads the YAML configuration surface of spec.md §6:
// the wire name, transmitter data rate and sensing time, and receiver
// sensing time and BER distribution. Grounded on
// nugget-thane-ai-agent's internal/config package for the
// load-then-validate shape (without its defaults-filling step), adapted
// to this module's much smaller configuration surface.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openwns/copper/distribution"
	"github.com/openwns/copper/prng"
)

// WireConfig names the shared wire a Transceiver attaches to.
type WireConfig struct {
	Name string `yaml:"name"`
}

// TransmitterConfig carries the spec.md §4.2 Transmitter settings.
type TransmitterConfig struct {
	DataRate    float64 `yaml:"dataRate"`    // bits/sec
	SensingTime float64 `yaml:"sensingTime"` // seconds
}

// BERConfig selects and parameterizes a distribution.Distribution via
// distribution.NewFromConfig.
type BERConfig struct {
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params"`
}

// ReceiverConfig carries the spec.md §4.3 Receiver settings.
type ReceiverConfig struct {
	SensingTime float64   `yaml:"sensingTime"` // seconds
	BER         BERConfig `yaml:"ber"`
}

// Config is the top-level YAML document for one Transceiver, matching
// the key table of spec.md §6.
type Config struct {
	Wire        WireConfig        `yaml:"wire"`
	Transmitter TransmitterConfig `yaml:"transmitter"`
	Receiver    ReceiverConfig    `yaml:"receiver"`
	Seed        int64             `yaml:"seed"` // 0 selects a time-based seed, per package prng
}

// Load reads and parses the YAML file at path, then validates it.
// Any problem (an unreadable file, malformed YAML, or a value that
// fails Validate) is a configuration error (spec.md §7) and is
// returned wrapped with context, never panicked.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: validating %s", path)
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent and
// that its BER distribution kind/params are accepted by
// distribution.NewFromConfig. It does not mutate cfg.
func (c *Config) Validate() error {
	if c.Wire.Name == "" {
		return errors.New("wire.name must be non-empty")
	}
	if c.Transmitter.DataRate <= 0 {
		return errors.Errorf("transmitter.dataRate must be positive, got %v", c.Transmitter.DataRate)
	}
	if c.Transmitter.SensingTime < 0 {
		return errors.Errorf("transmitter.sensingTime must be non-negative, got %v", c.Transmitter.SensingTime)
	}
	if c.Receiver.SensingTime < 0 {
		return errors.Errorf("receiver.sensingTime must be non-negative, got %v", c.Receiver.SensingTime)
	}
	if _, err := distribution.NewFromConfig(c.Receiver.BER.Kind, c.Receiver.BER.Params, c.Seed); err != nil {
		return errors.Wrap(err, "receiver.ber")
	}
	return nil
}

// BuildBER constructs the receiver's BER distribution from the already
// validated configuration. Callers should call Validate (or Load,
// which calls it for them) before BuildBER.
//
// An explicit Seed reproduces the same draws every run; Seed == 0
// instead derives one from package prng's root generator, so that two
// Transceivers loaded from the same config file (and therefore both
// leaving Seed unset) still sample independently rather than lock-step.
func (c *Config) BuildBER() (distribution.Distribution, error) {
	seed := c.Seed
	if seed == 0 {
		seed = prng.NewSeed()
	}
	return distribution.NewFromConfig(c.Receiver.BER.Kind, c.Receiver.BER.Params, seed)
}
