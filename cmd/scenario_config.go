package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the optional YAML file passed with --config.
// Every field is optional; a nil field leaves the flag default in place.
type Scenario struct {
	ArrivalRate    *float64 `yaml:"arrival_rate"`
	ServiceRate    *float64 `yaml:"service_rate"`
	Customers      *int     `yaml:"customers"`
	Servers        *int     `yaml:"servers"`
	Seed           *uint64  `yaml:"seed"`
	SampleInterval *float64 `yaml:"sample_interval"`
	TimeScale      *float64 `yaml:"time_scale"`
	Format         *string  `yaml:"format"`
}

// LoadScenario parses a scenario file with strict field checking, so a
// misspelled key is an error instead of a silently ignored setting.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &sc, nil
}

// settings maps the fields that are set onto flag names, for merging into
// viper's config layer.
func (s *Scenario) settings() map[string]any {
	out := make(map[string]any)
	if s.ArrivalRate != nil {
		out[flagArrivalRate] = *s.ArrivalRate
	}
	if s.ServiceRate != nil {
		out[flagServiceRate] = *s.ServiceRate
	}
	if s.Customers != nil {
		out[flagCustomers] = *s.Customers
	}
	if s.Servers != nil {
		out[flagServers] = *s.Servers
	}
	if s.Seed != nil {
		out[flagSeed] = *s.Seed
	}
	if s.SampleInterval != nil {
		out[flagSampleInterval] = *s.SampleInterval
	}
	if s.TimeScale != nil {
		out[flagTimeScale] = *s.TimeScale
	}
	if s.Format != nil {
		out[flagFormat] = *s.Format
	}
	return out
}
