package telemetry

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/config"
)

const (
	DefaultWorkers          = 4
	DefaultStreamMaxBatch   = 50
	DefaultStreamMaxRetries = 3
)

// Config holds the telemetry settings read once per session. A blank
// Endpoint disables submission entirely.
type Config struct {
	Endpoint string
	Workers  int
	Timeouts TimeoutSettings
	Stream   StreamSettings
}

type TimeoutSettings struct {
	ConnectSeconds int
	RequestSeconds int
}

type StreamSettings struct {
	MaxBatch   int
	MaxRetries int
}

func DefaultConfig() Config {
	return Config{
		Workers: DefaultWorkers,
		Stream: StreamSettings{
			MaxBatch:   DefaultStreamMaxBatch,
			MaxRetries: DefaultStreamMaxRetries,
		},
	}
}

// LoadConfig reads the telemetry section from the given YAML sources,
// expanding ${VAR} references through lookup (the process environment when
// lookup is nil). Missing keys keep their defaults; a missing telemetry
// section yields a disabled configuration.
func LoadConfig(lookup func(string) (string, bool), sources ...io.Reader) (Config, error) {
	result := DefaultConfig()
	if lookup == nil {
		lookup = os.LookupEnv
	}
	options := []config.YAMLOption{config.Static(map[string]interface{}{"telemetry": map[string]interface{}{}})}
	for _, s := range sources {
		options = append(options, config.Source(s))
	}
	options = append(options, config.Expand(lookup))
	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml config %w", err)
	}

	var raw struct {
		Endpoint string `yaml:"endpoint"`
		Workers  int    `yaml:"workers"`
		Timeouts struct {
			ConnectSeconds int `yaml:"connectSeconds"`
			RequestSeconds int `yaml:"requestSeconds"`
		} `yaml:"timeouts"`
		Stream struct {
			MaxBatch   int `yaml:"maxBatch"`
			MaxRetries int `yaml:"maxRetries"`
		} `yaml:"stream"`
	}
	key := "telemetry"
	if err := yaml.Get(key).Populate(&raw); err != nil {
		return result, fmt.Errorf("failed to read '%s' from yaml config %w", key, err)
	}

	result.Endpoint = raw.Endpoint
	if raw.Workers > 0 {
		result.Workers = raw.Workers
	}
	result.Timeouts.ConnectSeconds = raw.Timeouts.ConnectSeconds
	result.Timeouts.RequestSeconds = raw.Timeouts.RequestSeconds
	if raw.Stream.MaxBatch > 0 {
		result.Stream.MaxBatch = raw.Stream.MaxBatch
	}
	if raw.Stream.MaxRetries > 0 {
		result.Stream.MaxRetries = raw.Stream.MaxRetries
	}
	return result, nil
}
