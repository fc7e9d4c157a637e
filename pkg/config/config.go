// Package config provides configuration management for dagflow services.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for a dagflow deployment.
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Ingest IngestConfig `mapstructure:"ingest"`
	Window WindowConfig `mapstructure:"window"`
	Log    LogConfig    `mapstructure:"log"`
}

// EngineConfig holds streaming-engine sizing configuration.
type EngineConfig struct {
	InitialHistoryCapacity int `mapstructure:"initial_history_capacity"`
	InitialNodeCapacity    int `mapstructure:"initial_node_capacity"`
	InitialEdgeCapacity    int `mapstructure:"initial_edge_capacity"`
}

// IngestConfig holds source-multiplexing configuration.
type IngestConfig struct {
	PollInterval  int `mapstructure:"poll_interval"` // in milliseconds
	WorkerCount   int `mapstructure:"worker_count"`
	QueueCapacity int `mapstructure:"queue_capacity"`
}

// WindowConfig holds default window/aggregator parameters used when a
// pipeline definition does not override them.
type WindowConfig struct {
	DefaultSize    int     `mapstructure:"default_size"`
	CUSUMThreshold float64 `mapstructure:"cusum_threshold"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/dagflow")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults")
		} else if os.IsNotExist(err) {
			fmt.Printf("Config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.initial_history_capacity", 64)
	v.SetDefault("engine.initial_node_capacity", 16)
	v.SetDefault("engine.initial_edge_capacity", 32)

	v.SetDefault("ingest.poll_interval", 100)
	v.SetDefault("ingest.worker_count", 4)
	v.SetDefault("ingest.queue_capacity", 1024)

	v.SetDefault("window.default_size", 60)
	v.SetDefault("window.cusum_threshold", 5.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.InitialHistoryCapacity < 1 {
		return fmt.Errorf("engine initial history capacity must be at least 1")
	}
	if c.Ingest.WorkerCount < 1 {
		return fmt.Errorf("ingest worker count must be at least 1")
	}
	if c.Window.DefaultSize < 1 {
		return fmt.Errorf("window default size must be at least 1")
	}
	return nil
}
