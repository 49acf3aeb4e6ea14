package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/hoardcache/hoard/log"
)

// Configurable is a configuration section with common behavior
type Configurable interface {
	// IsEnabled returns true when the section is active
	IsEnabled() bool

	// LogConfig logs the current section values
	LogConfig(logger *logrus.Entry)
}

// Config main configuration
type Config struct {
	Log        log.Config     `yaml:"log"`
	Ports      PortsConfig    `yaml:"ports"`
	CertFile   string         `yaml:"certFile"`
	KeyFile    string         `yaml:"keyFile"`
	Registry   RegistryConfig `yaml:"registry"`
	HotKeys    HotKeysConfig  `yaml:"hotKeys"`
	Oplog      OplogConfig    `yaml:"oplog"`
	Redis      Redis          `yaml:"redis"`
	Prometheus MetricsConfig  `yaml:"prometheus"`
}

// PortsConfig are the ports all listeners use
type PortsConfig struct {
	HTTP  ListenConfig `yaml:"http" default:"4000"`
	HTTPS ListenConfig `yaml:"https"`
}

// ListenConfig is a list of address(es) to listen on
type ListenConfig []string

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (l *ListenConfig) UnmarshalText(data []byte) error {
	addresses := string(data)

	*l = strings.Split(addresses, ",")

	return nil
}

// ConvertPort converts string representation into a valid port (0 - 65535)
func ConvertPort(in string) (uint16, error) {
	const (
		base    = 10
		bitSize = 16
	)

	p, err := strconv.ParseUint(strings.TrimSpace(in), base, bitSize)
	if err != nil {
		return 0, err
	}

	return uint16(p), nil
}

// LoadConfig creates new config from YAML file
func LoadConfig(path string, mandatory bool) (*Config, error) {
	cfg := Config{}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("can't apply default values: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mandatory {
			// no config file, use defaults
			return &cfg, nil
		}

		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	return unmarshalConfig(data, &cfg)
}

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("wrong file structure: %w", err)
	}

	validateConfig(cfg)

	return cfg, nil
}

func validateConfig(cfg *Config) {
	if cfg.Registry.SweepEvery == 0 {
		log.Log().Warn("registry.sweepEvery is 0, the built-in default will be used")
	}

	if !cfg.Registry.MaxEntryTTL.IsAtLeastZero() {
		log.Log().Warn("registry.maxEntryTTL is negative, entry TTLs are not limited")

		cfg.Registry.MaxEntryTTL = 0
	}

	if cfg.Oplog.Type != OplogTypeNone && cfg.Oplog.Type != OplogTypeLogger && cfg.Oplog.Target == "" {
		log.Log().Warnf("oplog target is empty for type '%s', using '%s' as fallback", cfg.Oplog.Type, OplogTypeLogger)

		cfg.Oplog.Type = OplogTypeLogger
	}

	if cfg.HotKeys.Enable && cfg.HotKeys.Capacity == 0 {
		log.Log().Warn("hotKeys.capacity is 0, hot key tracking is disabled")

		cfg.HotKeys.Enable = false
	}
}

// LogConfig implements `config.Configurable`
func (cfg *Config) LogConfig(logger *logrus.Entry) {
	logger.Info("ports:")
	logger.Info("  http: ", cfg.Ports.HTTP)
	logger.Info("  https: ", cfg.Ports.HTTPS)

	logger.Info("registry:")
	cfg.Registry.LogConfig(logger)

	logConfigurable(logger, "hotKeys", &cfg.HotKeys)
	logConfigurable(logger, "oplog", &cfg.Oplog)
	logConfigurable(logger, "redis", &cfg.Redis)
	logConfigurable(logger, "prometheus", &cfg.Prometheus)
}

func logConfigurable(logger *logrus.Entry, name string, c Configurable) {
	if c.IsEnabled() {
		logger.Infof("%s:", name)
		c.LogConfig(logger)
	} else {
		logger.Infof("%s: disabled", name)
	}
}
