package config

import (
	"github.com/sirupsen/logrus"
)

// RegistryConfig configuration of the named cache registry
type RegistryConfig struct {
	SweepEvery  uint64   `yaml:"sweepEvery" default:"100"`
	MaxEntryTTL Duration `yaml:"maxEntryTTL"`
}

// IsEnabled implements `config.Configurable`
func (c *RegistryConfig) IsEnabled() bool {
	return true
}

// LogConfig implements `config.Configurable`
func (c *RegistryConfig) LogConfig(logger *logrus.Entry) {
	logger.Infof("sweepEvery: %d", c.SweepEvery)

	if c.MaxEntryTTL.IsAboveZero() {
		logger.Infof("maxEntryTTL: %s", c.MaxEntryTTL)
	}
}
