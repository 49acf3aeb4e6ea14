package config

import (
	"github.com/sirupsen/logrus"
)

// HotKeysConfig configuration of the hot key tracker
type HotKeysConfig struct {
	Enable    bool     `yaml:"enable" default:"true"`
	Capacity  uint     `yaml:"capacity" default:"10000"`
	Window    Duration `yaml:"window" default:"2h"`
	Threshold uint32   `yaml:"threshold" default:"5"`
}

// IsEnabled implements `config.Configurable`
func (c *HotKeysConfig) IsEnabled() bool {
	return c.Enable
}

// LogConfig implements `config.Configurable`
func (c *HotKeysConfig) LogConfig(logger *logrus.Entry) {
	logger.Infof("capacity: %d", c.Capacity)
	logger.Infof("window: %s", c.Window)
	logger.Infof("threshold: %d", c.Threshold)
}
