package config

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import (
	"github.com/sirupsen/logrus"
)

// OplogType operation log target type ENUM(
// none // no operation logging
// logger // use logging framework as output
// file // write per-day files into the target directory
// mysql // MySQL database as target
// postgresql // PostgreSQL database as target
// sqlite // SQLite database as target
// )
type OplogType int

// OplogConfig configuration of the operation log
type OplogConfig struct {
	Type             OplogType `yaml:"type"`
	Target           string    `yaml:"target"`
	SplitPerCache    bool      `yaml:"splitPerCache" default:"false"`
	LogRetentionDays uint64    `yaml:"logRetentionDays"`
	CreationAttempts int       `yaml:"creationAttempts" default:"3"`
	CreationCooldown Duration  `yaml:"creationCooldown" default:"2s"`
	FlushInterval    Duration  `yaml:"flushInterval" default:"30s"`
}

// IsEnabled implements `config.Configurable`
func (c *OplogConfig) IsEnabled() bool {
	return c.Type != OplogTypeNone
}

// LogConfig implements `config.Configurable`
func (c *OplogConfig) LogConfig(logger *logrus.Entry) {
	logger.Infof("type: %s", c.Type)

	if c.Target != "" {
		logger.Infof("target: %s", c.Target)
	}

	if c.Type == OplogTypeFile {
		logger.Infof("splitPerCache: %t", c.SplitPerCache)
	}

	logger.Infof("logRetentionDays: %d", c.LogRetentionDays)
	logger.Infof("flushInterval: %s", c.FlushInterval)
	logger.Debugf("creationAttempts: %d", c.CreationAttempts)
	logger.Debugf("creationCooldown: %s", c.CreationCooldown)
}
