package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hoardcache/hoard/config"
	"github.com/hoardcache/hoard/log"

	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "./config.yml"
	configFileEnvVar  = "HOARD_CONFIG_FILE"

	defaultHost = "localhost"
	defaultPort = 4000
)

//nolint:gochecknoglobals
var (
	configPath string
	apiHost    string
	apiPort    uint16
)

// NewRootCommand creates a new root cli command instance
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "hoard",
		Short: "hoard is a caching daemon",
		Long: `hoard is a process-wide cache registry with per-entry expiry and a REST API.

Complete documentation is available at https://github.com/hoardcache/hoard`,
		PersistentPreRunE: initConfigPreRun,
		RunE:              startServer,
		SilenceUsage:      true,
	}

	c.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	c.PersistentFlags().StringVar(&apiHost, "apiHost", defaultHost, "host of the hoard instance")
	c.PersistentFlags().Uint16Var(&apiPort, "apiPort", defaultPort, "port of the hoard instance")

	c.AddCommand(newServeCommand(),
		newCacheCommand(),
		newStatsCommand(),
		newBenchCommand(),
		NewVersionCommand(),
		NewHealthcheckCommand(),
		NewValidateCommand())

	return c
}

func apiURL(path string) string {
	return fmt.Sprintf("http://%s:%d%s", apiHost, apiPort, path)
}

func initConfigPreRun(cmd *cobra.Command, args []string) error {
	return initConfig()
}

func initConfig() error {
	if configPath == defaultConfigPath {
		val, present := os.LookupEnv(configFileEnvVar)
		if present {
			configPath = val
		}
	}

	cfg, err := config.LoadConfig(configPath, false)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	log.ConfigureLogger(cfg.Log)

	if len(cfg.Ports.HTTP) != 0 {
		split := strings.Split(cfg.Ports.HTTP[0], ":")

		lastIdx := len(split) - 1

		apiPort, err = config.ConvertPort(split[lastIdx])
		if err != nil {
			return fmt.Errorf("can't convert port to number (%s) %w", split[lastIdx], err)
		}

		if lastIdx > 0 && split[0] != "" {
			apiHost = split[0]
		}
	}

	return nil
}

// Execute starts the command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
