package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoardcache/hoard/config"
	"github.com/hoardcache/hoard/evt"
	"github.com/hoardcache/hoard/log"
	"github.com/hoardcache/hoard/server"
	"github.com/hoardcache/hoard/util"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var signals = make(chan os.Signal, 1)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Args:         cobra.NoArgs,
		Short:        "start hoard cache server (default command)",
		RunE:         startServer,
		SilenceUsage: true,
	}
}

func startServer(_ *cobra.Command, _ []string) error {
	printBanner()

	cfg, err := config.LoadConfig(configPath, true)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	log.ConfigureLogger(cfg.Log)

	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("can't start server: %w", err)
	}

	const errChanSize = 10

	errChan := make(chan error, errChanSize)

	srv.Start(errChan)

	evt.Bus().Publish(evt.ApplicationStarted, util.Version, util.BuildTime)

	var terminationErr error

	select {
	case terminationErr = <-errChan:
		log.Log().Error("server start failed: ", terminationErr)
	case <-signals:
		log.Log().Infof("Terminating...")
	}

	if err := srv.Stop(); err != nil {
		log.Log().Error("can't stop server: ", err)
	}

	return terminationErr
}

func printBanner() {
	log.Log().Info("_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/")
	log.Log().Info("_/                                                              _/")
	log.Log().Info("_/                                                              _/")
	log.Log().Info("_/       _/                                            _/       _/")
	log.Log().Info("_/      _/_/_/      _/_/      _/_/_/  _/  _/_/    _/_/_/        _/")
	log.Log().Info("_/     _/    _/  _/    _/  _/    _/  _/_/      _/    _/         _/")
	log.Log().Info("_/    _/    _/  _/    _/  _/    _/  _/        _/    _/          _/")
	log.Log().Info("_/   _/    _/    _/_/      _/_/_/  _/          _/_/_/           _/")
	log.Log().Info("_/                                                              _/")
	log.Log().Info("_/                                                              _/")
	log.Log().Infof("_/  Version: %-18s Build time: %-18s  _/", util.Version, util.BuildTime)
	log.Log().Info("_/                                                              _/")
	log.Log().Info("_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/")
}
