package main

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/library"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var photoLibrary library.AssetLibrary
	if path, err := exec.LookPath(config.Helper.Path); err == nil {
		bridge := library.NewHelperBridge(path, logger)
		defer bridge.Close()
		photoLibrary = bridge
	} else {
		logger.Warn("photo helper not found, library operations will be reported as unavailable", "helper", config.Helper.Path)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Library: photoLibrary,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "photospublisher",
		Usage:    "Import, delete, and locate Photos assets on behalf of a publishing catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
