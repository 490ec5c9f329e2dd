package main

import (
	"fmt"
	"io"
	"os"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/library"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/shared"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/tasks"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	library library.AssetLibrary
	logger  *log.Logger
	output  io.Writer
	engine  tasks.PublishEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Library library.AssetLibrary
	Logger  *log.Logger
	Output  io.Writer
	Engine  tasks.PublishEngine
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Engine == nil {
		opts.Engine = tasks.NewPhotosEngine(tasks.EngineOpts{
			Library:        opts.Library,
			Logger:         opts.Logger,
			URLScheme:      opts.Config.Worker.URLScheme,
			CallsPerSecond: opts.Config.Throttle.CallsPerSecond,
			VerifyAttempts: opts.Config.Verify.Attempts,
			VerifyDelay:    opts.Config.Verify.Delay(),
		})
	}

	return &Runner{
		config:  opts.Config,
		library: opts.Library,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  opts.Engine,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		importCommand, deleteCommand, locateCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// writeDocument writes one result document to stdout. The document already
// carries its trailing newline; nothing else may be written to this stream.
func (r *Runner) writeDocument(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write result document: %w", err)
	}
	return nil
}

// drainProgress logs progress updates to the diagnostic channel until the
// progress channel closes, then signals done.
func (r *Runner) drainProgress(logger *log.Logger, ch <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range ch {
			logger.Info(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()
	return done
}
