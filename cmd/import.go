package main

import (
	"context"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/manifest"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/protocol"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/shared"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Import runs one batch photo import described by a manifest file.
//
// Every outcome, including manifest rejection, is delivered as a result
// document on stdout so the orchestrator has a single parse path. A non-zero
// exit happens only when the document itself cannot be written.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	manifestPath := cmd.String("manifest")
	logger := shared.WithLogger(r.logger, "run", shared.GenerateID(), "op", "import")

	photos, err := manifest.ParseFile(manifestPath)
	if err != nil {
		logger.Error("manifest rejected", "manifest", manifestPath, "err", err)
		return r.writeImportOutcome(protocol.ImportError(protocol.CodeManifestParseError, err.Error()))
	}

	logger.Info("starting batch import", "manifest", manifestPath, "photos", len(photos))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := r.drainProgress(logger, progressCh)

	outcome := r.engine.ExecuteImport(ctx, photos, progressCh)
	close(progressCh)
	<-done

	if outcome.Status == protocol.StatusSuccess {
		logger.Info("batch import finished", "results", len(outcome.Results))
	} else {
		logger.Error("batch import aborted", "code", outcome.ErrorCode)
	}

	return r.writeImportOutcome(outcome)
}

func (r *Runner) writeImportOutcome(outcome *protocol.BatchOutcome) error {
	data, err := protocol.EncodeImport(outcome)
	if err != nil {
		return err
	}
	return r.writeDocument(data)
}

// importCommand handles batch photo imports
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a batch of photos described by a manifest file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "manifest",
				Aliases:  []string{"m"},
				Usage:    "Path to the batch manifest XML file",
				Required: true,
			},
		},
		Action: r.Import,
	}
}
