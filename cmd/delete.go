package main

import (
	"context"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/protocol"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/shared"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Delete removes the assets with the given full identifiers as one request.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	identifiers := cmd.Args().Slice()
	logger := shared.WithLogger(r.logger, "run", shared.GenerateID(), "op", "delete")
	logger.Info("starting delete", "count", len(identifiers))

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := r.drainProgress(logger, progressCh)

	outcome := r.engine.ExecuteDelete(ctx, identifiers, progressCh)
	close(progressCh)
	<-done

	if outcome.Status == protocol.StatusSuccess {
		logger.Info("delete finished", "deleted", outcome.DeletedCount)
	} else {
		logger.Error("delete failed", "code", outcome.ErrorCode)
	}

	data, err := protocol.EncodeDelete(outcome)
	if err != nil {
		return err
	}
	return r.writeDocument(data)
}

// deleteCommand handles asset deletion
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete assets by identifier as a single request",
		ArgsUsage: "<identifier>...",
		Action:    r.Delete,
	}
}
