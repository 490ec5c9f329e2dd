package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/brettbuddin/ApplePhotosPublisher/internal/protocol"
	"github.com/brettbuddin/ApplePhotosPublisher/internal/shared"
	tu "github.com/brettbuddin/ApplePhotosPublisher/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "photospublisher",
		Commands: r.register(),
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			lib := &tu.MockLibrary{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Library: lib,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.library != lib {
				t.Error("expected library to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be constructed")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("Import", func(t *testing.T) {
		t.Run("writes a success document to stdout", func(t *testing.T) {
			dir := t.TempDir()
			photo := tu.MustWriteFile(t, dir, "one.jpg", "jpeg bytes")
			manifestPath := tu.MustWriteFile(t, dir, "manifest.xml",
				`<manifest><photos><photo><path>`+photo+`</path></photo></photos></manifest>`)

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: output})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "import", "--manifest", manifestPath}); err != nil {
				t.Fatalf("import command failed: %v", err)
			}

			outcome, err := protocol.DecodeImport(output.Bytes())
			if err != nil {
				t.Fatalf("stdout is not a valid result document: %v", err)
			}
			if outcome.Status != protocol.StatusSuccess || len(outcome.Results) != 1 {
				t.Fatalf("outcome = %+v, want one successful result", outcome)
			}
			if outcome.Results[0].LocalIdentifier != "MOCK-0000/L0/001" {
				t.Errorf("localIdentifier = %q", outcome.Results[0].LocalIdentifier)
			}
		})

		t.Run("manifest rejection becomes an error document", func(t *testing.T) {
			dir := t.TempDir()
			manifestPath := tu.MustWriteFile(t, dir, "manifest.xml", `<catalog></catalog>`)

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: output})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "import", "--manifest", manifestPath}); err != nil {
				t.Fatalf("import command failed: %v", err)
			}

			outcome, err := protocol.DecodeImport(output.Bytes())
			if err != nil {
				t.Fatalf("stdout is not a valid result document: %v", err)
			}
			if outcome.Status != protocol.StatusError || outcome.ErrorCode != protocol.CodeManifestParseError {
				t.Errorf("outcome = %+v, want MANIFEST_PARSE_ERROR", outcome)
			}
		})

		t.Run("document write failure surfaces as a command error", func(t *testing.T) {
			dir := t.TempDir()
			manifestPath := tu.MustWriteFile(t, dir, "manifest.xml", `<manifest></manifest>`)

			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: &tu.FWriter{}})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "import", "--manifest", manifestPath}); err == nil {
				t.Error("expected error when the result document cannot be written")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("writes a delete document to stdout", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: output})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "delete", "A/L0/001"}); err != nil {
				t.Fatalf("delete command failed: %v", err)
			}

			outcome, err := protocol.DecodeDelete(output.Bytes())
			if err != nil {
				t.Fatalf("stdout is not a valid result document: %v", err)
			}
			if outcome.Status != protocol.StatusSuccess || outcome.DeletedCount != 1 {
				t.Errorf("outcome = %+v, want success with deletedCount 1", outcome)
			}
		})

		t.Run("no identifiers is a successful no-op", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: output})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "delete"}); err != nil {
				t.Fatalf("delete command failed: %v", err)
			}

			outcome, err := protocol.DecodeDelete(output.Bytes())
			if err != nil {
				t.Fatalf("stdout is not a valid result document: %v", err)
			}
			if outcome.DeletedCount != 0 {
				t.Errorf("deletedCount = %d, want 0", outcome.DeletedCount)
			}
		})
	})

	t.Run("Locate", func(t *testing.T) {
		t.Run("prints the deep link with no-open", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: output})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "locate", "--no-open", "ASSET-1/L0/001"}); err != nil {
				t.Fatalf("locate command failed: %v", err)
			}

			got := strings.TrimSpace(output.String())
			want := "photos://asset?assetLocalIdentifier=ASSET-1"
			if got != want {
				t.Errorf("locate output = %q, want %q", got, want)
			}
		})

		t.Run("missing identifier", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Library: &tu.MockLibrary{}, Output: &bytes.Buffer{}})
			app := newTestApp(runner)

			if err := app.Run(context.Background(), []string{"photospublisher", "locate", "--no-open"}); err == nil {
				t.Error("expected error for missing identifier")
			}
		})
	})
}
