// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/x2cwd/cmd/x2cwd/opts"
	"github.com/walteh/x2cwd/pkg/log"
	"github.com/walteh/x2cwd/pkg/operation"
	"github.com/walteh/x2cwd/pkg/resolve"
	"gitlab.com/tozd/go/errors"
)

// fsFactory returns the filesystem the copy runs on.
var fsFactory = afero.NewOsFs

// usageError marks bad command-line input; main prints usage and exits 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// newRootCommand creates the x2cwd command writing to stdout and stderr
func newRootCommand(o *opts.RootOpts, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "x2cwd [flags]",
		Short: "Copy the contents of x2cwd's own directory into the current directory",
		Long: `x2cwd copies the other files in the directory it lives in (and, by default,
its subdirectories) into the directory it was called from.

If x2cwd is called in directory A and lives in directory B, everything in B
except x2cwd itself is copied into A, replacing files of the same name.`,
		Example: `  x2cwd
  x2cwd -v -n
  x2cwd -v --sim --ignore '**/*.tmp'`,
		Version:       readBuildVersion().module,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), o.Debug, cmd.ErrOrStderr())
			return runCopy(ctx, o, cmd.OutOrStdout())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionLine(readBuildVersion()))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	o.AddFlags(cmd.Flags())

	return cmd
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &usageError{err: errors.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
	}
	return nil
}

// setupLogging attaches a zerolog logger writing to w to ctx
func setupLogging(ctx context.Context, debug bool, w io.Writer) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger.WithContext(ctx)
}

// runCopy resolves the paths, freezes the options and runs the copy
func runCopy(ctx context.Context, o *opts.RootOpts, stdout io.Writer) error {
	paths, err := resolve.Current()
	if err != nil {
		return errors.Errorf("resolving paths: %w", err)
	}

	cfg, err := o.Config(paths)
	if err != nil {
		return &usageError{err: err}
	}

	console := log.New(ctx, stdout, cfg.Verbose)
	if console.Verbose() {
		console.Info("verbosity enabled")
		if cfg.Simulate {
			console.Infof("simulating, nothing under %s will change", cfg.DestinationDirectory)
		}
		console.Header(fmt.Sprintf("%s → %s (%s)", cfg.SourceDirectory, cfg.DestinationDirectory, cfg.Mode()))
	}

	op := operation.NewCopyOperation(operation.Options{
		Config: cfg,
		Fs:     fsFactory(),
		Logger: console,
	})

	result, err := operation.NewRunner().Run(ctx, op)
	if err != nil {
		return errors.Errorf("copying %s to %s: %w", cfg.SourceDirectory, cfg.DestinationDirectory, err)
	}

	if console.Verbose() {
		verb := "copied"
		if cfg.Simulate {
			verb = "would copy"
		}
		console.Successf("%s %d files (%d replaced), %d new directories, %d skipped",
			verb, result.FilesCopied, result.FilesReplaced, result.DirsCreated, result.Skipped)
	}
	return nil
}
