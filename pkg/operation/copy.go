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

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/x2cwd/pkg/config"
	"github.com/walteh/x2cwd/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const dirMode = 0o755

// 📦 NewCopyOperation creates a new copy operation
func NewCopyOperation(opts Options) *CopyOperation {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &CopyOperation{
		config: opts.Config,
		fs:     fs,
		logger: opts.Logger,
	}
}

// 📦 CopyOperation mirrors the source directory into the destination directory
type CopyOperation struct {
	config config.Config
	fs     afero.Fs
	logger *log.Logger
}

// copyRun holds the state of one Execute call.
type copyRun struct {
	cfg    config.Config
	fs     afero.Fs
	logger *log.Logger
	zlog   zerolog.Logger
	result Result
}

// 🏃 Execute runs the copy operation
func (op *CopyOperation) Execute(ctx context.Context) (Result, error) {
	cfg := op.config
	if err := cfg.Validate(); err != nil {
		return Result{}, errors.Errorf("validating config: %w", err)
	}

	logger := op.logger
	if logger == nil {
		logger = log.New(ctx, io.Discard, false)
	}

	zlog := zerolog.Ctx(ctx).With().
		Str("source", cfg.SourceDirectory).
		Str("destination", cfg.DestinationDirectory).
		Str("mode", cfg.Mode()).
		Bool("simulate", cfg.Simulate).
		Logger()

	if sameDirectory(op.fs, cfg.SourceDirectory, cfg.DestinationDirectory) {
		logger.Warningf("source and destination are the same directory (%s), nothing to copy", cfg.SourceDirectory)
		return Result{}, nil
	}

	fs := op.fs
	if cfg.Simulate {
		fs = afero.NewReadOnlyFs(fs)
	}

	run := &copyRun{
		cfg:    cfg,
		fs:     fs,
		logger: logger,
		zlog:   zlog,
	}

	zlog.Debug().Msg("starting copy")

	var err error
	if cfg.Recursive {
		err = run.recursive(ctx)
	} else {
		err = run.flat(ctx)
	}
	if err != nil {
		return run.result, err
	}

	zlog.Debug().
		Int("files", run.result.FilesCopied).
		Int("replaced", run.result.FilesReplaced).
		Int("dirs", run.result.DirsCreated).
		Int("skipped", run.result.Skipped).
		Msg("copy complete")

	return run.result, nil
}

// 📄 flat copies the regular files directly under the source directory
func (r *copyRun) flat(ctx context.Context) error {
	src, dst := r.cfg.SourceDirectory, r.cfg.DestinationDirectory

	if _, err := r.ensureDir(dst); err != nil {
		return err
	}

	entries, err := afero.ReadDir(r.fs, src)
	if err != nil {
		return errors.Errorf("listing %s: %w", src, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("copy interrupted: %w", err)
		}
		if entry.IsDir() {
			continue
		}
		if err := r.visitFile(filepath.Join(src, entry.Name()), dst); err != nil {
			return err
		}
	}

	return nil
}

// 🌳 recursive mirrors the whole source tree. afero.Walk is pre-order, so a
// directory is always handled before anything inside it and a single-level
// Mkdir is enough.
func (r *copyRun) recursive(ctx context.Context) error {
	return afero.Walk(r.fs, r.cfg.SourceDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return errors.Errorf("copy interrupted: %w", err)
		}

		if info.IsDir() {
			return r.visitDir(path, info)
		}

		dst, err := r.destinationFor(filepath.Dir(path))
		if err != nil {
			return err
		}
		return r.visitFile(path, dst)
	})
}

// 📂 visitDir creates the mirrored destination of a source directory
func (r *copyRun) visitDir(path string, info os.FileInfo) error {
	if path != r.cfg.SourceDirectory {
		// the destination lives inside the source; walking it would copy the copy
		if r.isDestination(path, info) {
			r.zlog.Debug().Str("path", path).Msg("pruning destination directory from walk")
			return filepath.SkipDir
		}
		if rel := r.relative(path); r.shouldIgnore(rel) {
			r.logger.LogSkipped(rel+"/", "ignored")
			r.result.Skipped++
			return filepath.SkipDir
		}
	}

	dst, err := r.destinationFor(path)
	if err != nil {
		return err
	}

	created, err := r.ensureDir(dst)
	if err != nil {
		return err
	}

	r.logger.LogDirectory(log.DirectoryOperation{
		Source:      path,
		Destination: dst,
		IsNew:       created,
		IsSimulated: r.cfg.Simulate,
	})
	return nil
}

// 📄 visitFile copies one source entry into dstDir unless it is excluded
func (r *copyRun) visitFile(path, dstDir string) error {
	rel := r.relative(path)

	if filepath.Base(path) == r.cfg.ExcludedFileName {
		r.logger.LogSkipped(rel, "call file")
		r.result.Skipped++
		return nil
	}

	if r.shouldIgnore(rel) {
		r.logger.LogSkipped(rel, "ignored")
		r.result.Skipped++
		return nil
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && r.isDanglingLink(path) {
			r.zlog.Debug().Str("path", path).Msg("dangling symlink, skipping")
			return nil
		}
		return errors.Errorf("inspecting %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		r.zlog.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("not a regular file, skipping")
		return nil
	}

	return r.copyFile(path, rel, info, dstDir)
}

// 📋 copyFile copies path into dstDir under the same name, replacing any
// existing file there
func (r *copyRun) copyFile(path, rel string, info os.FileInfo, dstDir string) error {
	dstPath := filepath.Join(dstDir, filepath.Base(path))

	exists, err := afero.Exists(r.fs, dstPath)
	if err != nil {
		return errors.Errorf("checking %s: %w", dstPath, err)
	}

	r.logger.LogFileOperation(log.FileOperation{
		Name:        rel,
		Source:      path,
		Destination: dstPath,
		IsReplaced:  exists,
		IsSimulated: r.cfg.Simulate,
	})

	if !r.cfg.Simulate {
		if exists {
			if err := r.fs.Remove(dstPath); err != nil {
				return errors.Errorf("removing existing %s: %w", dstPath, err)
			}
		}
		if err := r.writeCopy(path, dstPath, info.Mode().Perm()); err != nil {
			return err
		}
	}

	r.result.FilesCopied++
	if exists {
		r.result.FilesReplaced++
	}
	return nil
}

func (r *copyRun) writeCopy(srcPath, dstPath string, perm os.FileMode) error {
	in, err := r.fs.Open(srcPath)
	if err != nil {
		return errors.Errorf("opening %s: %w", srcPath, err)
	}
	defer in.Close()

	out, err := r.fs.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Errorf("creating %s: %w", dstPath, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %s to %s: %w", srcPath, dstPath, err)
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dstPath, err)
	}
	return nil
}

// 📁 ensureDir creates dir (one level) if it is missing and reports whether
// it was, or in simulate mode would have been, created
func (r *copyRun) ensureDir(dir string) (bool, error) {
	exists, err := afero.DirExists(r.fs, dir)
	if err != nil {
		return false, errors.Errorf("checking %s: %w", dir, err)
	}
	if exists {
		return false, nil
	}

	if !r.cfg.Simulate {
		if err := r.fs.Mkdir(dir, dirMode); err != nil {
			return false, errors.Errorf("creating directory %s: %w", dir, err)
		}
	}

	r.result.DirsCreated++
	return true, nil
}

// isDestination reports whether the walked directory at path is the
// destination, also when it is reached under another name
func (r *copyRun) isDestination(path string, info os.FileInfo) bool {
	if path == r.cfg.DestinationDirectory {
		return true
	}
	dst, err := r.fs.Stat(r.cfg.DestinationDirectory)
	return err == nil && os.SameFile(info, dst)
}

// isDanglingLink reports whether path is a symlink whose target is missing
func (r *copyRun) isDanglingLink(path string) bool {
	lstater, ok := r.fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, _, err := lstater.LstatIfPossible(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// 🪞 sameDirectory reports whether a and b name the same directory on fs.
// Paths are compared first; os.SameFile catches aliases through symlinks.
func sameDirectory(fs afero.Fs, a, b string) bool {
	if a == b {
		return true
	}
	ai, err := fs.Stat(a)
	if err != nil {
		return false
	}
	bi, err := fs.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// 🧭 destinationFor maps a source directory onto the destination tree
func (r *copyRun) destinationFor(dir string) (string, error) {
	rel, err := filepath.Rel(r.cfg.SourceDirectory, dir)
	if err != nil {
		return "", errors.Errorf("relating %s to %s: %w", dir, r.cfg.SourceDirectory, err)
	}
	return filepath.Join(r.cfg.DestinationDirectory, rel), nil
}

// relative returns path relative to the source directory, slash separated.
func (r *copyRun) relative(path string) string {
	rel, err := filepath.Rel(r.cfg.SourceDirectory, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// 🔍 shouldIgnore checks rel against the ignore patterns
func (r *copyRun) shouldIgnore(rel string) bool {
	for _, pattern := range r.cfg.IgnorePatterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			r.zlog.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			r.zlog.Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
