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

package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Config is the copy configuration for a single run.
//
// It is built once, after flag parsing, and handed around by value. Use New to
// get a validated copy that does not share the caller's IgnorePatterns slice.
type Config struct {
	Verbose   bool // Print files and directories as they are processed
	Recursive bool // Descend into subdirectories
	Simulate  bool // Log every action but never touch the filesystem

	SourceDirectory      string // Directory holding the running executable
	ExcludedFileName     string // Executable's own file name, never copied
	DestinationDirectory string // Working directory at invocation

	IgnorePatterns []string // doublestar globs, relative to SourceDirectory
}

// 🏭 New validates c and returns a detached copy of it.
func New(c Config) (Config, error) {
	c.IgnorePatterns = slices.Clone(c.IgnorePatterns)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ✅ Validate checks the invariants the copier relies on.
func (c Config) Validate() error {
	if err := validateDir("source directory", c.SourceDirectory); err != nil {
		return err
	}
	if err := validateDir("destination directory", c.DestinationDirectory); err != nil {
		return err
	}

	if c.ExcludedFileName == "" {
		return errors.New("excluded file name is required")
	}
	if strings.ContainsRune(c.ExcludedFileName, filepath.Separator) || c.ExcludedFileName != filepath.Base(c.ExcludedFileName) {
		return errors.Errorf("excluded file name %q must be a bare file name", c.ExcludedFileName)
	}

	for _, pattern := range c.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	return nil
}

// Mode names the traversal mode for logs.
func (c Config) Mode() string {
	if c.Recursive {
		return "recursive"
	}
	return "flat"
}

func validateDir(what, path string) error {
	if path == "" {
		return errors.Errorf("%s is required", what)
	}
	if !filepath.IsAbs(path) {
		return errors.Errorf("%s %q must be absolute", what, path)
	}
	if filepath.Clean(path) != path {
		return errors.Errorf("%s %q must be a clean path", what, path)
	}
	return nil
}
