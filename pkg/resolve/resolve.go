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

// Package resolve works out where x2cwd copies from and to.
package resolve

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// ExecutablePath returns the path of the running executable.
// Tests replace it.
var ExecutablePath = os.Executable

// WorkingDir returns the process working directory.
// Tests replace it.
var WorkingDir = os.Getwd

// 📍 Paths is the result of resolving the running program's location.
type Paths struct {
	SourceDirectory      string // Directory holding the executable, symlinks followed
	ExcludedFileName     string // Base name of the executable
	DestinationDirectory string // Absolute working directory, symlinks followed
}

// 🔍 Current resolves Paths for this process.
func Current() (Paths, error) {
	exe, err := ExecutablePath()
	if err != nil {
		return Paths{}, errors.Errorf("locating executable: %w", err)
	}

	cwd, err := WorkingDir()
	if err != nil {
		return Paths{}, errors.Errorf("getting working directory: %w", err)
	}

	return Resolve(exe, cwd)
}

// 🔍 Resolve computes Paths from the path the program was started with and the
// working directory. A relative executable path is taken against cwd.
func Resolve(executable, cwd string) (Paths, error) {
	if executable == "" {
		return Paths{}, errors.New("executable path is empty")
	}

	dest, err := filepath.Abs(cwd)
	if err != nil {
		return Paths{}, errors.Errorf("making %q absolute: %w", cwd, err)
	}
	// physical path, so it compares against SourceDirectory
	dest, err = filepath.EvalSymlinks(dest)
	if err != nil {
		return Paths{}, errors.Errorf("resolving working directory %q: %w", cwd, err)
	}

	if !filepath.IsAbs(executable) {
		executable = filepath.Join(dest, executable)
	}

	resolved, err := filepath.EvalSymlinks(executable)
	if err != nil {
		return Paths{}, errors.Errorf("resolving executable %q: %w", executable, err)
	}

	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return Paths{}, errors.Errorf("making %q absolute: %w", resolved, err)
	}

	return Paths{
		SourceDirectory:      filepath.Dir(resolved),
		ExcludedFileName:     filepath.Base(resolved),
		DestinationDirectory: dest,
	}, nil
}
