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

	"github.com/spf13/afero"
	"github.com/walteh/x2cwd/pkg/config"
	"github.com/walteh/x2cwd/pkg/log"
)

// 🎯 Operation is a unit of work run by the CLI
type Operation interface {
	Execute(ctx context.Context) (Result, error)
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the validated copy configuration
	Config config.Config
	// Fs is the filesystem to copy on; nil means the OS filesystem
	Fs afero.Fs
	// Logger prints progress lines
	Logger *log.Logger
}

// 📊 Result counts what a copy did, or would have done when simulating
type Result struct {
	FilesCopied   int // Files written, including replacements
	FilesReplaced int // Files that overwrote an existing destination file
	DirsCreated   int // Destination directories created
	Skipped       int // Entries left out (call file, ignore patterns)
}
