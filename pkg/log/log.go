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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	detailIndent = 8  // spaces to indent source/destination lines
	labelWidth   = 12 // width of the "source:" / "destination:" labels
)

// 🎯 FileOperation describes a single file copy for logging
type FileOperation struct {
	Name        string // Path relative to the source directory
	Source      string // Full source path
	Destination string // Full destination path
	IsReplaced  bool   // Whether an existing destination file is overwritten
	IsSimulated bool   // Whether the copy is only being simulated
}

// 📂 DirectoryOperation describes a visited source directory
type DirectoryOperation struct {
	Source      string // Full source path
	Destination string // Mirrored destination path
	IsNew       bool   // Whether the destination directory is (or would be) created
	IsSimulated bool   // Whether creation is only being simulated
}

// 🎯 Logger prints progress lines for humans and mirrors them to zerolog.
//
// File, directory and skip lines are only printed when verbose is set. The
// plain message helpers always print.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	verbose bool
}

// 🏭 New creates a logger writing to console. Structured events go to the
// zerolog logger carried by ctx.
func New(ctx context.Context, console io.Writer, verbose bool) *Logger {
	return &Logger{
		zlog:    *zerolog.Ctx(ctx),
		console: console,
		verbose: verbose,
	}
}

// Verbose reports whether per-entry lines are printed.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func simulatedSuffix(simulated bool) string {
	if !simulated {
		return ""
	}
	return " " + color.New(color.Faint).Sprint("(simulated)")
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	symbol, symbolColor := '✓', color.FgGreen
	if op.IsReplaced {
		symbol, symbolColor = '⟳', color.FgBlue
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s%s\n",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		op.Name,
		simulatedSuffix(op.IsSimulated))
	fmt.Fprintf(&b, "%s%-*s %s\n", strings.Repeat(" ", detailIndent), labelWidth, "source:", op.Source)
	fmt.Fprintf(&b, "%s%-*s %s", strings.Repeat(" ", detailIndent), labelWidth, "destination:", op.Destination)
	return b.String()
}

// 📝 LogFileOperation logs a file copy
func (l *Logger) LogFileOperation(op FileOperation) {
	l.zlog.Debug().
		Str("file", op.Name).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("replaced", op.IsReplaced).
		Bool("simulated", op.IsSimulated).
		Msg("copying file")

	if !l.verbose {
		return
	}
	fmt.Fprintln(l.console, l.formatFileOperation(op))
}

// 📝 LogDirectory logs a visited directory
func (l *Logger) LogDirectory(op DirectoryOperation) {
	l.zlog.Debug().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("created", op.IsNew).
		Bool("simulated", op.IsSimulated).
		Msg("found directory")

	if !l.verbose {
		return
	}

	line := fmt.Sprintf("%s %s %s %s",
		color.New(color.FgMagenta).Sprint("▸"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgCyan).Sprint(op.Destination))
	if op.IsNew {
		line += " " + color.New(color.FgGreen).Sprint("(new)")
	}
	fmt.Fprintln(l.console, line+simulatedSuffix(op.IsSimulated))
}

// 📝 LogSkipped logs a file or directory that is left out of the copy
func (l *Logger) LogSkipped(name, reason string) {
	l.zlog.Debug().Str("file", name).Str("reason", reason).Msg("skipping")

	if !l.verbose {
		return
	}
	fmt.Fprintf(l.console, "%s%s %s %s\n",
		strings.Repeat(" ", fileIndent),
		color.New(color.FgYellow).Sprint("•"),
		name,
		color.New(color.Faint).Sprintf("(%s)", reason))
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("x2cwd")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
