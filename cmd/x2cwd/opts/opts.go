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

package opts

import (
	"strconv"

	"github.com/spf13/pflag"
	"github.com/walteh/x2cwd/pkg/config"
	"github.com/walteh/x2cwd/pkg/resolve"
	"gitlab.com/tozd/go/errors"
)

// RootOpts holds the flag targets. It is only written while flags are parsed;
// Config freezes it into a config.Config.
type RootOpts struct {
	Verbose        bool
	Recursive      bool
	Simulate       bool
	Debug          bool
	IgnorePatterns []string
}

// New returns options with their defaults.
func New() *RootOpts {
	return &RootOpts{Recursive: true}
}

// AddFlags registers the command-line flags on fs.
func (o *RootOpts) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "print the file names as they are copied")

	// -r and -n write the same field, so whichever comes last wins
	recursive := fs.VarPF(&modeValue{target: &o.Recursive, value: true}, "recursive", "r", "recursively copy all directories (default)")
	recursive.NoOptDefVal = "true"
	flat := fs.VarPF(&modeValue{target: &o.Recursive, value: false}, "no-recursive", "n", "do NOT recursively copy directories")
	flat.NoOptDefVal = "true"

	fs.BoolVar(&o.Simulate, "sim", false, "simulate the copy but do not perform it (useful with -v)")
	fs.StringArrayVar(&o.IgnorePatterns, "ignore", nil, "glob, relative to the program's directory, of entries to skip (repeatable)")
	fs.BoolVar(&o.Debug, "debug", false, "enable debug logging on stderr")
}

// Config builds the immutable copy configuration from the parsed flags and
// the resolved paths.
func (o *RootOpts) Config(paths resolve.Paths) (config.Config, error) {
	cfg, err := config.New(config.Config{
		Verbose:              o.Verbose,
		Recursive:            o.Recursive,
		Simulate:             o.Simulate,
		SourceDirectory:      paths.SourceDirectory,
		ExcludedFileName:     paths.ExcludedFileName,
		DestinationDirectory: paths.DestinationDirectory,
		IgnorePatterns:       o.IgnorePatterns,
	})
	if err != nil {
		return config.Config{}, errors.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// modeValue is a switch flag that stores value into target when given. It
// takes no argument; "-r=false" is rejected rather than read as -n.
type modeValue struct {
	target *bool
	value  bool
}

func (m *modeValue) String() string {
	if m.target == nil {
		return "false"
	}
	return strconv.FormatBool(*m.target == m.value)
}

func (m *modeValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil || !on {
		return errors.Errorf("flag takes no value, got %q", s)
	}
	*m.target = m.value
	return nil
}

func (m *modeValue) Type() string {
	return "bool"
}
