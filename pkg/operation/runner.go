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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations on the calling goroutine
type Runner struct {
	now func() time.Time
}

// 🏗️ NewRunner creates a new runner
func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

// 🏃 Run executes op, refusing to start once ctx is done
func (r *Runner) Run(ctx context.Context, op Operation) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Errorf("operation cancelled: %w", err)
	}

	start := r.now()
	result, err := op.Execute(ctx)

	event := zerolog.Ctx(ctx).Debug()
	if err != nil {
		event = zerolog.Ctx(ctx).Error().Err(err)
	}
	event.
		Dur("took", r.now().Sub(start)).
		Int("files", result.FilesCopied).
		Int("dirs", result.DirsCreated).
		Msg("operation finished")

	return result, err
}
