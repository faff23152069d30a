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

package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/status"
	"github.com/walteh/deeprename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📝 UpdateFileNames renames every file whose base name contains p.From,
// largest file first.
//
// The candidate list is taken once, before the first move. A name produced
// by a rename in this pass is not matched again until the next Apply.
func (e *Engine) UpdateFileNames(ctx context.Context, p text.Pair) error {
	logger := zerolog.Ctx(ctx)

	if err := p.Validate(); err != nil {
		return err
	}
	if p.Noop() {
		return nil
	}

	files, err := listFiles(e.root, func(path string) bool {
		return strings.Contains(filepath.Base(path), p.From)
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		name := filepath.Base(f.path)
		newName := text.Rewrite(name, p.From, p.To)
		if newName == name {
			continue
		}

		target := filepath.Join(filepath.Dir(f.path), newName)
		if err := os.Rename(f.path, target); err != nil {
			return errors.Errorf("%w: renaming file %s to %s: %w", errs.ErrIO, f.path, target, err)
		}

		logger.Debug().Str("from", f.path).Str("to", target).Msg("renamed file")
		e.record(ctx, f.path, status.ChangeFile)
	}
	return nil
}
