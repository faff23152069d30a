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
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/status"
	"github.com/walteh/deeprename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📝 UpdateContents replaces every occurrence of p.From in every file below
// the root, largest file first
func (e *Engine) UpdateContents(ctx context.Context, p text.Pair) error {
	logger := zerolog.Ctx(ctx)

	if err := p.Validate(); err != nil {
		return err
	}

	files, err := listFiles(e.root, nil)
	if err != nil {
		return err
	}

	from, to := []byte(p.From), []byte(p.To)
	for _, f := range files {
		if e.excluded(ctx, f.path) {
			continue
		}

		content, err := os.ReadFile(f.path)
		if err != nil {
			return errors.Errorf("%w: reading %s: %w", errs.ErrIO, f.path, err)
		}
		if !bytes.Contains(content, from) {
			continue
		}

		updated := bytes.ReplaceAll(content, from, to)
		if bytes.Equal(updated, content) {
			continue
		}

		if err := writeFileAtomic(f.path, updated, f.mode); err != nil {
			return errors.Errorf("%w: writing %s: %w", errs.ErrIO, f.path, err)
		}

		logger.Debug().
			Str("path", f.path).
			Int("replacements", bytes.Count(content, from)).
			Msg("rewrote file contents")

		e.record(ctx, f.path, status.ChangeContent)
		e.logger.LogContentDiff(ctx, f.path, content, updated)
	}
	return nil
}

// 🔍 excluded reports whether an exclude pattern matches the file
func (e *Engine) excluded(ctx context.Context, path string) bool {
	if len(e.exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(e.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range e.exclude {
		if doublestar.MatchUnvalidated(pattern, rel) {
			zerolog.Ctx(ctx).Debug().Str("file", rel).Str("pattern", pattern).Msg("file excluded from content rewrite")
			return true
		}
	}
	return false
}

// writeFileAtomic replaces path through a temp file in the same directory.
func writeFileAtomic(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".deeprename-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}
