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

// 📝 UpdateFolderNames renames directories one occurrence at a time.
//
// Each step re-enumerates the tree, picks the longest matching path (so a
// directory always moves before any of its ancestors) and replaces the
// rightmost occurrence of p.From in it. Moving a directory changes every
// path below it, so nothing is carried over between steps except the
// worklist guard, and that only when p.To contains p.From.
func (e *Engine) UpdateFolderNames(ctx context.Context, p text.Pair) error {
	logger := zerolog.Ctx(ctx)

	if err := p.Validate(); err != nil {
		return err
	}
	if p.Noop() {
		return nil
	}

	w := newFolderWorklist(p)
	for {
		dirs, err := listDirs(e.root, w.matches)
		if err != nil {
			return err
		}
		if len(dirs) == 0 {
			return nil
		}

		dir := dirs[0]
		parent, leaf := filepath.Dir(dir), filepath.Base(dir)

		// the leaf holds the rightmost occurrence of the full path: it contains
		// p.From and p.From cannot span a separator
		limit := w.limit(dir)
		replaced, idx := text.RewriteLast(leaf[:limit], p.From, p.To)
		target := filepath.Join(parent, replaced+leaf[limit:])

		if err := os.Rename(dir, target); err != nil {
			return errors.Errorf("%w: renaming directory %s to %s: %w", errs.ErrIO, dir, target, err)
		}

		logger.Debug().Str("from", dir).Str("to", target).Msg("renamed directory")
		e.record(ctx, dir, status.ChangeFolder)
		w.moved(dir, target, idx)
	}
}

// 🧭 folderWorklist decides which directories still need a rename.
//
// Without a guard every step sees the whole leaf, so a match formed by a
// replacement ("abb" -> "ab" for ab=a) is renamed again. When the
// replacement contains the search text that would never end, so the
// worklist then remembers, for every directory renamed in this pass, how
// much of its leaf is original text and never matches past it.
type folderWorklist struct {
	from   string
	guard  bool
	limits map[string]int
}

func newFolderWorklist(p text.Pair) *folderWorklist {
	return &folderWorklist{from: p.From, guard: p.Repeats(), limits: map[string]int{}}
}

// limit returns the length of the leaf prefix that may still be matched.
func (w *folderWorklist) limit(dir string) int {
	if l, ok := w.limits[dir]; ok && w.guard {
		return l
	}
	return len(filepath.Base(dir))
}

func (w *folderWorklist) matches(dir string) bool {
	return strings.Contains(filepath.Base(dir)[:w.limit(dir)], w.from)
}

// moved records a rename; idx is where the replacement starts in the new
// leaf. Remembered descendants are re-keyed under the new path.
func (w *folderWorklist) moved(from, to string, idx int) {
	if !w.guard {
		return
	}
	prefix := from + string(filepath.Separator)
	limits := make(map[string]int, len(w.limits)+1)
	for dir, l := range w.limits {
		switch {
		case dir == from:
		case strings.HasPrefix(dir, prefix):
			limits[to+dir[len(from):]] = l
		default:
			limits[dir] = l
		}
	}
	limits[to] = idx
	w.limits = limits
}
