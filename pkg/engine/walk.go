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
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/walteh/deeprename/pkg/errs"
	"gitlab.com/tozd/go/errors"
)

// 📄 fileEntry is a regular file seen during enumeration
type fileEntry struct {
	path string
	size int64
	mode fs.FileMode
}

// listFiles returns every regular file below root, largest first. Files of
// equal size keep lexical walk order.
func listFiles(root string, keep func(path string) bool) ([]fileEntry, error) {
	var files []fileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if keep != nil && !keep(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, fileEntry{path: path, size: info.Size(), mode: info.Mode().Perm()})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("%w: listing files in %s: %w", errs.ErrIO, root, err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].size > files[j].size
	})
	return files, nil
}

// listDirs returns every directory strictly below root accepted by keep,
// longest path first. Paths of equal length keep lexical walk order.
func listDirs(root string, keep func(path string) bool) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if keep(path) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("%w: listing directories in %s: %w", errs.ErrIO, root, err)
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})
	return dirs, nil
}
