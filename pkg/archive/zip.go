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

package archive

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"gitlab.com/tozd/go/errors"
)

// 🗜️ ZipCodec handles .zip archives in process
type ZipCodec struct{}

// 🏭 NewZipCodec creates a new ZipCodec
func NewZipCodec() *ZipCodec {
	return &ZipCodec{}
}

func (c *ZipCodec) Name() string { return "zip" }

func (c *ZipCodec) Extensions() []string { return []string{".zip"} }

// 📥 Extract unpacks every entry below destDir
func (c *ZipCodec) Extract(ctx context.Context, archivePath, destDir string) error {
	logger := zerolog.Ctx(ctx)

	// insecure entry names are rejected per entry by entryPath
	r, err := zip.OpenReader(archivePath)
	if err != nil && !(r != nil && errors.Is(err, zip.ErrInsecurePath)) {
		return errors.Errorf("%w: opening %s: %w", errs.ErrIO, archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryPath(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Errorf("%w: creating directory %s: %w", errs.ErrIO, target, err)
			}
			continue
		}

		if err := extractZipFile(f, target); err != nil {
			return err
		}
		logger.Trace().Str("entry", f.Name).Msg("extracted zip entry")
	}

	logger.Debug().Str("archive", archivePath).Int("entries", len(r.File)).Msg("extracted zip archive")
	return nil
}

func extractZipFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Errorf("%w: creating directory %s: %w", errs.ErrIO, filepath.Dir(target), err)
	}

	src, err := f.Open()
	if err != nil {
		return errors.Errorf("%w: opening entry %s: %w", errs.ErrIO, f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Errorf("%w: creating %s: %w", errs.ErrIO, target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Errorf("%w: writing %s: %w", errs.ErrIO, target, err)
	}
	if err := dst.Close(); err != nil {
		return errors.Errorf("%w: closing %s: %w", errs.ErrIO, target, err)
	}
	return nil
}

// entryPath resolves an entry name below destDir and rejects names that
// would land outside it.
func entryPath(destDir, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", errors.Errorf("%w: archive entry %q is absolute", errs.ErrIO, name)
	}
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%w: archive entry %q escapes %s", errs.ErrIO, name, destDir)
	}
	return target, nil
}

// 📦 Create writes srcDir's contents to a new zip archive
func (c *ZipCodec) Create(ctx context.Context, srcDir, archivePath string) error {
	logger := zerolog.Ctx(ctx)

	out, err := os.Create(archivePath)
	if err != nil {
		return errors.Errorf("%w: creating %s: %w", errs.ErrIO, archivePath, err)
	}

	zw := zip.NewWriter(out)
	count := 0

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}

		if d.IsDir() {
			header.Name = name + "/"
			_, err := zw.CreateHeader(header)
			return err
		}
		if !d.Type().IsRegular() {
			logger.Debug().Str("path", path).Msg("skipping non-regular file")
			return nil
		}

		header.Name = name
		header.Method = zip.Deflate
		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return err
		}
		count++
		return nil
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		return errors.Errorf("%w: packing %s into %s: %w", errs.ErrIO, srcDir, archivePath, walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return errors.Errorf("%w: finishing %s: %w", errs.ErrIO, archivePath, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("%w: closing %s: %w", errs.ErrIO, archivePath, err)
	}

	logger.Debug().Str("archive", archivePath).Int("files", count).Msg("created zip archive")
	return nil
}
