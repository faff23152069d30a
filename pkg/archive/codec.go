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

// Package archive unpacks and repacks the archives deeprename works on.
//
// A Codec handles one archive format and is selected by file extension
// through a Registry. Format specific failures are translated into the
// errs kinds at this boundary.
package archive

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/walteh/deeprename/pkg/errs"
	"gitlab.com/tozd/go/errors"
)

// 📦 Codec extracts and creates archives of one format
type Codec interface {
	// Name is a short human readable format name
	Name() string
	// Extensions lists the lower case extensions handled, including the dot
	Extensions() []string
	// Extract unpacks archivePath into destDir, which must already exist
	Extract(ctx context.Context, archivePath, destDir string) error
	// Create packs the contents of srcDir into archivePath; srcDir itself is
	// not part of the archive
	Create(ctx context.Context, srcDir, archivePath string) error
}

// 🗺️ Registry selects codecs by extension
type Registry struct {
	codecs []Codec
}

// 🏭 NewRegistry creates a registry holding the given codecs
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// 🏭 DefaultRegistry knows .zip and .7z; sevenZip is the 7-Zip executable
func DefaultRegistry(sevenZip string) *Registry {
	return NewRegistry(NewZipCodec(), NewSevenZipCodec(sevenZip))
}

// 📝 Register adds a codec; later registrations win for shared extensions
func (r *Registry) Register(c Codec) {
	r.codecs = append([]Codec{c}, r.codecs...)
}

// 🎯 ForPath returns the codec for the archive's extension, compared
// case-insensitively
func (r *Registry) ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range r.codecs {
		for _, e := range c.Extensions() {
			if e == ext {
				return c, nil
			}
		}
	}
	return nil, errors.Errorf("%w: unsupported archive format %q for %s (supported: %s)",
		errs.ErrConfiguration, ext, path, strings.Join(r.Supported(), ", "))
}

// Supported returns every registered extension, sorted.
func (r *Registry) Supported() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range r.codecs {
		for _, e := range c.Extensions() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}
