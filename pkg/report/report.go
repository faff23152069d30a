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

// Package report writes the list of touched files produced by a rename
// session.
//
// Every format carries the same three columns, in order: File Name, File
// Type and Folder Name, one row per change in the order the changes were
// recorded.
//
//	writer, err := report.GetWriter("xlsx")
//	if err != nil {
//		return err
//	}
//	path := report.PathFor("/data/project.zip", writer) // /data/project_report.xlsx
//	err = writer.Write(ctx, path, changes)
package report

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// DefaultFormat is used when no format is configured
const DefaultFormat = "xlsx"

// 📋 Header holds the column titles shared by every format
var Header = []string{"File Name", "File Type", "Folder Name"}

// 🔌 Writer serialises a change list to a file
type Writer interface {
	// 🏷️ Format is the name used to select the writer
	Format() string

	// 📎 Extension is the file extension of the written report, without the dot
	Extension() string

	// 📝 Write replaces anything at path with the rendered report
	Write(ctx context.Context, path string, changes []status.FileChange) error
}

var (
	// 🗺️ writers is a list of available writers
	writers []Writer
)

// 📝 Register registers a writer
func Register(w Writer) {
	writers = append(writers, w)
}

// 🎯 GetWriter returns the writer registered for format
func GetWriter(format string) (Writer, error) {
	if format == "" {
		format = DefaultFormat
	}
	format = strings.ToLower(format)
	for _, w := range writers {
		if w.Format() == format {
			return w, nil
		}
	}
	return nil, errors.Errorf("%w: unknown report format %q (supported: %s)", errs.ErrConfiguration, format, strings.Join(Formats(), ", "))
}

// Formats lists the registered format names, sorted
func Formats() []string {
	out := make([]string, 0, len(writers))
	for _, w := range writers {
		out = append(out, w.Format())
	}
	sort.Strings(out)
	return out
}

// 📍 PathFor places the report beside the archive as <base>_report.<ext>
func PathFor(archivePath string, w Writer) string {
	dir := filepath.Dir(archivePath)
	base := filepath.Base(archivePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_report."+w.Extension())
}

func row(c status.FileChange) []string {
	return []string{c.FileName, c.FileType, c.FolderName}
}
