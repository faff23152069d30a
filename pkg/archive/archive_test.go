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
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/deeprename/pkg/errs"
	"gitlab.com/tozd/go/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestRegistryForPath(t *testing.T) {
	reg := DefaultRegistry("")

	tests := []struct {
		name      string
		path      string
		wantCodec string
		wantError string
	}{
		{name: "zip", path: "/tmp/a.zip", wantCodec: "zip"},
		{name: "zip_upper_case", path: "/tmp/a.ZIP", wantCodec: "zip"},
		{name: "seven_zip", path: "/tmp/a.7z", wantCodec: "7z"},
		{name: "tar_unsupported", path: "/tmp/a.tar", wantError: `unsupported archive format ".tar"`},
		{name: "no_extension", path: "/tmp/archive", wantError: "unsupported archive format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := reg.ForPath(tt.path)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.True(t, errors.Is(err, errs.ErrConfiguration), "should be a configuration error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCodec, codec.Name())
		})
	}

	assert.Equal(t, []string{".7z", ".zip"}, reg.Supported())
}

type fakeCodec struct{ name string }

func (f *fakeCodec) Name() string { return f.name }

func (f *fakeCodec) Extensions() []string { return []string{".zip"} }

func (f *fakeCodec) Extract(ctx context.Context, archivePath, destDir string) error { return nil }

func (f *fakeCodec) Create(ctx context.Context, srcDir, archivePath string) error { return nil }

func TestRegistryLaterRegistrationWins(t *testing.T) {
	reg := DefaultRegistry("")
	reg.Register(&fakeCodec{name: "custom"})

	codec, err := reg.ForPath("a.zip")
	require.NoError(t, err)
	assert.Equal(t, "custom", codec.Name())
}

func TestZipRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	files := map[string]string{
		"report_Foo.txt":       "Hello Foo",
		"a/Foo/b/data.json":    `{"name":"Foo"}`,
		"a/Foo/b/Foo/deep.txt": "deep",
	}
	writeTree(t, src, files)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0755))

	archivePath := filepath.Join(t.TempDir(), "out.zip")
	codec := NewZipCodec()
	require.NoError(t, codec.Create(ctx, src, archivePath))

	dest := t.TempDir()
	require.NoError(t, codec.Extract(ctx, archivePath, dest))

	assert.Equal(t, files, readTree(t, dest), "extracted files should match source")
	info, err := os.Stat(filepath.Join(dest, "empty"))
	require.NoError(t, err, "empty directories should survive")
	assert.True(t, info.IsDir())
}

func TestZipCreateUsesRelativeNames(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"dir/file.txt": "x"})

	archivePath := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, NewZipCodec().Create(context.Background(), src, archivePath))

	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"dir/", "dir/file.txt"}, names)
}

func TestZipExtractRejectsEscapingEntries(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dest := filepath.Join(t.TempDir(), "dest")
	require.NoError(t, os.MkdirAll(dest, 0755))

	err = NewZipCodec().Extract(context.Background(), archivePath, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
	assert.True(t, errors.Is(err, errs.ErrIO))

	_, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be written outside the destination")
}

func TestZipExtractMissingArchive(t *testing.T) {
	err := NewZipCodec().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.zip"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrIO))
	assert.Contains(t, err.Error(), "missing.zip")
}

// fakeSevenZip writes a shell script standing in for 7zr.
func fakeSevenZip(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake 7-zip script needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "7zr")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestSevenZipArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	t.Setenv("FAKE_7Z_ARGS", argsFile)
	exe := fakeSevenZip(t, `pwd >> "$FAKE_7Z_ARGS"; echo "$@" >> "$FAKE_7Z_ARGS"`)

	codec := NewSevenZipCodec(exe)
	ctx := context.Background()

	require.NoError(t, codec.Extract(ctx, "/in/archive.7z", "/work/archive"))

	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "archive_renamed.7z")
	require.NoError(t, codec.Create(ctx, src, out))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "x /in/archive.7z -o/work/archive -y", lines[1])

	wantDir, err := filepath.EvalSymlinks(src)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(lines[2])
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir, "create should run inside the source directory")
	assert.Equal(t, "a -y "+out+" *", lines[3])
}

func TestSevenZipFailure(t *testing.T) {
	exe := fakeSevenZip(t, `echo "ERROR: cannot open archive" >&2; exit 2`)

	err := NewSevenZipCodec(exe).Extract(context.Background(), "/in/archive.7z", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrSubprocess), "should be a subprocess failure")
	assert.Contains(t, err.Error(), "exit code 2")
	assert.Contains(t, err.Error(), "cannot open archive")
	assert.Contains(t, err.Error(), "/in/archive.7z")
}

func TestSevenZipMissingExecutable(t *testing.T) {
	codec := NewSevenZipCodec(filepath.Join(t.TempDir(), "does-not-exist"))
	err := codec.Extract(context.Background(), "a.7z", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrSubprocess))
}

func TestSevenZipDefaultExecutable(t *testing.T) {
	assert.Equal(t, DefaultSevenZip, NewSevenZipCodec("").Executable())
	assert.Equal(t, "/opt/7z", NewSevenZipCodec("/opt/7z").Executable())
}
