// Package testutils holds fixtures shared by the package tests: archive
// and directory trees described as maps, and a logger bound to the test.
//
// Tree maps are keyed by slash separated paths relative to a root. A key
// ending in "/" is a directory and its value is ignored.
package testutils

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Context returns a context whose zerolog logger writes through t
func Context(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

// WriteTree creates files and directories below root
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0755), "creating directory %s", name)
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", name)
	}
}

// ReadTree lists everything below root in WriteTree's format
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err, "reading tree %s", root)
	return out
}

// WriteZip creates a zip archive at path; directory keys become directory
// entries
func WriteZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err, "creating %s", path)
	defer f.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err, "adding %s", name)
		if strings.HasSuffix(name, "/") {
			continue
		}
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err, "writing %s", name)
	}
	require.NoError(t, zw.Close(), "closing zip writer")
	require.NoError(t, f.Close(), "closing %s", path)
}

// ReadZip returns the regular files of the zip archive at path
func ReadZip(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err, "opening %s", path)
	defer r.Close()

	out := map[string]string{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err, "opening entry %s", f.Name)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err, "reading entry %s", f.Name)
		out[f.Name] = string(data)
	}
	return out
}

// ReadCSV returns every record of the csv file at path
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "opening %s", path)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "parsing %s", path)
	return rows
}
