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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/deeprename/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_change",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileChange(context.Background(), status.FileChange{
					FileName:   "report_Foo.txt",
					FileType:   ".txt",
					FolderName: "/tmp/work",
					Kind:       status.ChangeFile,
				})
			},
			wantLogs: []string{
				"→ report_Foo.txt                      file       /tmp/work",
			},
		},
		{
			name: "log_archive_and_pair",
			op: func(t *testing.T, logger *Logger) {
				logger.StartArchive(context.Background(), ArchiveOperation{
					Archive: "/tmp/in.zip",
					WorkDir: "/tmp/work/in",
					Output:  "/tmp/in_renamed.zip",
				})
				logger.StartPair(context.Background(), "Bob", "Jane")
				logger.EndPair(context.Background())
			},
			wantLogs: []string{
				"[renaming /tmp/in.zip]",
				"◆ Bob → Jane",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("renaming archive contents")
			},
			wantLogs: []string{
				"deeprename • renaming archive contents",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContentDiff(t *testing.T) {
	t.Run("disabled_by_default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := New(buf, zerolog.Disabled)

		logger.LogContentDiff(context.Background(), "a.txt", []byte("Hello Foo"), []byte("Hello Bar"))
		assert.Empty(t, buf.String(), "diff should not be printed unless enabled")
	})

	t.Run("enabled", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := New(buf, zerolog.Disabled).WithDiff(true)

		logger.LogContentDiff(context.Background(), "a.txt", []byte("Hello Foo"), []byte("Hello Bar"))
		out := buf.String()
		assert.Contains(t, out, "--- a.txt")
		assert.Contains(t, out, "Hello ")
		assert.Contains(t, out, "Foo")
		assert.Contains(t, out, "Bar")
	})
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() {
		logger.Info("nothing")
		logger.LogFileChange(context.Background(), status.NewFileChange("/w/a.txt", status.ChangeContent))
	})
}
