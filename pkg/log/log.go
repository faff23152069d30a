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
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/deeprename/pkg/status"
)

// 📦 ArchiveOperation describes the archive a session works on
type ArchiveOperation struct {
	Archive string // Input archive path
	WorkDir string // Extraction directory
	Output  string // Repacked archive path
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog     zerolog.Logger
	console  io.Writer
	mu       sync.Mutex
	showDiff bool
	pair     string
	changes  []status.FileChange
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔇 Discard returns a logger that prints nothing
func Discard() *Logger {
	return &Logger{
		zlog:    zerolog.Nop(),
		console: io.Discard,
	}
}

// WithDiff enables printing a diff for every content change.
func (l *Logger) WithDiff(show bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showDiff = show
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileChange prints and records a single change
func (l *Logger) LogFileChange(ctx context.Context, c status.FileChange) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.changes = append(l.changes, c)

	fmt.Fprintln(l.console, status.FormatFileChange(c))

	l.zlog.Info().
		Str("name", c.FileName).
		Str("type", c.FileType).
		Str("folder", c.FolderName).
		Str("kind", c.Kind.String()).
		Str("pair", l.pair).
		Msg("file change")
}

// 📝 LogContentDiff prints a diff of a rewritten file when diffs are enabled
func (l *Logger) LogContentDiff(ctx context.Context, path string, before, after []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.showDiff {
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(before), string(after), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	fmt.Fprintf(l.console, "%s\n%s\n", color.New(color.Faint).Sprint("--- "+path), dmp.DiffPrettyText(diffs))

	l.zlog.Debug().
		Str("path", path).
		Int("diffs", len(diffs)).
		Msg("content diff")
}

// 📝 StartArchive prints the archive header
func (l *Logger) StartArchive(ctx context.Context, op ArchiveOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "[renaming %s]\n", color.New(color.FgCyan).Sprint(op.Archive))

	l.zlog.Info().
		Str("archive", op.Archive).
		Str("workdir", op.WorkDir).
		Str("output", op.Output).
		Msg("starting archive")
}

// 📝 StartPair starts logging changes for a keyword pair
func (l *Logger) StartPair(ctx context.Context, from, to string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pair = from + "=" + to
	l.changes = nil

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(from),
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgYellow).Sprint(to))

	l.zlog.Info().
		Str("from", from).
		Str("to", to).
		Msg("applying pair")
}

// 📝 EndPair ends the current keyword pair
func (l *Logger) EndPair(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pair == "" {
		return
	}

	l.zlog.Info().
		Str("pair", l.pair).
		Int("changes", len(l.changes)).
		Msg("pair complete")

	l.pair = ""
	l.changes = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("deeprename")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
