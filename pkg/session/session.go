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

// Package session drives one rename run over one archive: unpack into a
// working directory, apply keyword pairs, then repack and write the report.
//
//	s, err := session.New(ctx, session.Options{ArchivePath: "project.zip", TempRoot: tmp})
//	if err != nil {
//		return err
//	}
//	if err := s.Apply(ctx, "Foo", "Bar"); err != nil {
//		return err
//	}
//	res, err := s.Finish(ctx) // project_renamed.zip, project_report.xlsx
//
// A failure leaves the working directory as it is; the next session on the
// same archive starts by deleting it.
package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/archive"
	"github.com/walteh/deeprename/pkg/engine"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/log"
	"github.com/walteh/deeprename/pkg/report"
	"github.com/walteh/deeprename/pkg/status"
	"github.com/walteh/deeprename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a session
type Options struct {
	ArchivePath  string            // Input .zip or .7z archive
	TempRoot     string            // Parent of the working directory
	SevenZip     string            // 7-Zip executable, used when Registry is nil
	Registry     *archive.Registry // Defaults to archive.DefaultRegistry(SevenZip)
	ReportFormat string            // Defaults to report.DefaultFormat
	Exclude      []string          // Doublestar patterns skipped by the content pass
	Logger       *log.Logger       // Defaults to log.Discard()
}

// 📦 Result describes a finished session
type Result struct {
	OutputPath string
	ReportPath string
	Changes    []status.FileChange
}

// 🎯 Session owns a working directory extracted from one archive
type Session struct {
	archivePath string
	workDir     string
	outputPath  string
	reportPath  string

	codec   archive.Codec
	writer  report.Writer
	changes *status.ChangeLog
	engine  *engine.Engine
	logger  *log.Logger

	finished bool
}

// 🏭 New validates the options, clears leftovers of earlier runs and
// extracts the archive. Configuration problems are reported before
// anything on disk is touched.
func New(ctx context.Context, opts Options) (*Session, error) {
	logger := zerolog.Ctx(ctx)

	if opts.ArchivePath == "" {
		return nil, errors.Errorf("%w: archive path is required", errs.ErrConfiguration)
	}
	archivePath, err := filepath.Abs(opts.ArchivePath)
	if err != nil {
		return nil, errors.Errorf("%w: resolving %s: %w", errs.ErrConfiguration, opts.ArchivePath, err)
	}
	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, errors.Errorf("%w: archive %s: %w", errs.ErrConfiguration, archivePath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Errorf("%w: archive %s is not a regular file", errs.ErrConfiguration, archivePath)
	}

	registry := opts.Registry
	if registry == nil {
		registry = archive.DefaultRegistry(opts.SevenZip)
	}
	codec, err := registry.ForPath(archivePath)
	if err != nil {
		return nil, err
	}

	writer, err := report.GetWriter(opts.ReportFormat)
	if err != nil {
		return nil, err
	}

	if opts.TempRoot == "" {
		return nil, errors.Errorf("%w: temp root is required", errs.ErrConfiguration)
	}

	ext := filepath.Ext(archivePath)
	base := strings.TrimSuffix(filepath.Base(archivePath), ext)
	dir := filepath.Dir(archivePath)

	console := opts.Logger
	if console == nil {
		console = log.Discard()
	}

	s := &Session{
		archivePath: archivePath,
		workDir:     filepath.Join(opts.TempRoot, base),
		outputPath:  filepath.Join(dir, base+"_renamed"+ext),
		reportPath:  report.PathFor(archivePath, writer),
		codec:       codec,
		writer:      writer,
		changes:     status.NewChangeLog(),
		logger:      console,
	}

	s.engine, err = engine.New(s.workDir, s.changes, engine.Options{
		Logger:  console,
		Exclude: opts.Exclude,
	})
	if err != nil {
		return nil, errors.Errorf("creating engine: %w", err)
	}
	s.workDir = s.engine.Root()

	// Clear leftovers
	if err := removeFile(s.outputPath); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(s.workDir); err != nil {
		return nil, errors.Errorf("%w: removing old working directory %s: %w", errs.ErrIO, s.workDir, err)
	}
	if err := os.MkdirAll(s.workDir, 0755); err != nil {
		return nil, errors.Errorf("%w: creating working directory %s: %w", errs.ErrIO, s.workDir, err)
	}

	console.StartArchive(ctx, log.ArchiveOperation{
		Archive: s.archivePath,
		WorkDir: s.workDir,
		Output:  s.outputPath,
	})

	if err := codec.Extract(ctx, s.archivePath, s.workDir); err != nil {
		return nil, errors.Errorf("extracting %s: %w", s.archivePath, err)
	}

	logger.Debug().
		Str("archive", s.archivePath).
		Str("codec", codec.Name()).
		Str("workdir", s.workDir).
		Msg("archive extracted")

	return s, nil
}

// 🔄 Apply rewrites contents, then file names, then directory names
func (s *Session) Apply(ctx context.Context, from, to string) error {
	if s.finished {
		return errors.Errorf("%w: session for %s is already finished", errs.ErrConfiguration, s.archivePath)
	}
	return s.engine.Apply(ctx, text.Pair{From: from, To: to})
}

// 🔠 ApplyVariants applies p, or each of its casing variants when vary is set
func (s *Session) ApplyVariants(ctx context.Context, p text.Pair, vary bool) error {
	if err := p.Validate(); err != nil {
		return err
	}

	pairs := []text.Pair{p}
	if vary {
		pairs = text.Variants(p)
	}

	for _, v := range pairs {
		if err := s.Apply(ctx, v.From, v.To); err != nil {
			return errors.Errorf("applying %s: %w", v, err)
		}
	}
	return nil
}

// 📦 Finish repacks the working directory, removes it and writes the report.
// The session cannot be used afterwards.
func (s *Session) Finish(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if s.finished {
		return nil, errors.Errorf("%w: session for %s is already finished", errs.ErrConfiguration, s.archivePath)
	}
	s.finished = true

	if err := s.codec.Create(ctx, s.workDir, s.outputPath); err != nil {
		return nil, errors.Errorf("creating %s: %w", s.outputPath, err)
	}
	if err := os.RemoveAll(s.workDir); err != nil {
		return nil, errors.Errorf("%w: removing working directory %s: %w", errs.ErrIO, s.workDir, err)
	}

	if err := removeFile(s.reportPath); err != nil {
		return nil, err
	}
	changes := s.changes.Entries()
	if err := s.writer.Write(ctx, s.reportPath, changes); err != nil {
		return nil, errors.Errorf("writing report: %w", err)
	}

	logger.Debug().
		Str("output", s.outputPath).
		Str("report", s.reportPath).
		Int("changes", len(changes)).
		Msg("session finished")

	s.logger.Successf("%s → %s", filepath.Base(s.archivePath), s.outputPath)
	s.logger.Info(status.FormatSummary(s.changes))

	return &Result{
		OutputPath: s.outputPath,
		ReportPath: s.reportPath,
		Changes:    changes,
	}, nil
}

// Changes returns a copy of the changes recorded so far
func (s *Session) Changes() []status.FileChange {
	return s.changes.Entries()
}

func (s *Session) WorkDir() string    { return s.workDir }
func (s *Session) OutputPath() string { return s.outputPath }
func (s *Session) ReportPath() string { return s.reportPath }

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("%w: removing %s: %w", errs.ErrIO, path, err)
	}
	return nil
}
