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

// Package engine rewrites a working tree in place.
//
// One Apply runs three passes in a fixed order: file contents, file names,
// directory names. Every mutation is appended to a status.ChangeLog.
package engine

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/log"
	"github.com/walteh/deeprename/pkg/status"
	"github.com/walteh/deeprename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures an Engine
type Options struct {
	// Logger receives every change as it happens; defaults to log.Discard()
	Logger *log.Logger
	// Exclude holds doublestar patterns, matched against slash separated
	// paths relative to the root, for files the content pass must skip
	Exclude []string
}

// 🎮 Engine rewrites the tree below root
type Engine struct {
	root    string
	changes *status.ChangeLog
	logger  *log.Logger
	exclude []string
}

// 🏭 New creates an engine for root that records into changes
func New(root string, changes *status.ChangeLog, opts Options) (*Engine, error) {
	if root == "" {
		return nil, errors.Errorf("%w: engine root is required", errs.ErrConfiguration)
	}
	if changes == nil {
		return nil, errors.Errorf("%w: change log is required", errs.ErrConfiguration)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("%w: resolving %s: %w", errs.ErrIO, root, err)
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("%w: invalid exclude pattern %q", errs.ErrConfiguration, pattern)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Engine{
		root:    abs,
		changes: changes,
		logger:  logger,
		exclude: opts.Exclude,
	}, nil
}

// Root returns the absolute directory the engine works on.
func (e *Engine) Root() string {
	return e.root
}

// 🏃 Apply runs the content, file name and folder name passes, in that order
func (e *Engine) Apply(ctx context.Context, p text.Pair) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e.logger.StartPair(ctx, p.From, p.To)
	defer e.logger.EndPair(ctx)

	if err := e.UpdateContents(ctx, p); err != nil {
		return errors.Errorf("updating contents: %w", err)
	}
	if err := e.UpdateFileNames(ctx, p); err != nil {
		return errors.Errorf("updating file names: %w", err)
	}
	if err := e.UpdateFolderNames(ctx, p); err != nil {
		return errors.Errorf("updating folder names: %w", err)
	}
	return nil
}

// 📝 record appends a change described by the path it had before the change
func (e *Engine) record(ctx context.Context, path string, kind status.ChangeKind) {
	c := status.NewFileChange(path, kind)
	e.changes.Append(c)
	e.logger.LogFileChange(ctx, c)
}
