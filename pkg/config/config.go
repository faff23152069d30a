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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/archive"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/report"
	"github.com/walteh/deeprename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration of a rename run
type Config struct {
	TempRoot     string      `json:"temp_root,omitempty" yaml:"temp_root,omitempty" hcl:"temp_root,optional"`             // Parent of the working directory
	SevenZip     string      `json:"seven_zip,omitempty" yaml:"seven_zip,omitempty" hcl:"seven_zip,optional"`             // 7-Zip executable for .7z archives
	ReportFormat string      `json:"report_format,omitempty" yaml:"report_format,omitempty" hcl:"report_format,optional"` // xlsx, csv or yaml
	VaryCasing   *bool       `json:"vary_casing,omitempty" yaml:"vary_casing,omitempty" hcl:"vary_casing,optional"`       // Expand each pair into casing variants, on unless set to false
	Exclude      []string    `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`                   // Doublestar patterns skipped by the content pass
	Pairs        []text.Pair `json:"pairs,omitempty" yaml:"pairs,omitempty" hcl:"pair,block"`                             // Applied in order
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("%w: reading config file: %w", errs.ErrConfiguration, err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: no parser found for file: %s", errs.ErrConfiguration, path)
	}

	// Parse and validate
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

// 🆕 Default returns a validated config with every default filled in
func Default() *Config {
	cfg := &Config{}
	// defaults alone always validate
	_ = cfg.Validate()
	return cfg
}

// 🔍 Validate fills defaults and checks that the configuration is usable
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.TempRoot == "" {
		cfg.TempRoot = filepath.Join(os.TempDir(), "deeprename")
	}
	if cfg.SevenZip == "" {
		cfg.SevenZip = archive.DefaultSevenZip
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = report.DefaultFormat
	}
	if cfg.VaryCasing == nil {
		vary := true
		cfg.VaryCasing = &vary
	}

	// Clean up values
	cfg.TempRoot = filepath.Clean(cfg.TempRoot)
	cfg.ReportFormat = strings.ToLower(strings.TrimSpace(cfg.ReportFormat))

	if _, err := report.GetWriter(cfg.ReportFormat); err != nil {
		return err
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: invalid exclude pattern %q", errs.ErrConfiguration, pattern)
		}
	}

	for i, p := range cfg.Pairs {
		if err := p.Validate(); err != nil {
			return errors.Errorf("pair %d: %w", i, err)
		}
	}

	return nil
}

// Varies reports whether pairs expand into casing variants.
func (cfg *Config) Varies() bool {
	return cfg.VaryCasing == nil || *cfg.VaryCasing
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	pairs := make([]string, len(cfg.Pairs))
	for i, p := range cfg.Pairs {
		pairs[i] = p.String()
	}
	return fmt.Sprintf("pairs=[%s] vary_casing=%t report=%s temp_root=%s seven_zip=%s",
		strings.Join(pairs, " "), cfg.Varies(), cfg.ReportFormat, cfg.TempRoot, cfg.SevenZip)
}
