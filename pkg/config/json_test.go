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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/deeprename/pkg/text"
)

// 🧪 TestJSONParsing tests JSON config parsing
func TestJSONParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:   "valid_minimal_json",
			config: `{}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "xlsx", cfg.ReportFormat) // default value
				assert.Equal(t, "7zr", cfg.SevenZip)      // default value
				assert.True(t, cfg.Varies())              // default value
				assert.Empty(t, cfg.Pairs)
			},
		},
		{
			name: "valid_full_json",
			config: `{
				"temp_root": "/tmp/deeprename-json",
				"seven_zip": "7z",
				"report_format": "csv",
				"vary_casing": true,
				"exclude": ["*.tmp", "*.log"],
				"pairs": [
					{"from": "foo", "to": "bar"},
					{"from": "baz", "to": "qux"}
				]
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/deeprename-json", cfg.TempRoot)
				assert.Equal(t, "7z", cfg.SevenZip)
				assert.Equal(t, "csv", cfg.ReportFormat)
				assert.True(t, cfg.Varies())
				assert.Equal(t, []string{"*.tmp", "*.log"}, cfg.Exclude)
				assert.Equal(t, []text.Pair{{From: "foo", To: "bar"}, {From: "baz", To: "qux"}}, cfg.Pairs)
			},
		},
		{
			name: "invalid_json_syntax",
			config: `{
				"report_format": "csv",
			}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_field",
			config:      `{"destination": "/tmp"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "empty_from",
			config:      `{"pairs": [{"from": "", "to": "x"}]}`,
			wantErr:     true,
			errContains: "search keyword must not be empty",
		},
	}

	parser := &JSONParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// 🧪 TestJSONParserSelection tests JSON parser file detection
func TestJSONParserSelection(t *testing.T) {
	parser := &JSONParser{}

	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{name: "json_extension", filename: "config.json", want: true},
		{name: "uppercase_extension", filename: "config.JSON", want: true},
		{name: "yaml_extension", filename: "config.yaml", want: false},
		{name: "no_extension", filename: "config", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.CanParse(tt.filename)
			assert.Equal(t, tt.want, got)
		})
	}
}
