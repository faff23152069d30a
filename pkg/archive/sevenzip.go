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
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"gitlab.com/tozd/go/errors"
)

// DefaultSevenZip is the 7-Zip executable used when none is configured.
const DefaultSevenZip = "7zr"

// 🗜️ SevenZipCodec handles .7z archives by running the 7-Zip command line
type SevenZipCodec struct {
	executable string
}

// 🏭 NewSevenZipCodec creates a codec running the given executable
func NewSevenZipCodec(executable string) *SevenZipCodec {
	if executable == "" {
		executable = DefaultSevenZip
	}
	return &SevenZipCodec{executable: executable}
}

func (c *SevenZipCodec) Name() string { return "7z" }

func (c *SevenZipCodec) Extensions() []string { return []string{".7z"} }

// Executable returns the 7-Zip binary this codec runs.
func (c *SevenZipCodec) Executable() string { return c.executable }

// 📥 Extract runs `7zr x <archive> -o<dest> -y`
func (c *SevenZipCodec) Extract(ctx context.Context, archivePath, destDir string) error {
	if err := c.run(ctx, "", "x", archivePath, "-o"+destDir, "-y"); err != nil {
		return errors.Errorf("unpacking %s: %w", archivePath, err)
	}
	return nil
}

// 📦 Create runs `7zr a -y <archive> *` inside srcDir so that srcDir's
// contents become the archive root
func (c *SevenZipCodec) Create(ctx context.Context, srcDir, archivePath string) error {
	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return errors.Errorf("%w: resolving %s: %w", errs.ErrIO, archivePath, err)
	}
	if err := c.run(ctx, srcDir, "a", "-y", abs, "*"); err != nil {
		return errors.Errorf("creating archive %s: %w", archivePath, err)
	}
	return nil
}

// 🏃 run executes 7-Zip and blocks until it exits
func (c *SevenZipCodec) run(ctx context.Context, dir string, args ...string) error {
	logger := zerolog.Ctx(ctx)

	cmd := exec.CommandContext(ctx, c.executable, args...)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	commandLine := c.executable + " " + strings.Join(args, " ")
	logger.Debug().Str("command", commandLine).Str("dir", dir).Msg("running 7-zip")

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errors.Errorf("%w: %s failed with exit code %d: %s",
			errs.ErrSubprocess, commandLine, exitErr.ExitCode(), strings.TrimSpace(output.String()))
	}
	return errors.Errorf("%w: starting %s: %w", errs.ErrSubprocess, commandLine, err)
}
