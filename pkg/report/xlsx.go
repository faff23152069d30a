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

package report

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/status"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// SheetName is the single sheet of the xlsx report
const SheetName = "Files Touched"

func init() {
	Register(&XLSXWriter{})
}

// 📊 XLSXWriter writes a spreadsheet with one sheet and a bold header row
type XLSXWriter struct{}

func (w *XLSXWriter) Format() string    { return "xlsx" }
func (w *XLSXWriter) Extension() string { return "xlsx" }

func (w *XLSXWriter) Write(ctx context.Context, path string, changes []status.FileChange) error {
	logger := zerolog.Ctx(ctx)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Errorf("%w: naming sheet: %w", errs.ErrReportWrite, err)
	}

	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, c := range changes {
		if err := setRow(f, i+2, row(c)); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Errorf("%w: creating header style: %w", errs.ErrReportWrite, err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		return errors.Errorf("%w: styling header: %w", errs.ErrReportWrite, err)
	}
	if err := f.SetColWidth(SheetName, "A", "B", 30); err != nil {
		return errors.Errorf("%w: sizing columns: %w", errs.ErrReportWrite, err)
	}
	if err := f.SetColWidth(SheetName, "C", "C", 80); err != nil {
		return errors.Errorf("%w: sizing columns: %w", errs.ErrReportWrite, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Errorf("%w: saving %s: %w", errs.ErrReportWrite, path, err)
	}

	logger.Debug().Str("path", path).Int("rows", len(changes)).Msg("wrote xlsx report")
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return errors.Errorf("%w: addressing row %d: %w", errs.ErrReportWrite, n, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return errors.Errorf("%w: writing row %d: %w", errs.ErrReportWrite, n, err)
	}
	return nil
}
