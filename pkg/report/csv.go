package report

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&CSVWriter{})
}

// CSVWriter writes comma separated rows with a header line
type CSVWriter struct{}

func (w *CSVWriter) Format() string    { return "csv" }
func (w *CSVWriter) Extension() string { return "csv" }

func (w *CSVWriter) Write(ctx context.Context, path string, changes []status.FileChange) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Errorf("%w: creating %s: %w", errs.ErrReportWrite, path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(Header); err != nil {
		return errors.Errorf("%w: writing header: %w", errs.ErrReportWrite, err)
	}
	for _, c := range changes {
		if err := cw.Write(row(c)); err != nil {
			return errors.Errorf("%w: writing row: %w", errs.ErrReportWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Errorf("%w: flushing %s: %w", errs.ErrReportWrite, path, err)
	}
	if err := file.Close(); err != nil {
		return errors.Errorf("%w: closing %s: %w", errs.ErrReportWrite, path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("rows", len(changes)).Msg("wrote csv report")
	return nil
}
