package report

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/deeprename/pkg/errs"
	"github.com/walteh/deeprename/pkg/status"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLWriter{})
}

// YAMLWriter writes the changes as a list under a files_touched key
type YAMLWriter struct{}

// YAMLReport is the document written by YAMLWriter
type YAMLReport struct {
	Columns      []string            `yaml:"columns"`
	FilesTouched []status.FileChange `yaml:"files_touched"`
}

func (w *YAMLWriter) Format() string    { return "yaml" }
func (w *YAMLWriter) Extension() string { return "yaml" }

func (w *YAMLWriter) Write(ctx context.Context, path string, changes []status.FileChange) error {
	doc := YAMLReport{
		Columns:      Header,
		FilesTouched: changes,
	}
	if doc.FilesTouched == nil {
		doc.FilesTouched = []status.FileChange{}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Errorf("%w: encoding yaml: %w", errs.ErrReportWrite, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Errorf("%w: writing %s: %w", errs.ErrReportWrite, path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("rows", len(changes)).Msg("wrote yaml report")
	return nil
}
