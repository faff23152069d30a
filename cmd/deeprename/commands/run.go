package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/deeprename/cmd/deeprename/opts"
	"github.com/walteh/deeprename/pkg/config"
	"github.com/walteh/deeprename/pkg/log"
	"github.com/walteh/deeprename/pkg/session"
	"github.com/walteh/deeprename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

type runFlags struct {
	pairs        []string
	varyCasing   bool
	tempRoot     string
	sevenZip     string
	reportFormat string
	exclude      []string
	showDiff     bool
}

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run ARCHIVE",
		Short: "Rename a keyword throughout an archive",
		Long: `Run extracts a .zip or .7z archive and replaces keywords everywhere in it.
It will:
1. Extract the archive into a working directory
2. Replace each keyword in file contents, then file names, then folder names
3. Pack the result into <name>_renamed.<ext> beside the input
4. Write <name>_report.<format> listing every touched file

Keyword pairs come from --pair, from the config file, or are asked for
interactively when neither provides any.`,
		Example: `  deeprename run project.zip --pair Foo=Bar
  deeprename run project.7z --pair "acme|initech" --vary-casing=false --report-format csv
  deeprename run project.zip --config deeprename.yaml --show-diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("resolved configuration")

			return run(ctx, opts, cfg, args[0], f.showDiff)
		},
	}

	cmd.Flags().StringArrayVarP(&f.pairs, "pair", "p", nil, "keyword pair FROM=TO (or FROM|TO), repeatable")
	cmd.Flags().BoolVar(&f.varyCasing, "vary-casing", true, "also apply the capitalised, lower and upper case forms of each pair")
	cmd.Flags().StringVar(&f.tempRoot, "temp-root", "", "directory the archive is extracted under")
	cmd.Flags().StringVar(&f.sevenZip, "seven-zip", "", "7-Zip executable used for .7z archives")
	cmd.Flags().StringVar(&f.reportFormat, "report-format", "", "report format: xlsx, csv or yaml")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "glob of files whose contents are left alone, repeatable")
	cmd.Flags().BoolVar(&f.showDiff, "show-diff", false, "print a diff for every content change")

	return cmd
}

// apply puts explicitly set flags over the loaded config and revalidates it
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("pair") {
		cfg.Pairs = cfg.Pairs[:0]
		for _, raw := range f.pairs {
			p, err := text.ParsePair(raw)
			if err != nil {
				return err
			}
			cfg.Pairs = append(cfg.Pairs, p)
		}
	}
	if flags.Changed("vary-casing") {
		cfg.VaryCasing = &f.varyCasing
	}
	if flags.Changed("temp-root") {
		cfg.TempRoot = f.tempRoot
	}
	if flags.Changed("seven-zip") {
		cfg.SevenZip = f.sevenZip
	}
	if flags.Changed("report-format") {
		cfg.ReportFormat = f.reportFormat
	}
	if flags.Changed("exclude") {
		cfg.Exclude = f.exclude
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating flags: %w", err)
	}
	return nil
}

func run(ctx context.Context, o *opts.RootOpts, cfg *config.Config, archivePath string, showDiff bool) error {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	console := log.New(o.Out, level).WithDiff(showDiff)
	ctx = log.NewContext(ctx, console)

	console.Header("extracting " + archivePath)

	s, err := session.New(ctx, session.Options{
		ArchivePath:  archivePath,
		TempRoot:     cfg.TempRoot,
		SevenZip:     cfg.SevenZip,
		ReportFormat: cfg.ReportFormat,
		Exclude:      cfg.Exclude,
		Logger:       console,
	})
	if err != nil {
		return errors.Errorf("starting session: %w", err)
	}

	if len(cfg.Pairs) > 0 {
		for _, p := range cfg.Pairs {
			if err := s.ApplyVariants(ctx, p, cfg.Varies()); err != nil {
				return errors.Errorf("applying %s: %w", p, err)
			}
		}
	} else if err := prompt(ctx, o, s, cfg.Varies()); err != nil {
		return err
	}

	res, err := s.Finish(ctx)
	if err != nil {
		return errors.Errorf("finishing session: %w", err)
	}

	o.UserLogger.LogValidation(true, fmt.Sprintf("report written to %s", res.ReportPath), nil)
	return nil
}

// prompt asks for keyword pairs until the user declines another one
func prompt(ctx context.Context, o *opts.RootOpts, s *session.Session, vary bool) error {
	console := log.FromContext(ctx)

	for {
		from, err := o.Prompter.Ask(ctx, "Search word")
		if err != nil {
			return errors.Errorf("reading search word: %w", err)
		}
		if strings.TrimSpace(from) == "" {
			console.Warning("the search word must not be empty")
			continue
		}

		to, err := o.Prompter.Ask(ctx, "Replace with")
		if err != nil {
			return errors.Errorf("reading replacement: %w", err)
		}

		p := text.Pair{From: from, To: to}
		o.UserLogger.LogStateChange(fmt.Sprintf("processing %s", p))
		if err := s.ApplyVariants(ctx, p, vary); err != nil {
			return errors.Errorf("applying %s: %w", p, err)
		}

		again, err := o.Prompter.Confirm(ctx, "Process another phrase?", false)
		if err != nil {
			return errors.Errorf("reading confirmation: %w", err)
		}
		if !again {
			return nil
		}
	}
}
