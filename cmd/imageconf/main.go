// Command imageconf combines layered INI files and prints the result or a
// single resolved value.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Azhovan/imageconf"
	"github.com/Azhovan/imageconf/sourceenv"
	"github.com/Azhovan/imageconf/sourcefile"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	merge          []string
	overlays       []string
	envPrefix      string
	defaultSection string
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "imageconf",
		Short:        "Combine layered image build configuration files.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringArrayVarP(&opts.merge, "merge", "m", nil, "merge rule as SECTION:OPTION (repeatable, SECTION may end in *)")
	cmd.PersistentFlags().StringArrayVar(&opts.overlays, "overlay", nil, "YAML, JSON or TOML file applied after the INI files (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.envPrefix, "env-prefix", "", "apply PREFIX_SECTION__OPTION environment variables last")
	cmd.PersistentFlags().StringVar(&opts.defaultSection, "default-section", imageconf.DefaultSectionName, "section ${name} references fall back to")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log reads and merges to stderr")

	cmd.AddCommand(newCombineCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	return cmd
}

func newCombineCmd(opts *rootOptions) *cobra.Command {
	var (
		format   string
		resolved bool
		sources  bool
	)
	cmd := &cobra.Command{
		Use:   "combine FILE...",
		Short: "Read files in order, merge, and print the combined configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd.Context(), opts, cmd.ErrOrStderr(), args)
			if err != nil {
				return err
			}
			dumpOpts := []imageconf.DumpOption{imageconf.WithFormat(format)}
			if resolved {
				dumpOpts = append(dumpOpts, imageconf.Resolved())
			}
			if sources {
				dumpOpts = append(dumpOpts, imageconf.WithSources())
			}
			return imageconf.Dump(cmd.OutOrStdout(), cfg, dumpOpts...)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", imageconf.FormatINI, "output format: ini, json, toml, yaml")
	cmd.Flags().BoolVar(&resolved, "resolved", false, "interpolate values before printing")
	cmd.Flags().BoolVar(&sources, "sources", false, "annotate options with the file that set them (ini only)")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get SECTION OPTION FILE...",
		Short: "Print one resolved value from the combined configuration",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd.Context(), opts, cmd.ErrOrStderr(), args[2:])
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func load(ctx context.Context, opts *rootOptions, stderr io.Writer, paths []string) (*imageconf.Config, error) {
	rules, err := parseRules(opts.merge)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := imageconf.New(
		imageconf.WithDefaultSection(opts.defaultSection),
		imageconf.WithLogger(logger),
	)
	if _, err := cfg.Read(paths...); err != nil {
		return nil, err
	}

	var srcs []imageconf.Source
	for _, path := range opts.overlays {
		srcs = append(srcs, sourcefile.New(path, sourcefile.Options{Required: true}))
	}
	if opts.envPrefix != "" {
		srcs = append(srcs, sourceenv.New(sourceenv.Options{Prefix: opts.envPrefix}))
	}
	if err := cfg.Load(ctx, srcs...); err != nil {
		return nil, err
	}
	if err := imageconf.NewMerger(cfg, rules...).Merge(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseRules(specs []string) ([]imageconf.MergeRule, error) {
	rules := make([]imageconf.MergeRule, 0, len(specs))
	for _, spec := range specs {
		i := strings.LastIndex(spec, ":")
		if i <= 0 || i == len(spec)-1 {
			return nil, fmt.Errorf("invalid merge rule %q: want SECTION:OPTION", spec)
		}
		rules = append(rules, imageconf.MergeRule{Section: spec[:i], Option: spec[i+1:]})
	}
	return rules, nil
}
