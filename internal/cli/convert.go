package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figtools/figgen/pkg/errors"
	"github.com/figtools/figgen/pkg/figure"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	format      string // target format for the whole batch
	output      string // output directory
	force       bool   // regenerate existing artifacts
	allowImages bool   // permit raw-image inputs
	configPath  string // config file override

	// per-backend executable overrides; empty falls back to the config
	// file, then to built-in defaults
	drawioPath   string
	dotPath      string
	inkscapePath string
	magickPath   string
}

// newConvertCmd creates the convert command, the main entry point of the
// tool: it classifies every source by extension, fans conversions out
// across worker pools, and reports one line per artifact.
func newConvertCmd() *cobra.Command {
	opts := convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert [flags] <source>...",
		Short: "Convert figure sources to a rendered format",
		Long: `Convert figure sources to a rendered format.

Sources are routed by extension: .drawio documents export through the
drawio desktop binary (one artifact per page), .dot files through
graphviz, .mmd/.puml markup through the kroki.io web service, and raw
images through inkscape or ImageMagick when --convert is set.

Artifacts that already exist are skipped; pass --force to regenerate.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "pdf", "export format")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "figures", "output directory")
	cmd.Flags().BoolVarP(&opts.force, "force", "F", false, "force generate or convert figures")
	cmd.Flags().BoolVarP(&opts.allowImages, "convert", "c", false, "allow raw image conversion via inkscape/imagemagick")
	cmd.Flags().StringVarP(&opts.drawioPath, "drawio", "d", "", "drawio executable path")
	cmd.Flags().StringVarP(&opts.dotPath, "dot", "g", "", "graphviz dot executable path")
	cmd.Flags().StringVarP(&opts.inkscapePath, "inkscape", "i", "", "inkscape executable path")
	cmd.Flags().StringVarP(&opts.magickPath, "magick", "m", "", "imagemagick convert executable path")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/figgen/config.toml)")

	return cmd
}

// runConvert drives one conversion batch and prints the per-artifact
// report. Fatal configuration/usage errors return immediately; per-file
// failures are printed and folded into a single batch error at the end so
// the process exit code reflects them.
func runConvert(ctx context.Context, sources []string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	dispatcher := figure.NewDispatcher(backendConfig(cfg, opts), logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %d source(s) to %s...", len(sources), opts.format))
	spinner.Start()

	report, err := dispatcher.Run(ctx, figure.Request{
		Sources:     sources,
		OutDir:      opts.output,
		Format:      opts.format,
		Force:       opts.force,
		AllowImages: opts.allowImages,
	})
	if err != nil {
		spinner.StopWithError("Conversion aborted")
		return err
	}

	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	if report.Failed() == 0 {
		spinner.StopWithSuccess(fmt.Sprintf("Converted %d source(s)", len(sources)))
	} else {
		spinner.Stop()
	}

	printReport(report)
	prog.done(fmt.Sprintf("Processed %d unit(s)", len(report.Results)))

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(report.Results))
	}
	return nil
}

// printReport prints one line per unit: produced artifacts, cache hits,
// and failures attributed to their source path (and page, where the error
// carries one).
func printReport(report *figure.Report) {
	for _, res := range report.Results {
		if !res.OK() {
			printError("%s: %s", res.Job.Source, errors.UserMessage(res.Err))
			continue
		}
		printArtifact(res.Artifact, res.Cached)
	}
	for _, path := range report.Skipped {
		printWarning("skipped %s (unrecognized extension)", path)
	}
	printSummary(report.Converted(), report.Cached(), report.Failed(), len(report.Skipped))
}
