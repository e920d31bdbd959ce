package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/pipeline"
	"github.com/matzehuels/prettymarkup/pkg/render"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

// renderFlags holds the command-line flags shared by render and view.
type renderFlags struct {
	output         string // output file (single format) or base path (multiple)
	formats        string // comma-separated output formats
	base           string // explicit base IRI
	targetType     string // highlight entities of this rdf:type
	targetProperty string // highlight rows with this predicate
	seed           uint64 // color seed
	palette        bool   // shuffled evenly spaced hues instead of random ones
	idRows         bool   // emit @id rows
	fullIRIs       bool   // keep predicate namespaces
	standalone     bool   // wrap HTML in a complete page
	refresh        bool   // bypass the render cache
	noCache        bool   // disable all caching
}

// target converts the target flags. At most one may be set.
func (f *renderFlags) target() (tree.Target, error) {
	switch {
	case f.targetType != "" && f.targetProperty != "":
		return tree.Target{}, errors.New(errors.ErrCodeInvalidTarget, "--target-type and --target-property are mutually exclusive")
	case f.targetType != "":
		return tree.Target{Kind: tree.TargetEntity, URI: f.targetType}, nil
	case f.targetProperty != "":
		return tree.Target{Kind: tree.TargetProperty, URI: f.targetProperty}, nil
	}
	return tree.Target{}, nil
}

// addVisitFlags registers the flags that change the rows.
func (f *renderFlags) addVisitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.base, "base", "", "base IRI for relative identifiers (default: derived from the document)")
	cmd.Flags().StringVar(&f.targetType, "target-type", "", "highlight entities of this type IRI")
	cmd.Flags().StringVar(&f.targetProperty, "target-property", "", "highlight rows with this predicate IRI")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "color seed (default from config, 42)")
	cmd.Flags().BoolVar(&f.palette, "palette", false, "use evenly spaced hues instead of random ones")
	cmd.Flags().BoolVar(&f.idRows, "id-rows", false, "show an @id row for every named entity")
	cmd.Flags().BoolVar(&f.fullIRIs, "full-iris", false, "keep predicate namespaces")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [file|url|-]",
		Short: "Render a JSON-LD document as a triple tree",
		Long: `Render a JSON-LD document as a triple tree.

The input is a JSON-LD file, an HTML page with exactly one
<script type="application/ld+json"> block, a URL to either, or "-" for stdin.`,
		Example: `  prettymarkup render event.jsonld
  prettymarkup render https://example.org/recipe.html -f html -o recipe.html
  curl -s https://example.org/ | prettymarkup render - --target-type http://schema.org/Offer`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := c.applyFlags(cmd, &opts, &f); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return c.runRender(cmd.Context(), cmd, arg, opts, &f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): html (default), text, json, term, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&f.standalone, "standalone", false, "wrap HTML output in a complete page (always on when writing a file)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached renders")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	f.addVisitFlags(cmd)

	return cmd
}

// runRender reads the input, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, arg string, opts pipeline.Options, f *renderFlags) error {
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, err := readSource(ctx, arg, cmd.InOrStdin(), newFetcher(runner))
	if err != nil {
		return err
	}
	opts.Input = src.Text
	if opts.BaseURL == "" && src.URL != "" && !cmd.Flags().Changed("base") {
		opts.BaseURL = src.URL
	}
	writingFiles := f.output != "" || len(opts.Formats) > 1
	opts.Standalone = f.standalone || writingFiles
	opts.Title = src.Name
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	c.Logger.Debug("render stats",
		"triples", result.Stats.TripleCount,
		"shapes", result.Stats.ShapeCount,
		"rows", result.Stats.RowCount,
		"cached", result.CacheHit)

	if !writingFiles {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(f.output, src)
	for _, format := range opts.Formats {
		path := base + extension(format)
		if len(opts.Formats) == 1 && f.output != "" {
			path = f.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %s", src.Name))
	printStats(result.Stats.RowCount, result.Stats.ShapeCount, result.CacheHit)
	return nil
}

// basePath derives the base output path from the output flag and the input.
// If output is empty, it strips the extension from a local input file; stdin
// and URLs render to "prettymarkup".
// If output has a format extension (.html, .svg, etc.), it strips that extension.
func basePath(output string, src *source) string {
	if output == "" {
		if src.URL != "" || src.Name == "stdin" {
			return appName
		}
		return strings.TrimSuffix(src.Name, filepath.Ext(src.Name))
	}
	ext := filepath.Ext(output)
	for _, f := range render.Formats {
		if extension(f) == ext {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// extension returns the file extension for a format.
func extension(format string) string {
	switch format {
	case render.FormatText:
		return ".txt"
	case render.FormatTerminal:
		return ".ansi"
	default:
		return "." + format
	}
}
