package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverdier/coursemap/pkg/document"
	"github.com/jverdier/coursemap/pkg/export"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (derived from the input if empty)
	format   string // output format: "svg", "png", "dot"
	detailed bool   // include family and duration annotations in labels
}

// newRenderCmd creates the render command for generating diagram files from
// graph documents. SVG and PNG output go through Graphviz; "dot" writes the
// intermediate DOT source.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a graph document to SVG, PNG, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include family and duration annotations")

	return cmd
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true}

// validateFormat checks that the requested format is supported.
func validateFormat(f string) error {
	if !validFormats[f] {
		return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", f)
	}
	return nil
}

// outputPath derives the output file path: an explicit output wins, otherwise
// the input path with its extension swapped for the format.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

func runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	raw, err := readDocument(input)
	if err != nil {
		return err
	}
	doc, _ := document.Sanitize(raw)
	logger.Debugf("Loaded document: %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))

	dot := export.ToDOT(doc, export.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = export.RenderSVG(ctx, dot)
		spinner.Stop()
	case formatPNG:
		spinner := newSpinnerWithContext(ctx, "Rendering PNG...")
		spinner.Start()
		data, err = export.RenderPNG(ctx, dot)
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}

	path := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	prog.done(fmt.Sprintf("Rendered %d nodes", len(doc.Nodes)))
	printFile(path)
	return nil
}
