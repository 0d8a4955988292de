package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/io"
	"github.com/matzehuels/scenetree/pkg/render"
	"github.com/matzehuels/scenetree/pkg/scene"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// formatForest exports the scene graph as a JSON forest that the outline
// command reads back.
const formatForest = "forest"

// exportCommand creates the export command for writing the outline of a
// document in one of the render formats.
func (c *CLI) exportCommand() *cobra.Command {
	var format, output, style string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the scene graph outline",
		Long: `Export the scene graph outline of a glTF document.

Formats:
  text    indented outline (same as --dump-tree)
  json    rows with label, depth, connector and parent index
  dot     Graphviz digraph
  svg     Graphviz drawing
  pdf     SVG converted with rsvg-convert
  png     SVG converted with rsvg-convert
  forest  nested {"name", "children"} JSON, readable by the outline command

Without --output the artifact is written to stdout. Binary formats (pdf,
png) require --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == formatForest {
				return c.runExportForest(cmd, args[0], output)
			}
			if err := render.ValidateFormat(format); err != nil {
				return err
			}
			return c.runExport(cmd, args[0], format, style, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "output format: "+strings.Join(render.Formats, ", ")+", "+formatForest)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&style, "style", "", "text outline style: unicode, ascii (default from config)")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path, format, style, output string) error {
	if output == "" && render.Binary(format) {
		return errors.New(errors.ErrCodeInvalidInput, "%s output is binary; use --output", format)
	}

	prog := newProgress(c.Logger)
	result, err := c.withSpinner(cmd, format, func(ctx context.Context) ([]byte, error) {
		res, err := c.newRunner().Execute(ctx, c.outlineOptions(path, format, style))
		if err != nil {
			return nil, err
		}
		return res.Artifact, nil
	})
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	if err := writeArtifact(cmd, result, output); err != nil {
		return err
	}
	if output != "" {
		prog.done("Wrote " + output)
	}
	return nil
}

func (c *CLI) runExportForest(cmd *cobra.Command, path, output string) error {
	ctx := cmd.Context()
	runner := c.newRunner()

	doc, err := runner.Import(ctx, path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	roots := tree.Nodes(runner.Outline(ctx, doc), scene.NodeInfo.Label)

	if output == "" {
		return io.WriteJSON(roots, cmd.OutOrStdout())
	}
	if err := io.ExportJSON(roots, output); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printSuccess(out, "Exported")
	printFile(out, output)
	return nil
}

// withSpinner runs fn, showing a spinner on stderr for formats that go
// through Graphviz.
func (c *CLI) withSpinner(cmd *cobra.Command, format string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	ctx := cmd.Context()
	if !render.UsesGraphviz(format) {
		return fn(ctx)
	}

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	out, err := fn(ctx)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, err
	}
	spinner.Stop()
	return out, nil
}

// writeArtifact writes data to output, or to the command's stdout when
// output is empty.
func writeArtifact(cmd *cobra.Command, data []byte, output string) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	out := cmd.OutOrStdout()
	printSuccess(out, "Exported")
	printFile(out, output)
	return nil
}
