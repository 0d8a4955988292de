package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/pkg/io"
	"github.com/matzehuels/scenetree/pkg/pipeline"
	"github.com/matzehuels/scenetree/pkg/render"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// outlineCommand creates the outline command, which flattens a JSON forest
// instead of a glTF document.
func (c *CLI) outlineCommand() *cobra.Command {
	var format, output, style string

	cmd := &cobra.Command{
		Use:   "outline [forest.json]",
		Short: "Outline a JSON forest",
		Long: `Outline a hierarchy given as nested JSON.

The input is one node or an array of nodes, each with a "name" and an
optional "children" array:

  {"name": "root", "children": [{"name": "a"}, {"name": "b"}]}

All export formats are supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(format); err != nil {
				return err
			}
			return c.runOutline(cmd, args[0], format, style, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&style, "style", "", "text outline style: unicode, ascii (default from config)")

	return cmd
}

func (c *CLI) runOutline(cmd *cobra.Command, path, format, style, output string) error {
	roots, err := io.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}

	opts := c.outlineOptions(path, format, style)
	if err := pipeline.ValidateStyle(opts.Style); err != nil {
		return err
	}

	rows := pipeline.Flatten(cmd.Context(), loggerFromContext(cmd.Context()), "json", tree.NewNodeTraverser(roots...))
	data, err := render.Render(cmd.Context(), format, rows, nodeName, render.Options{
		Style: pipeline.TextStyle(opts.Style, opts.RootConnectors),
	})
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	return writeArtifact(cmd, data, output)
}

func nodeName(n *tree.Node) string { return n.Name }
