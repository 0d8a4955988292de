package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/pkg/scene"
	"github.com/matzehuels/scenetree/pkg/tree"
)

// statsCommand creates the stats command for printing document statistics.
func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print statistics of a glTF document",
		Long: `Print statistics of a glTF document.

Counts the accessors, animations, buffers, cameras, images, materials,
meshes, nodes, samplers, scenes, skins and textures of the document, and
summarizes the size and depth of its scene graph outline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}

// statsReport is the JSON form of the stats command output.
type statsReport struct {
	File     string           `json:"file"`
	Stats    scene.Statistics `json:"stats"`
	Rows     int              `json:"rows"`
	MaxDepth int              `json:"max_depth"`
}

func (c *CLI) runStats(cmd *cobra.Command, path string, asJSON bool) error {
	ctx := cmd.Context()
	runner := c.newRunner()

	doc, err := runner.Import(ctx, path)
	if err != nil {
		return fmt.Errorf("stats %s: %w", path, err)
	}
	rows := runner.Outline(ctx, doc)

	report := statsReport{
		File:     doc.Name(),
		Stats:    scene.Stats(doc.GLTF),
		Rows:     len(rows),
		MaxDepth: tree.MaxDepth(rows),
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(out, StyleTitle.Render(report.File))
	for _, f := range report.Stats.Fields() {
		printKeyValue(out, f.Label, f.Value)
	}
	printRowStats(out, report.Rows, report.MaxDepth)
	return nil
}
