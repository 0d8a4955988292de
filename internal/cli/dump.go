package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/pkg/render"
)

// runDump prints the text outline of the document at path to the command's
// output.
func (c *CLI) runDump(cmd *cobra.Command, path string) error {
	result, err := c.newRunner().Execute(cmd.Context(), c.outlineOptions(path, render.FormatText, ""))
	if err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	_, err = cmd.OutOrStdout().Write(result.Artifact)
	return err
}
