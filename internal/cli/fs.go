package cli

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/fstree"
	"github.com/matzehuels/scenetree/pkg/pipeline"
	"github.com/matzehuels/scenetree/pkg/render"
)

// fsCommand creates the fs command, which outlines a directory tree.
func (c *CLI) fsCommand() *cobra.Command {
	var (
		format, style string
		opts          fstree.Options
	)

	cmd := &cobra.Command{
		Use:   "fs [dir]",
		Short: "Outline a directory tree",
		Long: `Outline a directory tree, like tree(1).

Only directories are listed unless --files is given. Directories that cannot
be read are shown without children and reported as a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := render.ValidateFormat(format); err != nil {
				return err
			}
			return c.runFS(cmd, dir, format, style, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Files, "files", "f", false, "list files as well as directories")
	cmd.Flags().BoolVarP(&opts.Hidden, "all", "a", false, "include hidden entries")
	cmd.Flags().StringVar(&format, "format", render.FormatText, "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVar(&style, "style", "", "text outline style: unicode, ascii (default from config)")

	return cmd
}

func (c *CLI) runFS(cmd *cobra.Command, dir, format, style string, opts fstree.Options) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "fs %s", dir)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	fsys, root := dirFS(dir)
	t := fstree.New(fsys, root, opts)
	rows := pipeline.Flatten(cmd.Context(), loggerFromContext(cmd.Context()), "fs", t)
	if err := t.Err(); err != nil {
		printWarning(cmd.ErrOrStderr(), "some directories could not be read: %v", err)
	}

	o := c.outlineOptions(dir, format, style)
	if err := pipeline.ValidateStyle(o.Style); err != nil {
		return err
	}
	data, err := render.Render(cmd.Context(), format, rows, entryLabel(dir, root), render.Options{
		Style: pipeline.TextStyle(o.Style, o.RootConnectors),
	})
	if err != nil {
		return err
	}
	return writeArtifact(cmd, data, "")
}

// dirFS returns a file system rooted at the parent of dir and the name of
// dir inside it, so the root entry carries the directory's own name.
func dirFS(dir string) (iofs.FS, string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return os.DirFS(dir), "."
	}
	parent, base := filepath.Dir(abs), filepath.Base(abs)
	if parent == abs {
		return os.DirFS(abs), "."
	}
	return os.DirFS(parent), base
}

// entryLabel labels the root row with dir as given on the command line and
// every other row with its entry label.
func entryLabel(dir, root string) func(fstree.Entry) string {
	top := strings.TrimSuffix(dir, "/") + "/"
	if dir == "/" {
		top = "/"
	}
	return func(e fstree.Entry) string {
		if e.Path == root {
			return top
		}
		return e.Label()
	}
}
