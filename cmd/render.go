package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mdinput/internal/ui/shared/markdown"
	"github.com/zjrosen/mdinput/internal/ui/shared/mdinput"
)

var renderWidth int

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render markdown the way a field preview shows it",
	Long: `Render a markdown file, or stdin when no file is given, with the same
glamour style a field preview uses.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", mdinput.DefaultWidth,
		"word wrap width")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		src []byte
		err error
	)
	if len(args) == 1 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading markdown: %w", err)
	}

	style := styleFlag
	if style == "" {
		style = markdown.DefaultStyle
	}
	r, err := markdown.New(renderWidth, style)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(string(src))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
