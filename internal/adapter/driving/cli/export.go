package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/notty/internal/application"
)

func (a *App) exportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write all notes to a directory as HTML or markdown",
		Long: `Export fetches every note and category and writes one file per note.
HTML exports render the markdown content and add an index.html grouped by
category. Markdown exports keep the content as-is under a YAML front matter
header.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := application.ParseExportFormat(format)
			if err != nil {
				return err
			}

			result, err := a.svc.Exporter.Export(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}

			return a.render(result, func(w io.Writer) {
				fmt.Fprintf(w, "Wrote %d files to %s\n", len(result.Files), result.Dir)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", string(application.ExportHTML), "Export format: html or markdown")
	return cmd
}
