package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/notty/internal/domain/model"
)

func (a *App) notesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "List, read and edit notes",
	}

	cmd.AddCommand(
		a.notesListCommand(),
		a.notesGetCommand(),
		a.notesCreateCommand(),
		a.notesUpdateCommand(),
		a.notesDeleteCommand(),
	)
	return cmd
}

func (a *App) notesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := a.svc.API.ListNotes(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}

			return a.render(notes, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATED")
				for _, n := range notes {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.ID, n.Title, optionalID(n.Category), formatTime(n.CreatedAt))
				}
			})
		},
	}
}

func (a *App) notesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			note, err := a.svc.API.GetNote(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching note %d: %w", id, err)
			}

			return a.render(note, func(w io.Writer) {
				fmt.Fprintf(w, "# %s\n", note.Title)
				fmt.Fprintf(w, "id %d, category %s, subcategory %s, created %s\n\n",
					note.ID, optionalID(note.Category), optionalID(note.Subcategory), formatTime(note.CreatedAt))
				fmt.Fprint(w, note.Content)
				if !strings.HasSuffix(note.Content, "\n") {
					fmt.Fprintln(w)
				}
			})
		},
	}
}

// noteFlags collects the flags shared by create and update.
type noteFlags struct {
	title       string
	content     string
	file        string
	category    int64
	subcategory int64
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&f.content, "content", "c", "", "Note content (markdown)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", `Read content from a file, or "-" for stdin`)
	cmd.Flags().Int64Var(&f.category, "category", 0, "Category ID")
	cmd.Flags().Int64Var(&f.subcategory, "subcategory", 0, "Subcategory ID")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	_ = cmd.MarkFlagRequired("title")
}

func (f *noteFlags) input(cmd *cobra.Command, in io.Reader) (model.NoteInput, error) {
	note := model.NoteInput{Title: f.title, Content: f.content}

	if f.file != "" {
		content, err := readContent(in, f.file)
		if err != nil {
			return model.NoteInput{}, err
		}
		note.Content = content
	}

	if cmd.Flags().Changed("category") {
		note.Category = &f.category
	}
	if cmd.Flags().Changed("subcategory") {
		note.Subcategory = &f.subcategory
	}
	return note, nil
}

func (a *App) notesCreateCommand() *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(cmd, a.stdin)
			if err != nil {
				return err
			}

			note, err := a.svc.API.CreateNote(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("creating note: %w", err)
			}

			return a.render(note, func(w io.Writer) {
				fmt.Fprintf(w, "Created note %d %q\n", note.ID, note.Title)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *App) notesUpdateCommand() *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a note's title and content",
		Long: `Replace a note's title and content.

--category and --subcategory are sent only when given. Omitted ones are
left unchanged by the server; they cannot be cleared from here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			input, err := flags.input(cmd, a.stdin)
			if err != nil {
				return err
			}

			note, err := a.svc.API.UpdateNote(cmd.Context(), id, input)
			if err != nil {
				return fmt.Errorf("updating note %d: %w", id, err)
			}

			return a.render(note, func(w io.Writer) {
				fmt.Fprintf(w, "Updated note %d %q\n", note.ID, note.Title)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *App) notesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := a.svc.API.DeleteNote(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting note %d: %w", id, err)
			}

			fmt.Fprintf(a.stderr, "Deleted note %d\n", id)
			return nil
		},
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
