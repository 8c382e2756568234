package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/notty/internal/domain/model"
)

func (a *App) categoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and create categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List categories",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				categories, err := a.svc.API.FetchCategories(cmd.Context())
				if err != nil {
					return fmt.Errorf("listing categories: %w", err)
				}

				return a.render(categories, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNAME")
					for _, c := range categories {
						fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
					}
				})
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				category, err := a.svc.API.CreateCategory(cmd.Context(), model.CategoryInput{Name: args[0]})
				if err != nil {
					return fmt.Errorf("creating category: %w", err)
				}

				return a.render(category, func(w io.Writer) {
					fmt.Fprintf(w, "Created category %d %q\n", category.ID, category.Name)
				})
			},
		},
	)
	return cmd
}

func (a *App) subcategoriesCommand() *cobra.Command {
	var parent int64

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a subcategory under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := a.svc.API.CreateSubcategory(cmd.Context(), model.SubcategoryInput{Name: args[0], Category: parent})
			if err != nil {
				return fmt.Errorf("creating subcategory: %w", err)
			}

			return a.render(sub, func(w io.Writer) {
				fmt.Fprintf(w, "Created subcategory %d %q in category %d\n", sub.ID, sub.Name, sub.Category)
			})
		},
	}
	create.Flags().Int64Var(&parent, "category", 0, "Parent category ID")
	_ = create.MarkFlagRequired("category")

	cmd := &cobra.Command{
		Use:     "subcategories",
		Aliases: []string{"subcategory"},
		Short:   "Create subcategories",
	}
	cmd.AddCommand(create)
	return cmd
}
