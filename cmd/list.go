package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/lehigh-university-libraries/geopicker/internal/catalog"
	"github.com/lehigh-university-libraries/geopicker/internal/picking"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
	"github.com/spf13/cobra"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories and their selected image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			c := catalog.New(cfg.ImgDir)
			picker := picking.NewService(c, storage.NewSelectionStore(cfg.DataDir), cfg.PageSize)

			categories, err := c.ListCategories()
			if err != nil {
				return err
			}
			selections, err := picker.Selections()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSELECTION")
			for _, category := range categories {
				selected := selections.Path(category)
				if selected == "" {
					selected = "-"
				}
				fmt.Fprintf(w, "%s\t%s\n", category, selected)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d categories, %d selected\n", len(categories), selections.Len())
			return nil
		},
	}

	return cmd
}
