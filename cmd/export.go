package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/geopicker/internal/export"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var withParquet bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export selections to a timestamped spreadsheet",
		Long: `Writes selections_YYYYMMDD_HHMMSS.xlsx to the data directory, one row per
selected category with its search-result token and profile_geo text.

The export is aborted without writing anything if a selected image has no
.txt sidecar file.`,
		Example: `  geopicker export --data-dir ./data --img-dir ./static/images

  # Also write a parquet copy
  geopicker export --parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			job := export.NewJob(cfg.ImgDir, cfg.DataDir, storage.NewSelectionStore(cfg.DataDir))
			job.Parquet = cfg.ExportParquet || withParquet

			result, err := job.Run()
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d selections\n", result.Rows)
			for _, file := range result.Files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withParquet, "parquet", false, "Also write a .parquet copy of the rows")

	return cmd
}
