package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/geopicker/internal/config"
	"github.com/spf13/cobra"
)

// rootFlags are shared by every subcommand and override the config file and environment
type rootFlags struct {
	configPath string
	imgDir     string
	dataDir    string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "geopicker",
		Short: "Pick one representative profile image per category",
		Long: `Geopicker is a small local web tool for reviewing folders of profile_geo images.

Each top-level folder of the image directory is a category. Pick one image per
category in the browser, then export the choices to a spreadsheet.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default ./"+config.FileName+" if present)")
	cmd.PersistentFlags().StringVar(&flags.imgDir, "img-dir", "", "Image root directory")
	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "Directory for selections.json and exports")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newListCmd(flags))

	return cmd
}

// load resolves the configuration: defaults, config file, environment, then flags
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("img-dir") {
		cfg.ImgDir = f.imgDir
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
