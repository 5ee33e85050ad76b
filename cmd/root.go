package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "composer",
		Short: "Image overlay composer with catalog-driven overlays",
		Long: `Composer flattens a base image, an optional watermark, and a set of
positioned overlay images into a single raster.

Overlays come from a catalog source (a remote sheet or a local CSV/Parquet
file) and are placed on a display-sized frame; exports always render at the
base image's native resolution, regardless of how the frame is sized.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newComposeCmd())
	cmd.AddCommand(newCatalogCmd())

	return cmd
}
