package cmd

import (
	"fmt"
	"strings"

	"github.com/blink-new/overlay-composer/internal/catalog"
	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "catalog SOURCE",
		Short: "Fetch a catalog source and list its image records",
		Long: `Loads image records from a catalog source and prints the accepted rows.

The source is either a remote sheet URL (published as CSV) or a local
.csv or .parquet file. Rows that don't satisfy the catalog contract are
skipped silently, matching what the web interface would load.`,
		Example: `  # Inspect a published sheet
  composer catalog "https://docs.google.com/spreadsheets/d/e/.../pub?output=csv"

  # Inspect a local parquet file, first 10 rows
  composer catalog ./catalog.parquet --limit 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			var records []models.ImageRecord
			var err error
			if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
				records, err = catalog.NewClient().Fetch(cmd.Context(), src)
			} else {
				records, err = catalog.NewLoader(src).Load()
			}
			if err != nil {
				return err
			}

			shown := len(records)
			if limit > 0 && limit < shown {
				shown = limit
			}

			for i, rec := range records[:shown] {
				fmt.Printf("%-4d %-30s %5dx%-5d %s\n", i+1, rec.Name, rec.NativeWidth, rec.NativeHeight, rec.ImageURL)
			}
			fmt.Printf("\n%d record(s) accepted", len(records))
			if shown < len(records) {
				fmt.Printf(" (%d shown)", shown)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to print (0 for all)")

	return cmd
}
