package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/blink-new/overlay-composer/internal/compositor"
	"github.com/blink-new/overlay-composer/internal/images"
	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// manifest describes a one-shot composition: the base image, whether to
// stamp the watermark, the display frame the overlay rectangles are
// expressed in, and the overlays themselves.
type manifest struct {
	Base      string                    `yaml:"base"`
	Watermark bool                      `yaml:"watermark"`
	Output    string                    `yaml:"output"`
	Frame     models.DisplayFrame       `yaml:"frame"`
	Overlays  []models.OverlayPlacement `yaml:"overlays"`
}

func newComposeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compose MANIFEST",
		Short: "Flatten a composition manifest into a single image",
		Long: `Reads a YAML composition manifest and writes the flattened result.

The manifest names a base image (path or URL), an optional watermark toggle,
the display frame the overlay rectangles are expressed in, and an ordered
overlay list. The output is rendered at the base image's native resolution.`,
		Example: `  # Flatten composition.yaml to the default output name
  composer compose composition.yaml

  # Choose the output file
  composer compose composition.yaml --output poster.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}

			var m manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("failed to parse manifest: %w", err)
			}
			if m.Base == "" {
				return fmt.Errorf("manifest has no base image")
			}

			ctx := cmd.Context()
			fetcher := images.NewFetcher()

			base, err := fetcher.Resolve(ctx, m.Base)
			if err != nil {
				return fmt.Errorf("failed to load base image: %w", err)
			}

			if m.Watermark {
				base = compositor.NewStamper(fetcher.Resolve).Apply(ctx, base)
			}

			frame := m.Frame
			if frame.Width <= 0 || frame.Height <= 0 {
				frame = models.DisplayFrame{
					Width:  float64(base.Bounds().Dx()),
					Height: float64(base.Bounds().Dy()),
				}
			}

			slog.Info("Flattening composition", "base", m.Base, "overlays", len(m.Overlays),
				"frame_width", frame.Width, "frame_height", frame.Height)

			flat, err := compositor.Flatten(ctx, base, frame, m.Overlays, fetcher.Resolve)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			out := output
			if out == "" {
				out = m.Output
			}
			if out == "" {
				out = compositor.ExportFilename
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			if err := compositor.Encode(f, flat); err != nil {
				return fmt.Errorf("failed to encode output: %w", err)
			}

			slog.Info("Composition written", "output", out,
				"width", flat.Bounds().Dx(), "height", flat.Bounds().Dy())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to the manifest's output, then "+compositor.ExportFilename+")")

	return cmd
}
