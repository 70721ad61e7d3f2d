package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Lay out a scene and render it to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			sc, p, err := loadScene(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			r, res, err := p.RenderImage(sc, viewportOf(cfg))
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			if err := r.EncodePNG(f); err != nil {
				return fmt.Errorf("failed to encode PNG: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %gx%g to %s\n", res.Viewport.Width, res.Viewport.Height, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "output.png", "Output PNG file path")
	return cmd
}
