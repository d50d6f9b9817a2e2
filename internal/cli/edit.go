package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/enimda-mcp/internal/imaging"
)

var errNoOutput = errors.New("output path is required (-o)")

func newCropCommand(f *flags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "crop <file>",
		Short: "Remove the detected borders and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errNoOutput
			}
			r, err := f.newRunner(cmd)
			if err != nil {
				return err
			}
			img, res, _, err := r.scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cropped, err := imaging.CropBorders(img, res.Borders)
			if err != nil {
				return err
			}
			if err := imaging.Save(cropped, output); err != nil {
				return err
			}

			b := cropped.Bounds()
			fmt.Fprintf(r.out, "%s %s -> %s (%dx%d)\n", args[0], res.Borders, output, b.Dx(), b.Dy())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file; the format follows the extension")
	return cmd
}

func newOutlineCommand(f *flags) *cobra.Command {
	var (
		output string
		color  string
	)

	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Draw guide lines along the detected borders and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errNoOutput
			}
			r, err := f.newRunner(cmd)
			if err != nil {
				return err
			}
			img, res, _, err := r.scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if color == "" {
				color = r.cfg.GetOutlineColor()
			}
			outlined, err := imaging.OutlineBorders(img, res.Borders, color)
			if err != nil {
				return err
			}
			if err := imaging.Save(outlined, output); err != nil {
				return err
			}

			fmt.Fprintf(r.out, "%s %s -> %s\n", args[0], res.Borders, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file; the format follows the extension")
	cmd.Flags().StringVar(&color, "color", "", "Guide line color as hex (default from configuration, #FF0000)")
	return cmd
}
