package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ironsheep/enimda-mcp/internal/border"
)

// scanOutput is printed as one JSON line per scanned file.
type scanOutput struct {
	Path       string         `json:"path"`
	Borders    border.Borders `json:"borders"`
	HasBorders bool           `json:"has_borders"`
	Multiplier float64        `json:"multiplier"`
	Frames     []int          `json:"frames"`
	Error      string         `json:"error,omitempty"`
}

func newScanCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>...",
		Short: "Print the detected borders of each file as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := f.newRunner(cmd)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(r.out)
			var firstErr error
			for _, path := range args {
				_, res, multiplier, err := r.scan(cmd.Context(), path)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					if err := enc.Encode(scanOutput{Path: path, Error: err.Error()}); err != nil {
						return err
					}
					continue
				}
				out := scanOutput{
					Path:       path,
					Borders:    res.Borders,
					HasBorders: res.Borders.HasBorders(),
					Multiplier: multiplier,
					Frames:     res.Frames,
				}
				if err := enc.Encode(out); err != nil {
					return err
				}
			}
			return firstErr
		},
	}
}
