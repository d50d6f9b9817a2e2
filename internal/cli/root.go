package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/enimda-mcp/internal/border"
	"github.com/ironsheep/enimda-mcp/internal/config"
	"github.com/ironsheep/enimda-mcp/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// flags holds the values of the persistent command line flags.
type flags struct {
	configPath string
	verbose    bool

	threshold     float64
	indent        float64
	fast          bool
	rowSample     int
	columnSample  int
	frames        float64
	maxFrames     int
	maxIterations int
	workers       int
	resize        int
	frameLimit    int
	seed          uint64
}

// NewRootCommand builds the enimda command tree.
func NewRootCommand() *cobra.Command {
	f := &flags{}
	defaults := border.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "enimda",
		Short: "Entropy-based image border detection",
		Long: `enimda finds uniform borders (letterboxes, pillarboxes, mattes) around
images and animations by comparing the entropy of strips near each edge.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "JSON configuration file (default $"+config.EnvConfig+")")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	pf.Float64Var(&f.threshold, "threshold", defaults.Threshold, "Maximum margin/content entropy ratio, in (0, 1]")
	pf.Float64Var(&f.indent, "indent", defaults.Indent, "Maximum border depth as a fraction of the image dimension, in (0, 1]")
	pf.BoolVar(&f.fast, "fast", defaults.Fast, "Stop after the first refinement")
	pf.IntVar(&f.rowSample, "row-sample", 0, "Rows sampled for the left and right sides (0 = all)")
	pf.IntVar(&f.columnSample, "column-sample", 0, "Columns sampled for the top and bottom sides (0 = all)")
	pf.Float64Var(&f.frames, "frames", defaults.Frames, "Fraction of animation frames to analyze, in (0, 1]")
	pf.IntVar(&f.maxFrames, "max-frames", 0, "Maximum animation frames to analyze (0 = no cap)")
	pf.IntVar(&f.maxIterations, "max-iterations", 0, "Refinement iteration cap (0 = automatic)")
	pf.IntVar(&f.workers, "workers", 0, "Concurrent side scans (0 = GOMAXPROCS)")
	pf.IntVar(&f.resize, "resize", config.DefaultResize, "Analysis thumbnail size (0 = full resolution)")
	pf.IntVar(&f.frameLimit, "frame-limit", 0, "Maximum decoded GIF frames (0 = all)")
	pf.Uint64Var(&f.seed, "seed", 0, "Sampling seed (random when unset)")

	rootCmd.AddCommand(
		newScanCommand(f),
		newCropCommand(f),
		newOutlineCommand(f),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of enimda",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enimda %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

// resolveConfig loads the configuration file (from --config or the
// environment) and applies every flag set on the command line.
func (f *flags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("threshold") {
		cfg.Threshold = &f.threshold
	}
	if changed("indent") {
		cfg.Indent = &f.indent
	}
	if changed("fast") {
		cfg.Fast = &f.fast
	}
	if changed("row-sample") {
		cfg.RowSample = &f.rowSample
	}
	if changed("column-sample") {
		cfg.ColumnSample = &f.columnSample
	}
	if changed("frames") {
		cfg.Frames = &f.frames
	}
	if changed("max-frames") {
		cfg.MaxFrames = &f.maxFrames
	}
	if changed("max-iterations") {
		cfg.MaxIterations = &f.maxIterations
	}
	if changed("workers") {
		cfg.Workers = &f.workers
	}
	if changed("resize") {
		cfg.Resize = &f.resize
	}
	if changed("frame-limit") {
		cfg.FrameLimit = &f.frameLimit
	}
	if changed("seed") {
		cfg.Seed = &f.seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LogLevel != nil && !f.verbose {
		logrus.SetLevel(cfg.GetLogLevel())
	}
	return cfg, nil
}

// runner scans files with one resolved configuration.
type runner struct {
	cfg      *config.Config
	cache    *imaging.ImageCache
	detector *border.Detector
	out      io.Writer
}

func (f *flags) newRunner(cmd *cobra.Command) (*runner, error) {
	cfg, err := f.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ScanOptions()
	if err != nil {
		return nil, err
	}
	detector, err := border.New(opts, cfg.DetectorOptions()...)
	if err != nil {
		return nil, err
	}
	return &runner{
		cfg:      cfg,
		cache:    imaging.NewImageCache(cfg.GetFrameLimit()),
		detector: detector,
		out:      cmd.OutOrStdout(),
	}, nil
}

// scan loads path and detects its borders in original pixels.
func (r *runner) scan(ctx context.Context, path string) (*imaging.Image, *border.Result, float64, error) {
	img, err := r.cache.Load(path)
	if err != nil {
		return nil, nil, 0, err
	}

	analysis := imaging.Prepare(img, r.cfg.GetResize())
	res, err := r.detector.ScanDetailed(ctx, analysis.Frames, analysis.Multiplier)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":       path,
		"borders":    res.Borders.String(),
		"frames":     len(res.Frames),
		"multiplier": analysis.Multiplier,
	}).Debug("Borders scanned")

	return img, res, analysis.Multiplier, nil
}
