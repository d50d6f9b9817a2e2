package border

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNoFrames is returned when Scan is called without any frame.
var ErrNoFrames = errors.New("no frames to scan")

// Detector runs border scans with fixed options and its own random source.
//
// A Detector is safe for concurrent use. Sampling sets are drawn under a lock
// before the per-side work is scheduled.
type Detector struct {
	opts Options

	mu  sync.Mutex
	rng *rand.Rand
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithRand sets the random source used for frame and column sampling.
func WithRand(rng *rand.Rand) DetectorOption {
	return func(d *Detector) {
		d.rng = rng
	}
}

// WithSeed seeds a PCG random source for reproducible sampling.
func WithSeed(seed uint64) DetectorOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithWorkers overrides Options.Workers.
func WithWorkers(n int) DetectorOption {
	return func(d *Detector) {
		d.opts.Workers = n
	}
}

// New validates opts and returns a Detector. Without WithRand or WithSeed the
// random source is seeded from the runtime.
func New(opts Options, options ...DetectorOption) (*Detector, error) {
	d := &Detector{opts: opts}
	for _, o := range options {
		o(d)
	}
	if err := d.opts.Validate(); err != nil {
		return nil, err
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return d, nil
}

// Options returns the detector's options.
func (d *Detector) Options() Options {
	return d.opts
}

// Result is the outcome of a multi-frame scan.
type Result struct {
	Borders

	// Frames lists the indices of the analyzed frames.
	Frames []int `json:"frames"`

	// PerFrame holds the unscaled borders measured on each analyzed frame.
	PerFrame []Borders `json:"per_frame"`
}

// job is one (frame, side) scan with its pre-drawn column sample.
type job struct {
	frame   int
	side    Side
	columns []int
}

// Scan measures the borders of every selected frame and reduces them to one
// tuple: the per-side minimum across frames, rescaled by multiplier.
func (d *Detector) Scan(ctx context.Context, frames []Grid, multiplier float64) (Borders, error) {
	res, err := d.ScanDetailed(ctx, frames, multiplier)
	if err != nil {
		return Borders{}, err
	}
	return res.Borders, nil
}

// ScanDetailed is Scan with the per-frame measurements.
func (d *Detector) ScanDetailed(ctx context.Context, frames []Grid, multiplier float64) (*Result, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier < 1 {
		return nil, fmt.Errorf("%w: multiplier %v must be >= 1", ErrInvalidOptions, multiplier)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected, jobs := d.plan(frames)
	perFrame := make([]Borders, len(selected))

	workers := d.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			depth := scanSide(frames[selected[j.frame]], j.side, j.columns, d.opts)
			mu.Lock()
			perFrame[j.frame].Set(j.side, depth)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reduced := perFrame[0]
	for _, b := range perFrame[1:] {
		reduced = reduced.Min(b)
	}

	return &Result{
		Borders:  reduced.Scale(multiplier),
		Frames:   selected,
		PerFrame: perFrame,
	}, nil
}

// plan selects the frames to analyze and draws every column sample.
func (d *Detector) plan(frames []Grid) ([]int, []job) {
	d.mu.Lock()
	defer d.mu.Unlock()

	selected := d.selectFrames(len(frames))
	jobs := make([]job, 0, len(selected)*4)
	for i, f := range selected {
		for _, side := range Sides() {
			jobs = append(jobs, job{
				frame:   i,
				side:    side,
				columns: sampleColumns(d.rng, rotatedWidth(frames[f], side), d.opts.sample(side)),
			})
		}
	}
	return selected, jobs
}

// selectFrames returns the sorted indices of the frames to analyze.
func (d *Detector) selectFrames(n int) []int {
	count := int(math.Ceil(d.opts.Frames * float64(n)))
	if d.opts.MaxFrames > 0 && count > d.opts.MaxFrames {
		count = d.opts.MaxFrames
	}
	count = max(count, 1)

	if count >= n {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	idx := d.rng.Perm(n)[:count]
	sort.Ints(idx)
	return idx
}

// rotatedWidth is the width of frame after Rotate(frame, side).
func rotatedWidth(frame Grid, side Side) int {
	switch side.normalize() {
	case Top, Bottom:
		return frame.Width
	default:
		return frame.Height
	}
}

// Scan is a one-call convenience around New and Detector.Scan.
func Scan(frames []Grid, multiplier float64, opts Options) (Borders, error) {
	d, err := New(opts)
	if err != nil {
		return Borders{}, err
	}
	return d.Scan(context.Background(), frames, multiplier)
}
