package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/esimov/triangulator"
	"github.com/esimov/triangulator/client"
	"github.com/esimov/triangulator/codec"
	"github.com/esimov/triangulator/imagepoints"
	"github.com/esimov/triangulator/render"
	"github.com/esimov/triangulator/server"
	"github.com/esimov/triangulator/utils"
)

// runner holds the state shared by all commands.
type runner struct {
	logger golog.Logger
}

func (r *runner) before(c *cli.Context) error {
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	r.logger = logger
	return nil
}

func (r *runner) serve(c *cli.Context) error {
	cfg := server.Config{
		Addr:            c.String(flagAddr),
		StoreURL:        c.String(flagStoreURL),
		Timeout:         c.Duration(flagTimeout),
		ShutdownTimeout: c.Duration(flagShutdownTimeout),
		CORS:            c.Bool(flagCORS),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := client.New(client.Options{StoreURL: cfg.StoreURL, Timeout: cfg.Timeout}, r.logger.Named("client"))
	return server.New(cfg, fetcher, r.logger.Named("server")).ListenAndServe(ctx)
}

func (r *runner) triangulate(c *cli.Context) error {
	points, err := readPoints(c)
	if err != nil {
		return err
	}
	triangles, stats, elapsed, err := r.run(c, points)
	if err != nil {
		return err
	}
	if err := writeOutput(c, c.String(flagOut), true, func(w io.Writer) error {
		return codec.WriteTriangles(w, points, triangles)
	}); err != nil {
		return err
	}
	report(c, stats, elapsed)
	return nil
}

func (r *runner) render(c *cli.Context) error {
	out := c.Path(flagOut)
	format, err := render.FormatFromPath(out)
	if err != nil {
		return err
	}
	opts, err := renderOptions(c)
	if err != nil {
		return err
	}

	points, err := readPoints(c)
	if err != nil {
		return err
	}
	triangles, stats, elapsed, err := r.run(c, points)
	if err != nil {
		return err
	}
	img, err := render.Draw(points, triangles, opts)
	if err != nil {
		return err
	}
	if err := writeOutput(c, out, true, func(w io.Writer) error {
		return render.Encode(w, img, format)
	}); err != nil {
		return err
	}
	report(c, stats, elapsed)
	return nil
}

func renderOptions(c *cli.Context) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Width = c.Int(flagWidth)
	opts.Height = c.Int(flagHeight)
	opts.Padding = c.Float64(flagPadding)
	opts.LineWidth = c.Float64(flagLineWidth)
	opts.Wireframe = c.Int(flagWireframe)
	opts.ShowPoints = c.Bool(flagPoints)
	opts.ShowIndices = c.Bool(flagIndices)

	var err error
	if opts.Background, err = render.ParseColor(c.String(flagBackground)); err != nil {
		return opts, err
	}
	if opts.Stroke, err = render.ParseColor(c.String(flagStroke)); err != nil {
		return opts, err
	}
	if fill := c.String(flagFill); fill != "" {
		if opts.Fill, err = render.ParseColor(fill); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func (r *runner) generate(c *cli.Context) error {
	n := c.Int(flagCount)
	size := c.Float64(flagSize)
	if n < 0 {
		return errors.Errorf("point count must not be negative, got %d", n)
	}
	if size <= 0 {
		return errors.Errorf("size must be positive, got %g", size)
	}
	points := randomPoints(n, size, c.Int64(flagSeed))
	r.logger.Debugw("generated points", "count", n, "size", size, "seed", c.Int64(flagSeed))
	return writePoints(c, points)
}

func randomPoints(n int, size float64, seed int64) []triangulator.Point {
	rnd := rand.New(rand.NewSource(seed))
	points := make([]triangulator.Point, n)
	for i := range points {
		points[i] = triangulator.Point{X: rnd.Float64() * size, Y: rnd.Float64() * size}
	}
	return points
}

func (r *runner) extract(c *cli.Context) (err error) {
	if c.NArg() != 1 {
		return errors.New("expected exactly one image")
	}
	threshold := c.Uint(flagPointsThreshold)
	if threshold > 255 {
		return errors.Errorf("points threshold must be at most 255, got %d", threshold)
	}
	opts := imagepoints.DefaultOptions()
	opts.BlurRadius = c.Int(flagBlur)
	opts.SobelThreshold = c.Float64(flagSobel)
	opts.PointsThreshold = uint8(threshold)
	opts.MaxPoints = c.Int(flagMaxPoints)
	opts.Seed = c.Int64(flagSeed)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	img, err := imagepoints.Decode(bufio.NewReader(f))
	if err != nil {
		return err
	}

	start := time.Now()
	points, err := imagepoints.Extract(img, opts)
	if err != nil {
		return err
	}
	r.logger.Debugw("extracted points", "image", f.Name(), "points", len(points), "elapsed", time.Since(start))
	return writePoints(c, points)
}

func (r *runner) fetch(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one point set id")
	}
	id := c.Args().First()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := client.New(client.Options{
		StoreURL: c.String(flagStoreURL),
		Timeout:  c.Duration(flagTimeout),
	}, r.logger.Named("client"))
	data, err := cl.GetPointSet(ctx, id)
	if err != nil {
		return err
	}
	points, err := codec.DecodePointSet(data)
	if err != nil {
		return err
	}
	r.logger.Debugw("fetched point set", "id", id, "points", len(points))
	return writePoints(c, points)
}

// run triangulates points, showing a spinner while it works when stderr is
// a terminal.
func (r *runner) run(c *cli.Context, points []triangulator.Point) ([]triangulator.Triangle, triangulator.Stats, time.Duration, error) {
	if utils.IsTerminal(c.App.ErrWriter) {
		s := utils.NewSpinner(c.App.ErrWriter, 100*time.Millisecond)
		s.Start(fmt.Sprintf("Triangulating %d points...", len(points)))
		defer s.Stop()
	}
	start := time.Now()
	triangles, stats, err := triangulator.TriangulateWithStats(points)
	elapsed := time.Since(start)
	if err != nil {
		return nil, stats, elapsed, err
	}
	r.logger.Debugw("triangulated",
		"points", stats.Points, "skipped", stats.Skipped, "triangles", stats.Triangles, "elapsed", elapsed)
	return triangles, stats, elapsed, nil
}

func report(c *cli.Context, stats triangulator.Stats, elapsed time.Duration) {
	color := utils.IsTerminal(c.App.ErrWriter)
	fmt.Fprintf(c.App.ErrWriter, "Triangulated in %s: %s triangles from %s points",
		utils.Decorate(utils.FormatTime(elapsed), utils.SuccessColor, color),
		utils.Decorate(fmt.Sprint(stats.Triangles), utils.SuccessColor, color),
		utils.Decorate(fmt.Sprint(stats.Points), utils.SuccessColor, color),
	)
	if stats.Skipped > 0 {
		fmt.Fprintf(c.App.ErrWriter, " (%d duplicates skipped)", stats.Skipped)
	}
	fmt.Fprintln(c.App.ErrWriter)
}

// readPoints reads the point set named by the first argument, or standard
// input when it is absent or "-".
func readPoints(c *cli.Context) (points []triangulator.Point, err error) {
	in := c.Args().First()
	r := c.App.Reader
	if in != "" && in != stdio {
		var f *os.File
		if f, err = os.Open(in); err != nil {
			return nil, err
		}
		defer func() {
			err = multierr.Combine(err, f.Close())
		}()
		r = f
	}

	br := bufio.NewReader(r)
	if c.Bool(flagText) {
		return codec.ParseText(br)
	}
	return codec.ReadPointSet(br)
}

func writePoints(c *cli.Context, points []triangulator.Point) error {
	return writeOutput(c, c.String(flagOut), !c.Bool(flagText), func(w io.Writer) error {
		if c.Bool(flagText) {
			return codec.WriteText(w, points)
		}
		return codec.WritePointSet(w, points)
	})
}

// writeOutput calls write with the named file, or standard output for "-".
// Binary output is refused when standard output is a terminal.
func writeOutput(c *cli.Context, out string, binary bool, write func(io.Writer) error) (err error) {
	if out == "" || out == stdio {
		if binary && utils.IsTerminal(c.App.Writer) {
			return errors.New("refusing to write binary output to a terminal, use --out")
		}
		bw := bufio.NewWriter(c.App.Writer)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
