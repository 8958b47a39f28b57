// Package main is the triangulator command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/esimov/triangulator/client"
	"github.com/esimov/triangulator/imagepoints"
	"github.com/esimov/triangulator/render"
	"github.com/esimov/triangulator/server"
)

const (
	// Flags.
	flagDebug           = "debug"
	flagAddr            = "addr"
	flagStoreURL        = "store-url"
	flagTimeout         = "timeout"
	flagShutdownTimeout = "shutdown-timeout"
	flagCORS            = "cors"
	flagOut             = "out"
	flagText            = "text"
	flagCount           = "count"
	flagSize            = "size"
	flagSeed            = "seed"
	flagWidth           = "width"
	flagHeight          = "height"
	flagPadding         = "padding"
	flagLineWidth       = "line-width"
	flagWireframe       = "wireframe"
	flagPoints          = "points"
	flagIndices         = "indices"
	flagBackground      = "background"
	flagStroke          = "stroke"
	flagFill            = "fill"
	flagBlur            = "blur"
	flagSobel           = "sobel"
	flagPointsThreshold = "points-threshold"
	flagMaxPoints       = "max"

	stdio = "-"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a console logger writing to stderr so that stdout stays
// free for binary output.
func newLogger(debug bool) (golog.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().Named("triangulator"), nil
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagStoreURL,
			Value:   client.DefaultStoreURL,
			EnvVars: []string{"TRIANGULATOR_STORE_URL"},
			Usage:   "base `URL` of the point set store",
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Value:   client.DefaultTimeout,
			EnvVars: []string{"TRIANGULATOR_TIMEOUT"},
			Usage:   "timeout for point set retrieval",
		},
	}
}

func outputFlags(usage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagOut,
			Aliases: []string{"o"},
			Value:   stdio,
			Usage:   usage,
		},
	}
}

func newApp() *cli.App {
	r := &runner{}
	defaults := server.DefaultConfig()
	renderDefaults := render.DefaultOptions()
	extractDefaults := imagepoints.DefaultOptions()

	return &cli.App{
		Name:  "triangulator",
		Usage: "Delaunay triangulation of 2D point sets",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				EnvVars: []string{"TRIANGULATOR_DEBUG"},
				Usage:   "enable debug logging",
			},
		},
		Before: r.before,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve triangulations of stored point sets over HTTP",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    flagAddr,
						Value:   defaults.Addr,
						EnvVars: []string{"TRIANGULATOR_ADDR"},
						Usage:   "listen `ADDRESS`",
					},
					&cli.DurationFlag{
						Name:  flagShutdownTimeout,
						Value: defaults.ShutdownTimeout,
						Usage: "time allowed for in-flight requests on shutdown",
					},
					&cli.BoolFlag{
						Name:    flagCORS,
						EnvVars: []string{"TRIANGULATOR_CORS"},
						Usage:   "allow cross-origin requests",
					},
				}, storeFlags()...),
				Action: r.serve,
			},
			{
				Name:      "triangulate",
				Usage:     "triangulate a point set and write the triangles encoding",
				ArgsUsage: "[FILE|-]",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  flagText,
						Usage: "read points as text, one \"x y\" pair per line",
					},
				}, outputFlags("write the triangles encoding to `FILE`")...),
				Action: r.triangulate,
			},
			{
				Name:      "render",
				Usage:     "triangulate a point set and draw it as an image",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagText,
						Usage: "read points as text, one \"x y\" pair per line",
					},
					&cli.PathFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "image `FILE`, .png or .bmp",
					},
					&cli.IntFlag{Name: flagWidth, Value: renderDefaults.Width, Usage: "image width"},
					&cli.IntFlag{Name: flagHeight, Value: renderDefaults.Height, Usage: "image height"},
					&cli.Float64Flag{Name: flagPadding, Value: renderDefaults.Padding, Usage: "margin around the drawing"},
					&cli.Float64Flag{Name: flagLineWidth, Value: renderDefaults.LineWidth, Usage: "wireframe line width"},
					&cli.IntFlag{
						Name:  flagWireframe,
						Value: renderDefaults.Wireframe,
						Usage: "wireframe mode: 0 fill only, 1 fill and wireframe, 2 wireframe only",
					},
					&cli.BoolFlag{Name: flagPoints, Usage: "mark the input points"},
					&cli.BoolFlag{Name: flagIndices, Usage: "label the input points with their index"},
					&cli.StringFlag{Name: flagBackground, Value: "#ffffff", Usage: "background `COLOR`"},
					&cli.StringFlag{Name: flagStroke, Value: "#000000", Usage: "wireframe `COLOR`"},
					&cli.StringFlag{Name: flagFill, Usage: "single fill `COLOR` for all triangles"},
				},
				Action: r.render,
			},
			{
				Name:  "generate",
				Usage: "generate random points",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    flagCount,
						Aliases: []string{"n"},
						Value:   100,
						Usage:   "number of points",
					},
					&cli.Float64Flag{
						Name:  flagSize,
						Value: 100,
						Usage: "points are drawn from [0, size] on both axes",
					},
					&cli.Int64Flag{
						Name:  flagSeed,
						Value: 1,
						Usage: "random seed",
					},
					&cli.BoolFlag{
						Name:  flagText,
						Usage: "write points as text",
					},
				}, outputFlags("write the point set to `FILE`")...),
				Action: r.generate,
			},
			{
				Name:      "extract",
				Usage:     "extract a point set from the edges of an image",
				ArgsUsage: "IMAGE",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: flagBlur, Value: extractDefaults.BlurRadius, Usage: "blur radius"},
					&cli.Float64Flag{Name: flagSobel, Value: extractDefaults.SobelThreshold, Usage: "sobel filter threshold"},
					&cli.UintFlag{
						Name:  flagPointsThreshold,
						Value: uint(extractDefaults.PointsThreshold),
						Usage: "minimum edge strength of a point",
					},
					&cli.IntFlag{Name: flagMaxPoints, Value: extractDefaults.MaxPoints, Usage: "maximum number of points"},
					&cli.Int64Flag{Name: flagSeed, Value: extractDefaults.Seed, Usage: "random seed"},
					&cli.BoolFlag{Name: flagText, Usage: "write points as text"},
				}, outputFlags("write the point set to `FILE`")...),
				Action: r.extract,
			},
			{
				Name:      "fetch",
				Usage:     "fetch a point set from the store",
				ArgsUsage: "ID",
				Flags: append(append([]cli.Flag{
					&cli.BoolFlag{
						Name:  flagText,
						Usage: "write points as text",
					},
				}, storeFlags()...), outputFlags("write the point set to `FILE`")...),
				Action: r.fetch,
			},
		},
	}
}
