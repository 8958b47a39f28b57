// Package server exposes Delaunay triangulation of stored point sets over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"goji.io"
	"goji.io/pat"
	"golang.org/x/sync/errgroup"

	"github.com/esimov/triangulator"
	"github.com/esimov/triangulator/client"
	"github.com/esimov/triangulator/codec"
)

// PointSetFetcher retrieves the binary encoding of a stored point set.
type PointSetFetcher interface {
	GetPointSet(ctx context.Context, id string) ([]byte, error)
}

// Server handles triangulation requests.
type Server struct {
	cfg     Config
	fetcher PointSetFetcher
	logger  golog.Logger
	handler http.Handler
}

// New returns a Server. When fetcher is nil, point sets are fetched from
// cfg.StoreURL.
func New(cfg Config, fetcher PointSetFetcher, logger golog.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if fetcher == nil {
		fetcher = client.New(client.Options{
			StoreURL: cfg.StoreURL,
			Timeout:  cfg.Timeout,
		}, logger.Named("client"))
	}
	s := &Server{cfg: cfg, fetcher: fetcher, logger: logger}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	mux := goji.NewMux()
	mux.Use(s.accessLog)

	mux.HandleFunc(pat.Get("/healthz"), s.healthz)
	mux.HandleFunc(pat.Get("/triangulation/:id"), s.triangulation)
	mux.HandleFunc(pat.New("/triangulation/:id"), s.methodNotAllowed)
	mux.HandleFunc(pat.New("/*"), s.notFound)

	if s.cfg.CORS {
		return cors.AllowAll().Handler(mux)
	}
	return mux
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Debugw("failed to write health response", "error", err)
	}
}

// triangulation fetches a point set, triangulates it and answers with the
// binary encoding of the points followed by the triangles.
func (s *Server) triangulation(w http.ResponseWriter, r *http.Request) {
	id := pat.Param(r, "id")
	if err := client.ValidateID(id); err != nil {
		s.fail(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	data, err := s.fetcher.GetPointSet(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	points, err := codec.DecodePointSet(data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	triangles, stats, err := triangulator.TriangulateWithStats(points)
	if err != nil {
		s.fail(w, r, errors.Wrapf(err, "point set %s", id))
		return
	}
	s.logger.Debugw("triangulated point set",
		"id", id,
		"points", stats.Points,
		"skipped", stats.Skipped,
		"triangles", stats.Triangles,
		"elapsed", time.Since(start),
	)

	body, err := codec.EncodeTriangles(points, triangles)
	if err != nil {
		s.fail(w, r, errors.Wrap(err, "encoding triangulation"))
		return
	}

	w.Header().Set("Content-Type", contentTypeOctetStream)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		s.logger.Debugw("failed to write triangulation", "id", id, "error", err)
	}
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	s.writeError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
		"method "+r.Method+" is not allowed on "+r.URL.Path)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, CodeNotFound, "no route for "+r.URL.Path)
}

// statusRecorder remembers the status code and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rec *statusRecorder) WriteHeader(status int) {
	if rec.status == 0 {
		rec.status = status
	}
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	logger := s.logger.Desugar()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.size),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Infow("serving", "addr", ln.Addr().String(), "store", s.cfg.StoreURL)
		if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}
