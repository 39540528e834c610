package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/journey"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
	"github.com/derichenko12/BeyondHomeV3/pkg/recommend"
	"github.com/derichenko12/BeyondHomeV3/pkg/validation"
)

// Options configures a Server.
type Options struct {
	Port         int
	Catalog      *catalog.Catalog
	CatalogPath  string
	WatchCatalog bool
	Pipeline     journey.Pipeline
	DefaultMode  string
	Logger       *slog.Logger
}

// Server exposes one in-memory journey over HTTP. Requests are serialised;
// there is a single session, not one per user.
type Server struct {
	port         int
	catalogPath  string
	watchCatalog bool
	logger       *slog.Logger

	mu      sync.Mutex
	journey *journey.Journey
}

// New creates a server around a fresh journey.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jopts := []journey.Option{journey.WithLogger(logger)}
	if len(opts.Pipeline.Steps) > 0 {
		jopts = append(jopts, journey.WithPipeline(opts.Pipeline))
	}
	if opts.DefaultMode != "" {
		jopts = append(jopts, journey.WithDefaultMode(opts.DefaultMode))
	}
	return &Server{
		port:         opts.Port,
		catalogPath:  opts.CatalogPath,
		watchCatalog: opts.WatchCatalog,
		logger:       logger,
		journey:      journey.New(opts.Catalog, jopts...),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("GET /api/journey", s.handleJourney)
	mux.HandleFunc("POST /api/journey/next", s.handleNext)
	mux.HandleFunc("POST /api/journey/back", s.handleBack)
	mux.HandleFunc("POST /api/journey/restart", s.handleRestart)
	mux.HandleFunc("POST /api/journey/decision", s.handleDecision)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/receipt", s.handleReceipt)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// Start serves until ctx is cancelled. With catalog watching enabled, edits
// to the catalog file are validated and applied to the live journey.
func (s *Server) Start(ctx context.Context) error {
	if s.watchCatalog && s.catalogPath != "" {
		w, err := catalog.NewWatcher(s.catalogPath, s.logger)
		if err != nil {
			return fmt.Errorf("creating catalog watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			w.Stop()
			return fmt.Errorf("watching catalog: %w", err)
		}
		defer w.Stop()
		go s.consumeReloads(w.Reloads)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("BeyondHome server starting", "addr", "http://localhost"+srv.Addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) consumeReloads(reloads <-chan catalog.Reload) {
	for r := range reloads {
		s.applyReload(r)
	}
}

// applyReload swaps in a reloaded catalog unless it fails to load or
// validate, in which case the current one stays.
func (s *Server) applyReload(r catalog.Reload) bool {
	if r.Err != nil {
		s.logger.Warn("catalog reload failed", "error", r.Err)
		return false
	}
	if report := validation.ValidateCatalog(r.Catalog); !report.Valid {
		s.logger.Warn("reloaded catalog is invalid, keeping previous", "summary", report.Summary)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journey.SetCatalog(r.Catalog)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>BeyondHome</title></head>
<body style="margin:0;background:#f6f3ea;color:#222;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>BeyondHome</h1>
<p>The journey API lives under <code>/api/journey</code>. Run <code>beyondhome tui</code> for the interactive planner.</p>
</div>
</body></html>`)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	cat := s.journey.Catalog()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ranked []recommend.Ranked
	if q := r.URL.Query().Get("tags"); q != "" {
		ranked = recommend.Rank(s.journey.Catalog().Regions, strings.Split(q, ","))
	} else {
		ranked = s.journey.RankedRegions()
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleJourney(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.journey.Snapshot())
}

// moveResponse reports whether a transition happened along with the new state.
type moveResponse struct {
	Moved bool          `json:"moved"`
	State journey.State `json:"state"`
}

func (s *Server) handleNext(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.journey.Next()
	writeJSON(w, http.StatusOK, moveResponse{Moved: moved, State: s.journey.Snapshot()})
}

func (s *Server) handleBack(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.journey.Back()
	writeJSON(w, http.StatusOK, moveResponse{Moved: moved, State: s.journey.Snapshot()})
}

func (s *Server) handleRestart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journey.Restart()
	writeJSON(w, http.StatusOK, moveResponse{Moved: true, State: s.journey.Snapshot()})
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	var a Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid action JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	applied, err := a.Apply(s.journey)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, decisionResponse{Applied: applied, State: s.journey.Snapshot()})
}

type decisionResponse struct {
	Applied bool          `json:"applied"`
	State   journey.State `json:"state"`
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, journey.Validate(s.journey))
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	format, err := receipt.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.URL.Query().Get("format") == "" {
		format = receipt.FormatJSON
	}

	s.mu.Lock()
	if !s.journey.Done() {
		step := s.journey.Current()
		s.mu.Unlock()
		writeError(w, http.StatusConflict, fmt.Sprintf("journey is at step %s, not at the receipt", step))
		return
	}
	bundle := receipt.Build(receipt.FromJourney(s.journey))
	s.mu.Unlock()

	switch format {
	case receipt.FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case receipt.FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	if err := receipt.Write(w, bundle, format); err != nil {
		s.logger.Error("writing receipt", "error", err)
	}
}
