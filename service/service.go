package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziahq/specstudio/document"
	"github.com/ziahq/specstudio/importer"
	"github.com/ziahq/specstudio/store"
	"github.com/ziahq/specstudio/validator"
)

// Service owns the shared document and buffer and serves the editor API.
// Both are mutated only under mu and flushed to the snapshot store after
// every change.
type Service struct {
	cfg     Config
	log     zerolog.Logger
	imp     *importer.Importer
	val     *validator.Validator
	metrics *metrics
	docs    *store.DocumentStore

	mu  sync.Mutex
	doc *document.Document
}

// New creates a Service, restoring any persisted document snapshot. An
// empty StoreDir keeps snapshots in memory only.
func New(cfg Config, log zerolog.Logger) (*Service, error) {
	var backing store.Store
	if cfg.StoreDir != "" {
		fs, err := store.NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		backing = fs
	} else {
		backing = store.NewMemStore()
	}

	docs := store.NewDocumentStore(backing)
	doc := docs.LoadDocument()
	if doc == nil {
		doc = document.New()
	} else {
		log.Info().Msg("restored document snapshot")
	}

	imp := importer.New()
	imp.Logger = newZerologAdapter(log)

	return &Service{
		cfg:     cfg,
		log:     log,
		imp:     imp,
		val:     validator.New(),
		metrics: newMetrics(),
		docs:    docs,
		doc:     doc,
	}, nil
}

// Handler returns the service's route table.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("GET /api/document", s.handleGetDocument)
	mux.HandleFunc("PUT /api/document", s.handlePutDocument)
	mux.HandleFunc("GET /api/buffer", s.handleGetBuffer)
	mux.HandleFunc("PUT /api/buffer", s.handlePutBuffer)
	mux.HandleFunc("GET /ws/validate", s.handleLiveValidation)
	mux.Handle("GET /metrics", s.metrics.handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return s.logRequests(mux)
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// snapshot flushes the current document to the store. Persistence is best
// effort: failures are logged and the request proceeds.
func (s *Service) snapshot() {
	if err := s.docs.SaveDocument(s.doc); err != nil {
		s.log.Warn().Err(err).Msg("snapshot flush failed")
	}
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
