// Command uploadd is a small demo server for the multiform packages: it
// accepts multipart/form-data uploads, persists file parts to a local
// directory, and echoes the parsed form back as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/multiform/binder"
	"github.com/dmitrymomot/multiform/storage"
)

type appConfig struct {
	Addr        string `env:"UPLOADD_ADDR" envDefault:":8080"`
	UploadDir   string `env:"UPLOADD_DIR" envDefault:"./uploads"`
	BaseURL     string `env:"UPLOADD_BASE_URL" envDefault:"/files/"`
	MaxBodySize int64  `env:"UPLOADD_MAX_BODY" envDefault:"10485760"`
	LogFormat   string `env:"UPLOADD_LOG_FORMAT" envDefault:"json"`
}

func main() {
	// The .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := slog.New(handler).With(slog.String("service", "uploadd"))

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg appConfig, logger *slog.Logger) error {
	store, err := storage.NewLocalStorage(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(binder.Middleware(
			binder.WithStorage(store),
			binder.WithMaxBodySize(cfg.MaxBodySize),
			binder.WithLogger(logger),
		))
		r.Post("/upload", uploadHandler(store, logger))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "upload_dir", cfg.UploadDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

type uploadedFile struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Path        string `json:"path"`
	URL         string `json:"url"`
}

type uploadResponse struct {
	Fields map[string][]string `json:"fields"`
	Files  []uploadedFile      `json:"files"`
}

func uploadHandler(store storage.Storage, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := binder.FromContext(r.Context())
		if form == nil {
			http.Error(w, "expected multipart/form-data", http.StatusUnsupportedMediaType)
			return
		}

		resp := uploadResponse{Fields: form.Fields}
		for _, uploads := range form.Files {
			for _, up := range uploads {
				resp.Files = append(resp.Files, uploadedFile{
					Field:       up.Field,
					Filename:    up.Filename,
					ContentType: up.ContentType,
					Size:        up.Size,
					Path:        up.Path,
					URL:         store.URL(up.Path),
				})
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
		}
	}
}
