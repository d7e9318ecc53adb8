package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/assist"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/research"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := newResearcher()
		cache := research.NewCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

		var interpreter *assist.Interpreter
		if cfg.Anthropic.Key != "" {
			interpreter = assist.NewInterpreter(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(r, cache, interpreter),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("serve: listening", zap.Int("port", cfg.Server.Port))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return eris.Wrap(err, "serve: shutdown")
			}
			return nil
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "serve: listen")
			}
			return nil
		}
	},
}

// newRouter builds the dashboard API routes.
func newRouter(r *research.Researcher, cache *research.Cache, interpreter *assist.Interpreter) http.Handler {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Post("/api/research", func(w http.ResponseWriter, req *http.Request) {
		var input model.CompanyInput
		if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if input.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
			return
		}

		result, err := r.Research(req.Context(), input)
		if err != nil {
			zap.L().Error("serve: research failed",
				zap.String("company", input.Name),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		cache.Set(input.Name, result)
		writeJSON(w, http.StatusOK, result)
	})

	router.Get("/api/research/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		result, ok := cache.Get(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no cached research for company"})
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	router.Post("/api/research/batch", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Companies     []model.CompanyInput `json:"companies"`
			MaxConcurrent int                  `json:"max_concurrent"`
			DelayMillis   int                  `json:"delay_millis"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || len(body.Companies) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "companies is required"})
			return
		}

		// Long-running; research continues after this request returns and
		// results land in the cache.
		go func() {
			results := r.BatchResearch(context.Background(), body.Companies, research.BatchOptions{
				MaxConcurrent: body.MaxConcurrent,
				Delay:         time.Duration(body.DelayMillis) * time.Millisecond,
			})
			for _, br := range results {
				if br.Result != nil {
					cache.Set(br.Input.Name, br.Result)
				}
			}
			zap.L().Info("serve: batch complete", zap.Int("companies", len(results)))
		}()

		writeJSON(w, http.StatusAccepted, map[string]any{
			"accepted":  len(body.Companies),
			"retrieval": "/api/research/{name}",
		})
	})

	router.Post("/api/command", func(w http.ResponseWriter, req *http.Request) {
		if interpreter == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "command interpreter not configured"})
			return
		}

		var body struct {
			Command string `json:"command"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		action, err := interpreter.Interpret(req.Context(), body.Command)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, action)
	})

	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
