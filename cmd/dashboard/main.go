package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"usinagem-golang/internal/config"
	"usinagem-golang/internal/service/ai"
	"usinagem-golang/internal/service/dashboard"
	generate_excel "usinagem-golang/internal/service/generate-excel"
	"usinagem-golang/internal/storage/rtdb"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	store := rtdb.New(cfg.StoreBaseURL, cfg.StoreAuthSecret)

	dashService := dashboard.NewService(store, dashboard.DefaultPaths())
	genService := generate_excel.NewGenerateService(dashService)

	// sem chave, o dashboard sobe sem os endpoints de estimativa
	var promptService *ai.PromptService
	if cfg.GeminiAPIKey != "" {
		var err error
		promptService, err = ai.NewPromptService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("failed to init ai service", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		log.Warn("GEMINI_API_KEY ausente, endpoints de estimativa desligados")
	}

	watcher, err := dashboard.NewWatcher(context.Background(), store, dashboard.DefaultPaths().Production)
	if err != nil {
		log.Warn("inscrição no nó de produção falhou, /api/records/live desligado",
			slog.String("error", err.Error()))
	} else {
		defer watcher.Close()
	}

	log.Info("server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, store, dashService, genService, promptService, watcher),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	err = srv.ListenAndServe()
	if err != nil {
		log.Error("failed start server", slog.String("error", err.Error()))
	}

	log.Error("server stopped")
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// tudo vai para o stdout
	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// erro também vai para o arquivo
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		cloned := r.Clone()
		_ = h.errorHandler.Handle(ctx, cloned)
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envLocal, envProd:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
