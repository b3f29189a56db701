package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeassist/internal/config"
	"codeassist/internal/httpserver"
	"codeassist/internal/llm"
	"codeassist/internal/metrics"
	"codeassist/internal/transport"
	"codeassist/internal/web"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	m := metrics.New()
	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)
	forwarder := llm.NewForwarder(&cfg.Groq, httpClient, logger, llm.WithRecorder(m))

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger: logger,
		Web: web.NewHandler(web.Deps{
			LLM:       forwarder,
			Logger:    logger,
			ModelName: llm.GetModelName(cfg.Groq.Model),
		}),
		Metrics: m,
	})

	// WriteTimeout не ставим: ответ ждёт модель, а у клиента таймаута по умолчанию нет.
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("model", cfg.Groq.Model))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
