// Package main запускает HTTP-сервер проверки национальных кодов Ирана.
//
// Вызов "nationalcode check <код>" проверяет один код и завершает работу
// с кодом 0 для корректного кода и 1 для некорректного.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/nationalcode/internal/config"
	"github.com/mmeshcher/nationalcode/internal/handler"
	"github.com/mmeshcher/nationalcode/internal/metrics"
	"github.com/mmeshcher/nationalcode/internal/service"
	"github.com/mmeshcher/nationalcode/internal/validation"
)

const referenceCode = "6587452158"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "check" {
		os.Exit(runCheck(os.Stdout, os.Args[2:]))
	}

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.Level())
	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.NewService(metrics.New(reg))
	h := handler.NewHandler(svc, logger, promhttp.HandlerFor(reg, promhttp.HandlerOpts{DisableCompression: true}))

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: h.SetupRouter(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting nationalcode server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка сервера)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// runCheck проверяет код из аргументов или эталонный код и возвращает код выхода.
func runCheck(w io.Writer, args []string) int {
	code := referenceCode
	if len(args) > 0 {
		code = args[0]
	}

	valid := validation.IsValidNationalCode(code)
	fmt.Fprintln(w, valid)

	if !valid {
		return 1
	}
	return 0
}
