package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/command"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/history"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/server"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	e, err := command.NewExpander(cfg.Expand)
	if err != nil {
		return fmt.Errorf("build expander: %w", err)
	}

	rec, closeHistory, err := history.Open(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if closeHistory != nil {
		defer func() { _ = closeHistory() }()
		slog.Info("History enabled", "prefix", cfg.Redis.Prefix, "max-len", cfg.Redis.MaxLen)
	}

	gin.SetMode(gin.ReleaseMode)
	h := server.NewHandler(e, rec, cfg.Server.MaxBytes)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.NewEngine(h, cfg.Server.CORSOrigins),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  cfg.Server.Idletime,
	}

	// 启动服务器（非阻塞）
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", cfg.Server.Addr, "contractions", e.Table().Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待中断信号或启动失败
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-errCh:
		if ok {
			slog.Error("Server error", "error", err)
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
		return nil
	case <-sigChan:
	case <-ctx.Done():
	}

	slog.Info("Shutting down")

	// 使用 WithoutCancel 保持 context 链，同时防止父 context 取消影响 shutdown
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)

		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server stopped gracefully")

	return nil
}
