package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stockpilot/internal/config"
	httpapi "stockpilot/internal/http"
	"stockpilot/internal/llm"
	"stockpilot/internal/prompt"
	"stockpilot/internal/service"

	_ "stockpilot/docs"
)

// @title Inventory Assistant API
// @version 1.0
// @description Inventory dashboard with a conversational assistant.
// @BasePath /api/v1
func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	gin.SetMode(cfg.GinMode)

	var completer llm.Completer
	if cfg.GeminiKey != "" {
		g, err := llm.NewGemini(context.Background(), cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature)
		if err != nil {
			// not fatal: replies will explain the missing credential
			slog.Error("gemini client unavailable", "err", err)
		} else {
			completer = g
		}
	}
	gateway := llm.NewGateway(cfg.GeminiKey, completer)

	now := cfg.Now()
	assistant := service.NewAssistantService(prompt.NewAssembler(now), gateway)
	inventory := service.NewInventoryService(assistant, now)
	orders := service.NewOrderService()
	sessions := service.NewSessionManager(service.SeedInventory())
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessions.Run(janitorCtx, time.Hour)

	srv := httpapi.NewServer(httpapi.NewCookieStore(cfg.SessionKey, cfg.CookieSecure), sessions, assistant, inventory, orders)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr, "model", cfg.GeminiModel, "model_configured", gateway.Configured())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopJanitor()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
}
