package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/okian/medalboard/internal/adapters/mcp"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/config"
	"github.com/okian/medalboard/pkg/logger"
)

const (
	serverName    = "medalboard"
	serverVersion = "1.0.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// stdout carries the protocol.
	if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	dash := service.New(append(service.FromConfig(cfg), service.WithLogger(log.Named("dashboard")))...)
	if err := dash.Start(ctx); err != nil {
		log.Error(ctx, "failed to start dashboard", logger.Error(err))
		os.Exit(1)
	}
	defer dash.Stop()

	s := server.NewMCPServer(serverName, serverVersion)
	mcp.New(dash).Register(s)

	log.Info(ctx, "serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		log.Error(ctx, "MCP server failed", logger.Error(err))
		os.Exit(1)
	}
}
