package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"portfolio/internal/content"
	"portfolio/internal/github"
	"portfolio/internal/grpcserver"
	"portfolio/internal/markdown"
	"portfolio/pkg/utils"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default ./portfolio.yaml)")
	flag.Parse()

	cfg, err := utils.LoadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	reg, err := content.Default(markdown.New())
	if err != nil {
		logger.Fatal("Failed to load site content", zap.Error(err))
	}

	ghClient := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Account, cfg.GitHub.Timeout, logger)
	feed := github.NewFeed(ghClient, cfg.GitHub.Timeout, logger)

	listener, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatal("gRPC listen failed", zap.String("addr", cfg.GRPC.Addr), zap.Error(err))
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.UnaryLogger(logger)))
	grpcserver.RegisterContentServiceServer(grpcServer, grpcserver.NewServer(reg, feed))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
		grpcServer.GracefulStop()
	}()

	logger.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Addr))
	if err := grpcServer.Serve(listener); err != nil {
		logger.Fatal("gRPC server stopped", zap.Error(err))
	}
	logger.Info("gRPC server stopped")
}
