package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/internal/ambient"
	"portfolio/internal/auth"
	"portfolio/internal/blog"
	"portfolio/internal/contact"
	"portfolio/internal/content"
	"portfolio/internal/github"
	"portfolio/internal/inbox"
	"portfolio/internal/markdown"
	"portfolio/internal/site"
	"portfolio/pkg/database"
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

	dbCfg := database.DefaultConfig(cfg.DB.Path)
	db, err := database.Open(dbCfg)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("DB migrate failed", zap.Error(err))
	}

	md := markdown.New()
	reg, err := content.Default(md)
	if err != nil {
		logger.Fatal("Failed to load site content", zap.Error(err))
	}

	ghClient := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Account, cfg.GitHub.Timeout, logger)
	feed := github.NewFeed(ghClient, cfg.GitHub.Timeout, logger)

	var deliverer contact.Deliverer
	switch cfg.Contact.Mode {
	case utils.ContactModeEmailJS:
		deliverer = contact.NewEmailJS(cfg.EmailJS, cfg.Contact.Timeout, logger)
	default:
		deliverer = &contact.Mailto{Recipient: cfg.Contact.Recipient}
	}
	contactRepo := contact.NewRepo(db)
	inboxHub := inbox.NewHub(logger)
	flows := contact.NewFlows(deliverer, inbox.NewArchive(contactRepo, inboxHub), contact.FlowOptions{
		AckDuration: cfg.Contact.AckDuration,
		ResetDelay:  cfg.Contact.ResetDelay,
	}, logger)
	contactHandler := contact.NewHandler(flows, contactRepo, logger)

	loop := ambient.NewLoop(cfg.Ambient.FPS)
	ambientHandler := ambient.NewHandler(loop, uint64(cfg.Ambient.Seed), logger)

	sessions := blog.NewSessions()
	margin, err := blog.ParseRootMargin(blog.DefaultRootMargin)
	if err != nil {
		logger.Fatal("Invalid scroll spy margin", zap.Error(err))
	}

	tokens, err := auth.NewTokenService(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.JWTDuration)
	if err != nil {
		logger.Fatal("Failed to create token service", zap.Error(err))
	}
	authHandler := auth.NewHandler(cfg.Admin.PasswordHash, tokens, logger)

	composer, err := site.NewComposer(reg, feed, md, cfg.Site.BaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to build page composer", zap.Error(err))
	}
	tmpl, err := site.ParseTemplates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"ambient":  ambientHandler.Stats(),
			"reading":  sessions.Stats(),
			"contact":  gin.H{"mode": flows.Mode(), "sessions": flows.Len()},
			"inbox":    inboxHub.Stats(),
			"projects": feed.State().Status,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	api := router.Group("/api")
	content.NewHandler(reg).RegisterRoutes(api.Group("/posts"))
	github.NewHandler(feed).RegisterRoutes(api.Group("/projects"))
	ambientHandler.RegisterRoutes(api.Group("/ambient"))

	router.GET("/ws/ambient", ambientHandler.WSHandler)
	router.GET("/ws/read/:id", blog.ReadingHandler(reg, sessions, margin, logger))

	contactHandler.RegisterRoutes(&router.RouterGroup)

	admin := router.Group("/admin")
	authHandler.RegisterRoutes(admin)
	if !cfg.Admin.Enabled() {
		logger.Info("Admin password hash not set; admin API disabled")
	}
	protected := admin.Group("")
	protected.Use(auth.AuthMiddleware(tokens))
	contactHandler.RegisterAdminRoutes(protected)
	protected.GET("/ws/messages", inbox.WSHandler(inboxHub))

	site.NewHandler(composer, contactHandler, logger).RegisterRoutes(router)

	// warm the project feed so the first portfolio visit rarely waits
	feed.Refresh(context.Background())

	// cancelled on shutdown so hijacked websocket requests wind down too
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("contact_mode", flows.Mode()),
			zap.String("db", dbCfg.Path))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("Server error", zap.Error(err))
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}
	cancelBase()
	flows.Close()
	loop.Wait()

	wg.Wait()
	logger.Info("Server stopped")
}
