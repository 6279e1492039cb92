package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mmo-observer/mmo_uploader/analyzers"
	"github.com/mmo-observer/mmo_uploader/handlers"
	"github.com/mmo-observer/mmo_uploader/inits"
	"github.com/mmo-observer/mmo_uploader/middleware"
	"github.com/mmo-observer/mmo_uploader/operations"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file loaded, using process environment")
	}
	cfg := inits.LoadConfig()

	router := setupRouter(cfg, newAnalyzer(cfg), operations.NewWebhookLogger(cfg.WebhookURL, cfg.WebhookTimeout))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("MMO listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func newAnalyzer(cfg *inits.Config) analyzers.Analyzer {
	if cfg.AnalyzerURL != "" {
		log.Printf("Using remote analyzer at %s", cfg.AnalyzerURL)
		return analyzers.NewRemoteAnalyzer(cfg.AnalyzerURL, cfg.AnalyzerMaxSide, cfg.AnalyzerTimeout)
	}
	log.Println("Using stub analyzer")
	return analyzers.NewStubAnalyzer()
}

func setupRouter(cfg *inits.Config, analyzer analyzers.Analyzer, logger handlers.RowLogger) *gin.Engine {
	router := gin.Default()
	// Uploads above this spill to temp files instead of memory.
	router.MaxMultipartMemory = 8 << 20
	router.SetHTMLTemplate(handlers.Templates())

	router.Use(middleware.RequestID())
	if len(cfg.AllowedHosts) > 0 {
		router.Use(middleware.DomainWhitelistMiddleware(cfg.AllowedHosts))
	}
	if cfg.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitLookups))
	}

	h := handlers.NewHandler(cfg, analyzer, logger)
	router.GET("/", h.Index)
	router.GET("/health", h.Health)
	router.POST("/upload", h.Upload)
	return router
}
