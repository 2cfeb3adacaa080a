package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payana-backend/internal/ads"
	"payana-backend/internal/cache"
	"payana-backend/internal/config"
	"payana-backend/internal/db"
	"payana-backend/internal/leads"
	"payana-backend/internal/media"
	"payana-backend/internal/middleware"
	"payana-backend/internal/news"
	"payana-backend/internal/notifications"
	"payana-backend/internal/system"
	"payana-backend/internal/testimonials"
	"payana-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("postgres configuration invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// A cold database at boot is tolerated; requests surface their own
	// errors and the pool reconnects on its own.
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres not reachable yet", slog.String("error", err.Error()))
	} else {
		logger.Info("postgres connected")
	}

	db.EnsureSchema(ctx, pool, logger)

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	uploader, err := media.NewCloudinary(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		logger.Error("cloudinary configuration invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}

	brevo := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail,
		cfg.BrevoSenderName, cfg.EmailRecipients, cfg.BrevoSandbox)
	var notifier leads.Notifier
	if mailer := notifications.NewLeadMailer(brevo, cfg.Timezone); mailer != nil {
		notifier = mailer
		logger.Info("lead notifications enabled",
			slog.String("sender", cfg.BrevoSenderEmail),
			slog.Int("recipients", len(cfg.EmailRecipients)),
			slog.Bool("sandbox", cfg.BrevoSandbox),
		)
	} else {
		logger.Info("lead notifications disabled")
	}

	val := validation.New()

	leadsHandler := leads.NewHandler(leads.NewService(leads.NewRepository(pool), notifier), val, logger)
	newsHandler := news.NewHandler(news.NewService(news.NewRepository(pool), uploader, logger), cacheStore, cacheTTL, logger)
	testimonialsHandler := testimonials.NewHandler(testimonials.NewService(testimonials.NewRepository(pool), uploader, logger), cacheStore, cacheTTL, logger)
	adsHandler := ads.NewHandler(ads.NewService(ads.NewRepository(pool), uploader, logger), cacheStore, cacheTTL, logger)
	systemHandler := system.NewHandler(pool, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(5 * time.Minute))

	r.Get("/health", systemHandler.Health)
	r.Get("/test-db", systemHandler.TestDB)

	r.Post("/submit-form", leadsHandler.CreateStudy)
	r.Post("/submit-work-form", leadsHandler.CreateWork)
	r.Post("/submit-invest-form", leadsHandler.CreateInvest)
	r.Get("/admin/leads/study", leadsHandler.ListStudy)
	r.Get("/admin/leads/work", leadsHandler.ListWork)
	r.Get("/admin/leads/invest", leadsHandler.ListInvest)

	r.Get("/news", newsHandler.PublicList)
	r.Post("/news", newsHandler.Create)
	r.Put("/news/{id}", newsHandler.Update)
	r.Delete("/news/{id}", newsHandler.Delete)
	r.Patch("/news/{id}/toggle", newsHandler.ToggleActive)
	r.Post("/news/{id}/view", newsHandler.IncrementViews)
	r.Get("/admin/news", newsHandler.AdminList)
	r.Get("/admin/news/stats", newsHandler.Stats)

	r.Get("/testimonials", testimonialsHandler.PublicList)
	r.Post("/testimonials", testimonialsHandler.Create)
	r.Put("/testimonials/reorder", testimonialsHandler.Reorder)
	r.Put("/testimonials/{id}", testimonialsHandler.Update)
	r.Delete("/testimonials/{id}", testimonialsHandler.Delete)
	r.Patch("/testimonials/{id}/toggle", testimonialsHandler.ToggleActive)
	r.Post("/testimonials/{id}/view", testimonialsHandler.IncrementViews)
	r.Get("/admin/testimonials", testimonialsHandler.AdminList)
	r.Get("/admin/testimonials/stats", testimonialsHandler.Stats)

	r.Get("/ads/active", adsHandler.Active)
	r.Post("/ads", adsHandler.Create)
	r.Put("/ads/{id}", adsHandler.Update)
	r.Delete("/ads/{id}", adsHandler.Delete)
	r.Patch("/ads/deactivate-all", adsHandler.DeactivateAll)
	r.Patch("/ads/{id}/set-active", adsHandler.SetActive)
	r.Get("/admin/ads", adsHandler.AdminList)
	r.Get("/admin/ads/stats", adsHandler.Stats)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
