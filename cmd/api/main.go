package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rsnteam/telemart-golang/internal/config"
	"github.com/rsnteam/telemart-golang/internal/database"
	"github.com/rsnteam/telemart-golang/internal/email"
	"github.com/rsnteam/telemart-golang/internal/handlers"
	"github.com/rsnteam/telemart-golang/internal/logger"
	"github.com/rsnteam/telemart-golang/internal/routes"
	"github.com/rsnteam/telemart-golang/internal/service"
	"github.com/rsnteam/telemart-golang/internal/session"
	"github.com/rsnteam/telemart-golang/internal/store"
	"github.com/rsnteam/telemart-golang/internal/store/memorystore"
	"github.com/rsnteam/telemart-golang/internal/store/mysqlstore"
)

func main() {
	// 0. --- Configuration (.env + environment) ---
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := config.Values

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 1. --- Persistence ---
	var st store.Storage
	if cfg.DatabaseDSN != "" {
		db, err := database.OpenDB(cfg.DatabaseDSN)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		st = mysqlstore.New(db)
	} else {
		logger.Log.Warnln("DB_DSN is empty; using the in-memory store (data is lost on restart)")
		st = memorystore.New()
	}

	// 2. --- Session Store ---
	var sessions session.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			logger.Log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cancel()
		defer client.Close()

		sessions = session.NewRedisStore(client)
	} else {
		logger.Log.Warnln("REDIS_ADDR is empty; sessions are process-local and die with the server")
		sessions = session.NewMemoryStore()
	}

	// 3. --- Mailer ---
	var mailer email.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	} else {
		logger.Log.Warnln("SMTP_HOST is empty; cart emails are logged instead of sent")
		mailer = email.NewLogMailer()
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Store:    st,
		Sessions: sessions,
		Cart:     service.NewCartService(st, mailer),
		Cfg:      cfg,
	}

	router := routes.SetupRouter(app)

	logger.Log.Infof("Starting TeleMart API server on %s", cfg.RunAddr)
	if err := router.Run(cfg.RunAddr); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
