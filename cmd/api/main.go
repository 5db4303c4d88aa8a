package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "estate_inquiry/internal/adapters/http_server"
	"estate_inquiry/internal/adapters/mailer"
	"estate_inquiry/internal/adapters/observability"
	redisad "estate_inquiry/internal/adapters/redis"
	"estate_inquiry/internal/app"
	"estate_inquiry/internal/shared"
	mysqlrepo "estate_inquiry/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	mail, err := mailer.New(mailer.Options{
		Driver:     cfg.MailDriver,
		Domain:     cfg.MailgunDomain,
		APIKey:     cfg.MailgunAPIKey,
		MailgunURL: cfg.MailgunBaseURL,
		RPS:        cfg.MailgunRPS,
	}, cache.Client())
	if err != nil {
		log.Fatal().Err(err).Msg("mailer init failed")
	}
	log.Info().Str("driver", cfg.MailDriver).Str("domain", cfg.MailgunDomain).Msg("mailer ready")

	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL)
	inquiries := app.NewInquiryService(repo, mail, app.MailSettings{
		Domain:     cfg.MailgunDomain,
		SenderName: cfg.MailSenderName,
	})

	// http
	srv := server.New(server.Options{CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Catalog: catalog, Inquiries: inquiries})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
