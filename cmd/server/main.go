package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CunhaBSb/m5max-sub000/internal/config"
	"github.com/CunhaBSb/m5max-sub000/internal/infra"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
	"github.com/CunhaBSb/m5max-sub000/internal/router"
	"github.com/CunhaBSb/m5max-sub000/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// NewDatabase já roda as migrações.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hub de eventos de tabela: fan-out local + ponte via redis pub/sub.
	hub := realtime.NewHub(rdb)
	hub.StartBridge(ctx)

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	solicitacaoRepo := repository.NewSolicitacaoRepository(db, hub)
	orcamentoRepo := repository.NewOrcamentoRepository(db, hub)

	workerHandlers := &worker.WorkerHandlers{
		Email: worker.NewEmailWorker(mailer, smtpCB, solicitacaoRepo),
		PDF:   worker.NewPDFWorker(orcamentoRepo, cfg.PDFStoragePath),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Reenvio periódico de avisos que falharam (solicitações sem e-mail).
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		SolicitacaoRepo:  solicitacaoRepo,
		Dispatcher:       dispatcher,
		CB:               smtpCB,
		NotificacaoEmail: cfg.NotificacaoEmail,
	})

	r := router.New(cfg, db, rdb, hub, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("m5max backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
