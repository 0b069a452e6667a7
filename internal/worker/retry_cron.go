package worker

// retry_cron.go
// Goroutine de fundo que reencaminha avisos de solicitações ainda sem
// enviado_email (criadas há mais de resendAfter). Usa o circuit breaker do
// SMTP para não martelar um relay fora do ar.

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CunhaBSb/m5max-sub000/internal/infra"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

const (
	retryTickInterval = 5 * time.Minute
	retryBatchSize    = 10
	resendAfter       = 10 * time.Minute
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	SolicitacaoRepo  repository.SolicitacaoRepository
	Dispatcher       *Dispatcher
	CB               *infra.CircuitBreaker
	NotificacaoEmail string
}

// StartRetryCron launches a background goroutine that ticks every few minutes,
// queries stale unsent solicitações, and re-enqueues their notification jobs.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// CB aberto ⇒ o relay está fora; reenfileirar agora só giraria em falso.
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	cutoff := time.Now().Add(-resendAfter)
	pendentes, err := cfg.SolicitacaoRepo.ListNaoEnviadas(ctx, cutoff, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query unsent solicitações")
		return
	}
	if len(pendentes) == 0 {
		return
	}

	log.Info().Int("count", len(pendentes)).Msg("retry_cron: re-enqueueing unsent notifications")

	for i := range pendentes {
		s := &pendentes[i]
		payload := EmailJobPayload{
			SolicitacaoID: s.ID.String(),
			ToEmail:       cfg.NotificacaoEmail,
			Subject:       "Nova solicitacao de orcamento — " + s.NomeCliente,
			Body:          CorpoEmailSolicitacao(s),
		}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("solicitacao_id", s.ID.String()).
				Msg("retry_cron: failed to enqueue")
		}
	}
}

// CorpoEmailSolicitacao monta o texto do aviso enviado à equipe.
func CorpoEmailSolicitacao(s *model.SolicitacaoOrcamento) string {
	data := "a combinar"
	if s.DataEvento != nil {
		data = s.DataEvento.Format("02/01/2006")
	}
	return fmt.Sprintf(
		"Cliente: %s\nWhatsApp: %s\nEmail: %s\nTipo: %s\nKit: %s\nEvento: %s\nData: %s\nLocal: %s\n\n%s\n",
		s.NomeCliente, s.Whatsapp, s.Email, s.Tipo, s.KitDesejado, s.TipoEvento, data, s.LocalEvento, s.Observacoes,
	)
}
