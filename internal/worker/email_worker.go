package worker

// email_worker.go
// Processa jobs da QueueEmail: aviso de nova solicitação de orçamento para a
// caixa da equipe. O envio passa pelo circuit breaker do SMTP; sucesso marca
// enviado_email na solicitação.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/CunhaBSb/m5max-sub000/internal/infra"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

// EmailWorker processes notification email jobs from QueueEmail.
type EmailWorker struct {
	mailer          *infra.Mailer
	cb              *infra.CircuitBreaker
	solicitacaoRepo repository.SolicitacaoRepository
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, solicitacaoRepo repository.SolicitacaoRepository) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, solicitacaoRepo: solicitacaoRepo}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // payload irrecuperável — não adianta reprocessar
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, "")
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}

	if id, pErr := uuid.Parse(payload.SolicitacaoID); pErr == nil {
		if mErr := w.solicitacaoRepo.MarcarEnviadoEmail(ctx, id); mErr != nil {
			// E-mail já saiu; o cron de reenvio vai tentar de novo e duplicar
			// o aviso, o que é preferível a perder a notificação.
			log.Error().Err(mErr).Str("solicitacao_id", payload.SolicitacaoID).
				Msg("email_worker: sent but failed to mark enviado_email")
		}
	}

	log.Info().Str("to", payload.ToEmail).Msg("email_worker: notification sent")
	return nil
}
