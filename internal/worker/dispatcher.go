package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	QueueEmail = "jobs:email"
	QueuePDF   = "jobs:pdf"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// EmailJobPayload aciona o envio do aviso de nova solicitação de orçamento.
type EmailJobPayload struct {
	SolicitacaoID string `json:"solicitacao_id"`
	ToEmail       string `json:"to_email"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
}

// PDFJobPayload aciona a geração do PDF de um orçamento confirmado.
type PDFJobPayload struct {
	OrcamentoID string `json:"orcamento_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes a notification email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload, 0)
}

// EnqueuePDF pushes a budget PDF generation job to Redis.
func (d *Dispatcher) EnqueuePDF(ctx context.Context, payload PDFJobPayload) error {
	return d.enqueue(ctx, QueuePDF, "pdf", payload, 0)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any, attempts int) error {
	if d.rdb == nil {
		return nil // unit test mode — jobs são descartados
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data, Attempts: attempts}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
