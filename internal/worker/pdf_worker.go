package worker

// pdf_worker.go
// Gera o documento PDF de um orçamento confirmado em background, fora do
// caminho da requisição que fez a transição de status.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/CunhaBSb/m5max-sub000/internal/infra"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

// PDFWorker processes budget PDF jobs from QueuePDF.
type PDFWorker struct {
	orcamentoRepo repository.OrcamentoRepository
	storagePath   string
}

func NewPDFWorker(orcamentoRepo repository.OrcamentoRepository, storagePath string) *PDFWorker {
	return &PDFWorker{orcamentoRepo: orcamentoRepo, storagePath: storagePath}
}

func (w *PDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload PDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return nil
	}

	id, err := uuid.Parse(payload.OrcamentoID)
	if err != nil {
		log.Error().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: invalid id")
		return nil
	}

	o, err := w.orcamentoRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: orcamento not found")
		return err
	}

	path, err := infra.GerarOrcamentoPDF(o, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("pdf_worker: generation failed")
		return err
	}

	log.Info().Str("orcamento_id", payload.OrcamentoID).Str("path", path).Msg("pdf_worker: document generated")
	return nil
}
