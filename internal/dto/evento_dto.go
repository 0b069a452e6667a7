package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CriarEventoRequest deriva um evento de um orçamento confirmado.
type CriarEventoRequest struct {
	OrcamentoID string `json:"orcamento_id" validate:"required,uuid"`
	Observacoes string `json:"observacoes"  validate:"max=2000"`
}

type AtualizarEventoRequest struct {
	Observacoes    *string `json:"observacoes"      validate:"omitempty,max=2000"`
	ContratoPDFURL *string `json:"contrato_pdf_url" validate:"omitempty,url"`
}

// AlterarStatusEventoRequest pede uma transição de status do evento.
type AlterarStatusEventoRequest struct {
	Status string `json:"status" validate:"required,oneof=pendente confirmado realizado cancelado"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type EventoFilter struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EventoResponse struct {
	ID             string  `json:"id"`
	OrcamentoID    string  `json:"orcamento_id"`
	Nome           string  `json:"nome"`
	Data           *string `json:"data"`
	Local          string  `json:"local"`
	Status         string  `json:"status"`
	ConfirmadoEm   *string `json:"confirmado_em"`
	RealizadoEm    *string `json:"realizado_em"`
	CanceladoEm    *string `json:"cancelado_em"`
	Observacoes    string  `json:"observacoes"`
	ContratoPDFURL *string `json:"contrato_pdf_url"`
}

type EventoListResponse struct {
	Data  []EventoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
