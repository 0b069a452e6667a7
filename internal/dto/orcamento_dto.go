package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarOrcamentoRequest struct {
	NomeContratante string  `json:"nome_contratante" validate:"required,min=2,max=120"`
	Contato         string  `json:"contato"`
	NomeEvento      string  `json:"nome_evento"      validate:"required,min=2,max=160"`
	DataEvento      *string `json:"data_evento"      validate:"omitempty,datetime=2006-01-02"`
	LocalEvento     string  `json:"local_evento"`
	ModoPagamento   string  `json:"modo_pagamento"`
}

type AtualizarOrcamentoRequest struct {
	NomeContratante *string `json:"nome_contratante" validate:"omitempty,min=2,max=120"`
	Contato         *string `json:"contato"`
	NomeEvento      *string `json:"nome_evento"      validate:"omitempty,min=2,max=160"`
	DataEvento      *string `json:"data_evento"      validate:"omitempty,datetime=2006-01-02"`
	LocalEvento     *string `json:"local_evento"`
	ModoPagamento   *string `json:"modo_pagamento"`
}

// AdicionarItemRequest inclui um produto no orçamento. O preço unitário é
// congelado a partir do preço de venda vigente do produto.
type AdicionarItemRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
}

// AlterarStatusRequest pede uma transição de status do orçamento.
type AlterarStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type OrcamentoFilter struct {
	Status          string `form:"status"`
	NomeContratante string `form:"nome_contratante"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemOrcamentoResponse struct {
	ID            string          `json:"id"`
	ProdutoID     string          `json:"produto_id"`
	Produto       string          `json:"produto"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

type OrcamentoResponse struct {
	ID              string                  `json:"id"`
	NomeContratante string                  `json:"nome_contratante"`
	Contato         string                  `json:"contato"`
	NomeEvento      string                  `json:"nome_evento"`
	DataEvento      *string                 `json:"data_evento"`
	LocalEvento     string                  `json:"local_evento"`
	ModoPagamento   string                  `json:"modo_pagamento"`
	ValorTotal      decimal.Decimal         `json:"valor_total"`
	Status          string                  `json:"status"`
	SolicitacaoID   *string                 `json:"solicitacao_id"`
	Itens           []ItemOrcamentoResponse `json:"itens"`
	CreatedAt       string                  `json:"created_at"`
}

type OrcamentoListResponse struct {
	Data  []OrcamentoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// AlterarStatusResponse reporta o resultado da transição, inclusive se houve
// movimentação de estoque.
type AlterarStatusResponse struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	EstoqueMovimentado bool   `json:"estoque_movimentado"`
}
