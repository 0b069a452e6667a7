package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome            string          `json:"nome"             validate:"required,min=2,max=120"`
	Categoria       string          `json:"categoria"        validate:"required"`
	Fabricante      string          `json:"fabricante"`
	Efeito          *string         `json:"efeito"`
	DuracaoSegundos *int            `json:"duracao_segundos" validate:"omitempty,gt=0"`
	PrecoCompra     decimal.Decimal `json:"preco_compra"     validate:"required"`
	PrecoVenda      decimal.Decimal `json:"preco_venda"      validate:"required"`
	QtdDisponivel   int             `json:"qtd_disponivel"   validate:"min=0"`
}

type AtualizarProdutoRequest struct {
	Nome            *string          `json:"nome"             validate:"omitempty,min=2,max=120"`
	Categoria       *string          `json:"categoria"`
	Fabricante      *string          `json:"fabricante"`
	Efeito          *string          `json:"efeito"`
	DuracaoSegundos *int             `json:"duracao_segundos" validate:"omitempty,gt=0"`
	PrecoCompra     *decimal.Decimal `json:"preco_compra"`
	PrecoVenda      *decimal.Decimal `json:"preco_venda"`
}

// AjustarEstoqueRequest é o ajuste manual de quantidade (entrada ou saída).
type AjustarEstoqueRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProdutoFilter struct {
	Nome       string `form:"nome"`
	Categoria  string `form:"categoria"`
	Fabricante string `form:"fabricante"`
	Ativo      string `form:"ativo"`
	// Ordenação por valor (preço/segundo): asc | desc | none
	OrdemPreco   string `form:"ordem_preco"`
	OrdemDuracao string `form:"ordem_duracao"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID              string          `json:"id"`
	Codigo          string          `json:"codigo"`
	Nome            string          `json:"nome"`
	Categoria       string          `json:"categoria"`
	Fabricante      string          `json:"fabricante"`
	Efeito          *string         `json:"efeito"`
	DuracaoSegundos *int            `json:"duracao_segundos"`
	PrecoCompra     decimal.Decimal `json:"preco_compra"`
	PrecoVenda      decimal.Decimal `json:"preco_venda"`
	QtdDisponivel   int             `json:"qtd_disponivel"`
	Ativo           bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
