package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de orçamento. A base armazena os seis estados explícitos — não há
// estado paralelo mantido fora do banco.
//
// Máquina de estados:
//
//	pendente   → processado | aprovado | confirmado | cancelado
//	processado → aprovado | confirmado | cancelado
//	aprovado   → confirmado | realizado | cancelado
//	confirmado → realizado | cancelado
//
// Movimentação de estoque ocorre apenas ao entrar no grupo aprovado
// (aprovado/confirmado/realizado) vindo de fora dele, e ao sair do grupo
// para cancelado.
const (
	StatusPendente   = "pendente"
	StatusProcessado = "processado"
	StatusAprovado   = "aprovado"
	StatusConfirmado = "confirmado"
	StatusRealizado  = "realizado"
	StatusCancelado  = "cancelado"
)

// StatusValido reporta se s é um dos seis estados aceitos.
func StatusValido(s string) bool {
	switch s {
	case StatusPendente, StatusProcessado, StatusAprovado,
		StatusConfirmado, StatusRealizado, StatusCancelado:
		return true
	}
	return false
}

// StatusComprometeEstoque reporta se s pertence ao grupo aprovado — estados
// nos quais o estoque dos itens do orçamento está reservado/baixado.
func StatusComprometeEstoque(s string) bool {
	switch s {
	case StatusAprovado, StatusConfirmado, StatusRealizado:
		return true
	}
	return false
}

var transicoes = map[string][]string{
	StatusPendente:   {StatusProcessado, StatusAprovado, StatusConfirmado, StatusCancelado},
	StatusProcessado: {StatusAprovado, StatusConfirmado, StatusCancelado},
	StatusAprovado:   {StatusConfirmado, StatusRealizado, StatusCancelado},
	StatusConfirmado: {StatusRealizado, StatusCancelado},
	StatusRealizado:  {},
	// Orçamento cancelado pode ser reaberto ou aprovado de novo.
	StatusCancelado: {StatusPendente, StatusAprovado, StatusConfirmado},
}

// TransicaoValida reporta se a mudança atual → novo é permitida pela máquina
// de estados. Transições para o mesmo estado são tratadas como no-op válido.
func TransicaoValida(atual, novo string) bool {
	if atual == novo {
		return true
	}
	for _, s := range transicoes[atual] {
		if s == novo {
			return true
		}
	}
	return false
}

// Orcamento é a proposta de preço para um evento de um contratante,
// composta por itens (OrcamentoProduto).
type Orcamento struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeContratante string    `gorm:"not null"`
	Contato         string
	NomeEvento      string `gorm:"not null"`
	DataEvento      *time.Time
	LocalEvento     string
	ModoPagamento   string
	ValorTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status          string          `gorm:"not null;default:'pendente';index"`
	SolicitacaoID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Itens []OrcamentoProduto `gorm:"foreignKey:OrcamentoID"`
}

func (Orcamento) TableName() string { return "orcamentos" }

// OrcamentoProduto é um item de orçamento: par (orçamento, produto) com
// quantidade e preço unitário congelado no momento da inclusão.
type OrcamentoProduto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrcamentoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (OrcamentoProduto) TableName() string { return "orcamentos_produtos" }

// ValorTotal do item: quantidade × preço unitário congelado.
func (i OrcamentoProduto) ValorTotal() decimal.Decimal {
	return i.PrecoUnitario.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}
