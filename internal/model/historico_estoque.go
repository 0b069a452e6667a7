package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimentação no histórico de estoque.
const (
	MovimentoEntrada = "entrada"
	MovimentoSaida   = "saida"
)

// HistoricoEstoque registra cada mudança de quantidade de um produto.
// Ledger append-only: criado na aprovação/cancelamento de orçamentos e em
// ajustes manuais, nunca alterado depois.
type HistoricoEstoque struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	QtdAnterior int       `gorm:"not null"`
	Delta       int       `gorm:"not null"` // positivo = entrada, negativo = saída
	QtdNova     int       `gorm:"not null"`
	Tipo        string    `gorm:"not null"` // "entrada" | "saida"
	Motivo      string
	OrcamentoID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (HistoricoEstoque) TableName() string { return "historico_estoque" }
