package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto é um artigo pirotécnico do catálogo (torta, kit, metralha, etc).
// Codigo é único e prefixado pela categoria (ex.: TRT-012, KIT-003).
type Produto struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo          string    `gorm:"uniqueIndex;not null"`
	Nome            string    `gorm:"index;not null"`
	Categoria       string    `gorm:"index;not null"`
	Fabricante      string
	Efeito          *string
	// DuracaoSegundos é opcional: produtos sem duração conhecida ficam fora
	// de qualquer ordenação por valor (preço/segundo).
	DuracaoSegundos *int
	PrecoCompra     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoVenda      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	QtdDisponivel   int             `gorm:"not null;default:0"`
	Ativo           bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default pluralization for the Portuguese schema.
func (Produto) TableName() string { return "produtos" }
