package model

import (
	"time"

	"github.com/google/uuid"
)

// Status de evento.
const (
	EventoPendente   = "pendente"
	EventoConfirmado = "confirmado"
	EventoRealizado  = "realizado"
	EventoCancelado  = "cancelado"
)

// Evento é o show agendado derivado de um orçamento confirmado (1–1).
type Evento struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrcamentoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Nome           string    `gorm:"not null"`
	Data           *time.Time
	Local          string
	Status         string `gorm:"not null;default:'pendente';index"`
	ConfirmadoEm   *time.Time
	RealizadoEm    *time.Time
	CanceladoEm    *time.Time
	Observacoes    string
	ContratoPDFURL *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Orcamento *Orcamento `gorm:"foreignKey:OrcamentoID"`
}

func (Evento) TableName() string { return "eventos" }
