package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de solicitação recebidos pelos formulários do site público.
// "contratar_equipe" gera automaticamente um orçamento pendente.
const (
	TipoSolicitacaoKit             = "kit"
	TipoSolicitacaoContratarEquipe = "contratar_equipe"
)

// SolicitacaoOrcamento é um pedido de orçamento vindo do site público,
// ainda não transformado em orçamento pela equipe.
type SolicitacaoOrcamento struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeCliente  string    `gorm:"not null"`
	Whatsapp     string
	Email        string
	Tipo         string `gorm:"not null;default:'kit'"`
	KitDesejado  string
	TipoEvento   string
	DataEvento   *time.Time
	LocalEvento  string
	Observacoes  string
	EnviadoEmail bool `gorm:"not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SolicitacaoOrcamento) TableName() string { return "solicitacoes_orcamento" }
