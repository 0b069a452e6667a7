package model

import "github.com/google/uuid"

// PK implementations feed the generic repository layer, which needs the row
// id to publish realtime change events after a mutation.

func (p Produto) PK() uuid.UUID              { return p.ID }
func (o Orcamento) PK() uuid.UUID            { return o.ID }
func (i OrcamentoProduto) PK() uuid.UUID     { return i.ID }
func (s SolicitacaoOrcamento) PK() uuid.UUID { return s.ID }
func (e Evento) PK() uuid.UUID               { return e.ID }
func (h HistoricoEstoque) PK() uuid.UUID     { return h.ID }
func (u Usuario) PK() uuid.UUID              { return u.ID }
