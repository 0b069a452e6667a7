package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

// Transições de status de evento. Evento realizado é terminal.
var transicoesEvento = map[string][]string{
	model.EventoPendente:   {model.EventoConfirmado, model.EventoCancelado},
	model.EventoConfirmado: {model.EventoRealizado, model.EventoCancelado},
	model.EventoRealizado:  {},
	model.EventoCancelado:  {model.EventoPendente, model.EventoConfirmado},
}

// EventoService manages scheduled shows derived from confirmed budgets.
type EventoService interface {
	// Criar deriva um evento de um orçamento do grupo aprovado. Cada
	// orçamento gera no máximo um evento.
	Criar(ctx context.Context, req dto.CriarEventoRequest) (*dto.EventoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.EventoResponse, error)
	Listar(ctx context.Context, filter dto.EventoFilter) (*dto.EventoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarEventoRequest) (*dto.EventoResponse, error)
	// AlterarStatus aplica a transição e carimba o timestamp do novo estado.
	AlterarStatus(ctx context.Context, id uuid.UUID, req dto.AlterarStatusEventoRequest) (*dto.EventoResponse, error)
}

type eventoService struct {
	repo          repository.EventoRepository
	orcamentoRepo repository.OrcamentoRepository
}

func NewEventoService(repo repository.EventoRepository, orcamentoRepo repository.OrcamentoRepository) EventoService {
	return &eventoService{repo: repo, orcamentoRepo: orcamentoRepo}
}

func (s *eventoService) Criar(ctx context.Context, req dto.CriarEventoRequest) (*dto.EventoResponse, error) {
	orcamentoID, err := uuid.Parse(req.OrcamentoID)
	if err != nil {
		return nil, errors.New("orcamento_id invalido")
	}

	o, err := s.orcamentoRepo.FindByID(ctx, orcamentoID)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if !model.StatusComprometeEstoque(o.Status) {
		return nil, fmt.Errorf("orcamento em status %q nao pode gerar evento", o.Status)
	}

	if _, err := s.repo.FindByOrcamentoID(ctx, orcamentoID); err == nil {
		return nil, errors.New("orcamento ja possui evento")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e := &model.Evento{
		OrcamentoID: o.ID,
		Nome:        o.NomeEvento,
		Data:        o.DataEvento,
		Local:       o.LocalEvento,
		Status:      model.EventoPendente,
		Observacoes: req.Observacoes,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return eventoToResponse(e), nil
}

func (s *eventoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.EventoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("evento nao encontrado")
	}
	return eventoToResponse(e), nil
}

func (s *eventoService) Listar(ctx context.Context, filter dto.EventoFilter) (*dto.EventoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.EventoResponse, 0, len(rows))
	for i := range rows {
		data = append(data, *eventoToResponse(&rows[i]))
	}
	return &dto.EventoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *eventoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarEventoRequest) (*dto.EventoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("evento nao encontrado")
	}
	if req.Observacoes != nil {
		e.Observacoes = *req.Observacoes
	}
	if req.ContratoPDFURL != nil {
		e.ContratoPDFURL = req.ContratoPDFURL
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return eventoToResponse(e), nil
}

func (s *eventoService) AlterarStatus(ctx context.Context, id uuid.UUID, req dto.AlterarStatusEventoRequest) (*dto.EventoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("evento nao encontrado")
	}
	if e.Status == req.Status {
		return eventoToResponse(e), nil
	}
	if !transicaoEventoValida(e.Status, req.Status) {
		return nil, fmt.Errorf("transicao de status invalida: %s -> %s", e.Status, req.Status)
	}

	agora := time.Now()
	e.Status = req.Status
	switch req.Status {
	case model.EventoConfirmado:
		e.ConfirmadoEm = &agora
	case model.EventoRealizado:
		e.RealizadoEm = &agora
	case model.EventoCancelado:
		e.CanceladoEm = &agora
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return eventoToResponse(e), nil
}

func transicaoEventoValida(atual, novo string) bool {
	for _, s := range transicoesEvento[atual] {
		if s == novo {
			return true
		}
	}
	return false
}

func eventoToResponse(e *model.Evento) *dto.EventoResponse {
	resp := &dto.EventoResponse{
		ID:             e.ID.String(),
		OrcamentoID:    e.OrcamentoID.String(),
		Nome:           e.Nome,
		Local:          e.Local,
		Status:         e.Status,
		Observacoes:    e.Observacoes,
		ContratoPDFURL: e.ContratoPDFURL,
	}
	if e.Data != nil {
		d := e.Data.Format("2006-01-02")
		resp.Data = &d
	}
	resp.ConfirmadoEm = formatTimestamp(e.ConfirmadoEm)
	resp.RealizadoEm = formatTimestamp(e.RealizadoEm)
	resp.CanceladoEm = formatTimestamp(e.CanceladoEm)
	return resp
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
