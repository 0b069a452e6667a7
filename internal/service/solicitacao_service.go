package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/infra"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
	"github.com/CunhaBSb/m5max-sub000/internal/worker"
)

// SolicitacaoService handles inbound quote requests from the public site.
type SolicitacaoService interface {
	// Criar é o único caminho de escrita sem autenticação. Solicitações do
	// tipo contratar_equipe geram um orçamento pendente vinculado.
	Criar(ctx context.Context, req dto.CriarSolicitacaoRequest) (*dto.SolicitacaoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.SolicitacaoResponse, error)
	Listar(ctx context.Context, filter dto.SolicitacaoFilter) (*dto.SolicitacaoListResponse, error)

	// MarcarProcessada marca a solicitação como tratada pela equipe,
	// independente do worker de e-mail. Idempotente.
	MarcarProcessada(ctx context.Context, id uuid.UUID) (*dto.SolicitacaoResponse, error)
}

type solicitacaoService struct {
	repo          repository.SolicitacaoRepository
	orcamentoRepo repository.OrcamentoRepository
	dispatcher    *worker.Dispatcher
	// notificacaoEmail recebe o aviso interno de cada solicitação nova.
	notificacaoEmail string
}

func NewSolicitacaoService(
	repo repository.SolicitacaoRepository,
	orcamentoRepo repository.OrcamentoRepository,
	dispatcher *worker.Dispatcher,
	notificacaoEmail string,
) SolicitacaoService {
	return &solicitacaoService{
		repo:             repo,
		orcamentoRepo:    orcamentoRepo,
		dispatcher:       dispatcher,
		notificacaoEmail: notificacaoEmail,
	}
}

func (s *solicitacaoService) Criar(ctx context.Context, req dto.CriarSolicitacaoRequest) (*dto.SolicitacaoResponse, error) {
	dataEvento, err := parseDataOpcional(req.DataEvento)
	if err != nil {
		return nil, err
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = model.TipoSolicitacaoKit
	}

	sol := &model.SolicitacaoOrcamento{
		NomeCliente: req.NomeCliente,
		Whatsapp:    req.Whatsapp,
		Email:       req.Email,
		Tipo:        tipo,
		KitDesejado: req.KitDesejado,
		TipoEvento:  req.TipoEvento,
		DataEvento:  dataEvento,
		LocalEvento: req.LocalEvento,
		Observacoes: req.Observacoes,
	}
	if err := s.repo.Create(ctx, sol); err != nil {
		return nil, err
	}

	var orcamento *model.Orcamento
	if tipo == model.TipoSolicitacaoContratarEquipe {
		orcamento, err = s.criarOrcamentoAutomatico(ctx, sol)
		if err != nil {
			// A solicitação já está salva. Registra e segue, a equipe pode
			// criar o orçamento manualmente.
			log.Error().Err(err).Str("solicitacao_id", sol.ID.String()).
				Msg("falha ao gerar orcamento automatico")
			orcamento = nil
		}
	}

	if s.dispatcher != nil && s.notificacaoEmail != "" {
		payload := worker.EmailJobPayload{
			SolicitacaoID: sol.ID.String(),
			ToEmail:       s.notificacaoEmail,
			Subject:       "Nova solicitacao de orcamento — " + sol.NomeCliente,
			Body:          worker.CorpoEmailSolicitacao(sol),
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			// O cron de reenvio cobre a falha de enfileiramento.
			log.Warn().Err(err).Str("solicitacao_id", sol.ID.String()).
				Msg("falha ao enfileirar e-mail de aviso")
		}
	}

	return solicitacaoToResponse(sol, orcamento), nil
}

func (s *solicitacaoService) criarOrcamentoAutomatico(ctx context.Context, sol *model.SolicitacaoOrcamento) (*model.Orcamento, error) {
	nomeEvento := sol.TipoEvento
	if nomeEvento == "" {
		nomeEvento = fmt.Sprintf("Evento de %s", sol.NomeCliente)
	}
	contato := sol.Whatsapp
	if contato == "" {
		contato = sol.Email
	}
	o := &model.Orcamento{
		NomeContratante: sol.NomeCliente,
		Contato:         contato,
		NomeEvento:      nomeEvento,
		DataEvento:      sol.DataEvento,
		LocalEvento:     sol.LocalEvento,
		Status:          model.StatusPendente,
		SolicitacaoID:   &sol.ID,
	}
	if err := s.orcamentoRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *solicitacaoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.SolicitacaoResponse, error) {
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("solicitacao nao encontrada")
	}
	orcamento := s.orcamentoVinculado(ctx, sol.ID)
	return solicitacaoToResponse(sol, orcamento), nil
}

func (s *solicitacaoService) Listar(ctx context.Context, filter dto.SolicitacaoFilter) (*dto.SolicitacaoListResponse, error) {
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
	data := make([]dto.SolicitacaoResponse, 0, len(rows))
	for i := range rows {
		orcamento := s.orcamentoVinculado(ctx, rows[i].ID)
		data = append(data, *solicitacaoToResponse(&rows[i], orcamento))
	}
	return &dto.SolicitacaoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *solicitacaoService) MarcarProcessada(ctx context.Context, id uuid.UUID) (*dto.SolicitacaoResponse, error) {
	sol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("solicitacao nao encontrada")
	}
	if !sol.EnviadoEmail {
		if err := s.repo.MarcarEnviadoEmail(ctx, sol.ID); err != nil {
			return nil, err
		}
		sol.EnviadoEmail = true
	}
	return solicitacaoToResponse(sol, s.orcamentoVinculado(ctx, sol.ID)), nil
}

func (s *solicitacaoService) orcamentoVinculado(ctx context.Context, solicitacaoID uuid.UUID) *model.Orcamento {
	o, err := s.orcamentoRepo.FindBySolicitacaoID(ctx, solicitacaoID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("solicitacao_id", solicitacaoID.String()).
				Msg("falha ao buscar orcamento vinculado")
		}
		return nil
	}
	return o
}

func solicitacaoToResponse(s *model.SolicitacaoOrcamento, o *model.Orcamento) *dto.SolicitacaoResponse {
	resp := &dto.SolicitacaoResponse{
		ID:           s.ID.String(),
		NomeCliente:  s.NomeCliente,
		Whatsapp:     s.Whatsapp,
		Email:        s.Email,
		Tipo:         s.Tipo,
		KitDesejado:  s.KitDesejado,
		TipoEvento:   s.TipoEvento,
		LocalEvento:  s.LocalEvento,
		Observacoes:  s.Observacoes,
		EnviadoEmail: s.EnviadoEmail,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
	if s.DataEvento != nil {
		d := s.DataEvento.Format("2006-01-02")
		resp.DataEvento = &d
	}
	if o != nil {
		id := o.ID.String()
		resp.OrcamentoID = &id
	}
	if s.Whatsapp != "" {
		texto := fmt.Sprintf("Ola %s! Recebemos sua solicitacao de orcamento.", s.NomeCliente)
		resp.LinkWhatsapp = infra.LinkWhatsapp(s.Whatsapp, texto)
	}
	if s.Email != "" {
		corpo := fmt.Sprintf("Ola %s! Recebemos sua solicitacao de orcamento.", s.NomeCliente)
		resp.LinkEmail = infra.LinkMailto(s.Email, "Solicitacao de orcamento - M5 Max", corpo)
	}
	return resp
}
