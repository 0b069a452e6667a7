package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// SolicitacaoRepository is the data access contract for inbound quote requests.
type SolicitacaoRepository interface {
	Create(ctx context.Context, s *model.SolicitacaoOrcamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitacaoOrcamento, error)
	List(ctx context.Context, filter dto.SolicitacaoFilter) ([]model.SolicitacaoOrcamento, int64, error)
	MarcarEnviadoEmail(ctx context.Context, id uuid.UUID) error

	// ListNaoEnviadas devolve solicitações ainda sem e-mail de aviso,
	// criadas antes de cutoff — alimenta o cron de reenvio.
	ListNaoEnviadas(ctx context.Context, cutoff time.Time, limit int) ([]model.SolicitacaoOrcamento, error)

	DB() *gorm.DB
}

type solicitacaoRepo struct {
	Base[model.SolicitacaoOrcamento]
}

func NewSolicitacaoRepository(db *gorm.DB, hub *realtime.Hub) SolicitacaoRepository {
	return &solicitacaoRepo{
		Base: NewBase[model.SolicitacaoOrcamento](db, hub, model.SolicitacaoOrcamento{}.TableName()),
	}
}

func (r *solicitacaoRepo) List(ctx context.Context, filter dto.SolicitacaoFilter) ([]model.SolicitacaoOrcamento, int64, error) {
	query := NewQuery().
		OrderBy("created_at", Desc).
		Paginate(filter.Page, filter.Limit)
	if filter.Tipo != "" {
		query = query.Where("tipo", filter.Tipo)
	}
	if filter.EnviadoEmail != nil {
		query = query.Where("enviado_email", *filter.EnviadoEmail)
	}
	return r.Base.List(ctx, query)
}

func (r *solicitacaoRepo) MarcarEnviadoEmail(ctx context.Context, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Model(&model.SolicitacaoOrcamento{}).
		Where("id = ?", id).Update("enviado_email", true).Error
	if err != nil {
		return err
	}
	r.Notify(ctx, realtime.EventUpdate, id)
	return nil
}

func (r *solicitacaoRepo) ListNaoEnviadas(ctx context.Context, cutoff time.Time, limit int) ([]model.SolicitacaoOrcamento, error) {
	var rows []model.SolicitacaoOrcamento
	err := r.DB().WithContext(ctx).
		Where("enviado_email = false AND created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
