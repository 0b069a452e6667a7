package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// EventoRepository is the data access contract for scheduled shows.
type EventoRepository interface {
	Create(ctx context.Context, e *model.Evento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Evento, error)
	FindByOrcamentoID(ctx context.Context, orcamentoID uuid.UUID) (*model.Evento, error)
	List(ctx context.Context, filter dto.EventoFilter) ([]model.Evento, int64, error)
	Update(ctx context.Context, e *model.Evento) error

	DB() *gorm.DB
}

type eventoRepo struct {
	Base[model.Evento]
}

func NewEventoRepository(db *gorm.DB, hub *realtime.Hub) EventoRepository {
	return &eventoRepo{Base: NewBase[model.Evento](db, hub, model.Evento{}.TableName())}
}

func (r *eventoRepo) FindByOrcamentoID(ctx context.Context, orcamentoID uuid.UUID) (*model.Evento, error) {
	var e model.Evento
	err := r.DB().WithContext(ctx).First(&e, "orcamento_id = ?", orcamentoID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventoRepo) List(ctx context.Context, filter dto.EventoFilter) ([]model.Evento, int64, error) {
	query := NewQuery().
		OrderBy("data", Asc).
		Paginate(filter.Page, filter.Limit)
	if filter.Status != "" {
		query = query.Where("status", filter.Status)
	}
	return r.Base.List(ctx, query)
}
