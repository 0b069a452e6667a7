package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// HistoricoFilter defines filters for listing stock history entries.
type HistoricoFilter struct {
	ProdutoID *uuid.UUID
	Tipo      string
	Page      int
	Limit     int
}

// HistoricoEstoqueRepository is the append-only stock ledger contract.
type HistoricoEstoqueRepository interface {
	Create(ctx context.Context, h *model.HistoricoEstoque) error
	CreateTx(tx *gorm.DB, h *model.HistoricoEstoque) error
	List(ctx context.Context, filter HistoricoFilter) ([]model.HistoricoEstoque, int64, error)
}

type historicoEstoqueRepo struct {
	Base[model.HistoricoEstoque]
}

func NewHistoricoEstoqueRepository(db *gorm.DB, hub *realtime.Hub) HistoricoEstoqueRepository {
	return &historicoEstoqueRepo{
		Base: NewBase[model.HistoricoEstoque](db, hub, model.HistoricoEstoque{}.TableName()),
	}
}

func (r *historicoEstoqueRepo) CreateTx(tx *gorm.DB, h *model.HistoricoEstoque) error {
	return tx.Create(h).Error
}

func (r *historicoEstoqueRepo) List(ctx context.Context, filter HistoricoFilter) ([]model.HistoricoEstoque, int64, error) {
	q := r.DB().WithContext(ctx).Model(&model.HistoricoEstoque{}).Preload("Produto")
	if filter.ProdutoID != nil {
		q = q.Where("produto_id = ?", *filter.ProdutoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var historico []model.HistoricoEstoque
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&historico).Error
	return historico, total, err
}
