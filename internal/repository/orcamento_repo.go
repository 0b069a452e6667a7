package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// OrcamentoRepository is the data access contract for budgets and their items.
type OrcamentoRepository interface {
	Create(ctx context.Context, o *model.Orcamento) error
	// FindByID carrega o orçamento com itens e produtos referenciados.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Orcamento, error)
	List(ctx context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error)
	// FindBySolicitacaoID devolve o orçamento gerado a partir de uma
	// solicitação pública, ou gorm.ErrRecordNotFound.
	FindBySolicitacaoID(ctx context.Context, solicitacaoID uuid.UUID) (*model.Orcamento, error)
	Update(ctx context.Context, o *model.Orcamento) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Itens
	CreateItem(ctx context.Context, item *model.OrcamentoProduto) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*model.OrcamentoProduto, error)
	UpdateItem(ctx context.Context, item *model.OrcamentoProduto) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// Used inside the status transition transaction.
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	UpdateValorTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error

	Notify(ctx context.Context, tipo string, id uuid.UUID)
	DB() *gorm.DB
}

type orcamentoRepo struct {
	Base[model.Orcamento]
}

func NewOrcamentoRepository(db *gorm.DB, hub *realtime.Hub) OrcamentoRepository {
	return &orcamentoRepo{Base: NewBase[model.Orcamento](db, hub, model.Orcamento{}.TableName())}
}

func (r *orcamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Orcamento, error) {
	var o model.Orcamento
	err := r.DB().WithContext(ctx).
		Preload("Itens").Preload("Itens.Produto").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orcamentoRepo) FindBySolicitacaoID(ctx context.Context, solicitacaoID uuid.UUID) (*model.Orcamento, error) {
	var o model.Orcamento
	err := r.DB().WithContext(ctx).First(&o, "solicitacao_id = ?", solicitacaoID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orcamentoRepo) List(ctx context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error) {
	query := NewQuery().
		OrderBy("created_at", Desc).
		Paginate(filter.Page, filter.Limit)
	if filter.Status != "" {
		query = query.Where("status", filter.Status)
	}

	q := r.DB().WithContext(ctx).Model(&model.Orcamento{})
	for _, c := range query.Conditions() {
		q = q.Where(c.Column+" = ?", c.Value)
	}
	if filter.NomeContratante != "" {
		q = q.Where("nome_contratante ILIKE ?", "%"+filter.NomeContratante+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orcamentos []model.Orcamento
	err := q.Preload("Itens").
		Order(query.Order()).
		Offset(query.Offset()).Limit(query.Limit()).
		Find(&orcamentos).Error
	return orcamentos, total, err
}

func (r *orcamentoRepo) CreateItem(ctx context.Context, item *model.OrcamentoProduto) error {
	if err := r.DB().WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	// Itens contam como mutação do orçamento para quem assina a tabela.
	r.Notify(ctx, realtime.EventUpdate, item.OrcamentoID)
	return nil
}

func (r *orcamentoRepo) FindItem(ctx context.Context, itemID uuid.UUID) (*model.OrcamentoProduto, error) {
	var item model.OrcamentoProduto
	err := r.DB().WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orcamentoRepo) UpdateItem(ctx context.Context, item *model.OrcamentoProduto) error {
	if err := r.DB().WithContext(ctx).Save(item).Error; err != nil {
		return err
	}
	r.Notify(ctx, realtime.EventUpdate, item.OrcamentoID)
	return nil
}

func (r *orcamentoRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.DB().WithContext(ctx).Delete(&model.OrcamentoProduto{}, "id = ?", itemID).Error
}

func (r *orcamentoRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Orcamento{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orcamentoRepo) UpdateValorTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return r.DB().WithContext(ctx).Model(&model.Orcamento{}).
		Where("id = ?", id).Update("valor_total", total).Error
}
