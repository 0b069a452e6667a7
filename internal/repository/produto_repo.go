package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error

	// ProximoCodigo devolve o próximo código livre para a categoria,
	// no formato <PREFIXO>-NNN.
	ProximoCodigo(ctx context.Context, prefixo string) (string, error)

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	UpdateQuantidadeTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// Notify publishes a realtime change event for a tx-scoped mutation.
	Notify(ctx context.Context, tipo string, id uuid.UUID)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct {
	Base[model.Produto]
}

func NewProdutoRepository(db *gorm.DB, hub *realtime.Hub) ProdutoRepository {
	return &produtoRepo{Base: NewBase[model.Produto](db, hub, model.Produto{}.TableName())}
}

func (r *produtoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	err := r.DB().WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	q := r.DB().WithContext(ctx).Model(&model.Produto{})

	// Ativo filter: "false" = inativos, "all" = todos, qualquer outro = ativos
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}

	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.Fabricante != "" {
		q = q.Where("fabricante = ?", filter.Fabricante)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("nome ASC")
	// Limit <= 0 devolve o conjunto inteiro; o ranking por valor pagina em
	// memória depois de ordenar.
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)
	}
	var produtos []model.Produto
	err := q.Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Model(&model.Produto{}).
		Where("id = ?", id).Update("ativo", false).Error
	if err != nil {
		return err
	}
	r.Notify(ctx, realtime.EventUpdate, id)
	return nil
}

func (r *produtoRepo) Reativar(ctx context.Context, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Model(&model.Produto{}).
		Where("id = ?", id).Update("ativo", true).Error
	if err != nil {
		return err
	}
	r.Notify(ctx, realtime.EventUpdate, id)
	return nil
}

func (r *produtoRepo) ProximoCodigo(ctx context.Context, prefixo string) (string, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.Produto{}).
		Where("codigo LIKE ?", prefixo+"-%").Count(&count).Error
	if err != nil {
		return "", err
	}
	// Sequência simples por prefixo; a unique index em codigo pega colisões.
	return fmt.Sprintf("%s-%03d", prefixo, count+1), nil
}

func (r *produtoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) UpdateQuantidadeTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("qtd_disponivel", gorm.Expr("qtd_disponivel + ?", delta)).Error
}
