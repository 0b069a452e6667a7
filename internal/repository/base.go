package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// Registro is satisfied by every persisted model: it exposes the primary key
// so the base repository can publish change events after a mutation.
type Registro interface {
	PK() uuid.UUID
}

// Base is the generic CRUD foundation shared by all repositories. Concrete
// repositories embed it and add their domain-specific queries on top.
// Every committed mutation publishes an insert/update/delete event for the
// entity's table on the realtime hub.
type Base[T Registro] struct {
	db     *gorm.DB
	hub    *realtime.Hub
	tabela string
}

// NewBase builds the generic layer for one table. hub may be nil (no events).
func NewBase[T Registro](db *gorm.DB, hub *realtime.Hub, tabela string) Base[T] {
	return Base[T]{db: db, hub: hub, tabela: tabela}
}

// List applies the query's filters, ordering and pagination, returning the
// page of rows plus the unpaginated total.
func (b *Base[T]) List(ctx context.Context, query Query) ([]T, int64, error) {
	var zero T
	q := b.db.WithContext(ctx).Model(&zero)
	for _, c := range query.Conditions() {
		q = q.Where(c.Column+" = ?", c.Value)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if order := query.Order(); order != "" {
		q = q.Order(order)
	}

	var rows []T
	err := q.Offset(query.Offset()).Limit(query.Limit()).Find(&rows).Error
	return rows, total, err
}

func (b *Base[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	err := b.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (b *Base[T]) Create(ctx context.Context, row *T) error {
	if err := b.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	b.publish(ctx, realtime.EventInsert, (*row).PK())
	return nil
}

func (b *Base[T]) Update(ctx context.Context, row *T) error {
	if err := b.db.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	b.publish(ctx, realtime.EventUpdate, (*row).PK())
	return nil
}

func (b *Base[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var zero T
	if err := b.db.WithContext(ctx).Delete(&zero, "id = ?", id).Error; err != nil {
		return err
	}
	b.publish(ctx, realtime.EventDelete, id)
	return nil
}

// DB exposes the underlying *gorm.DB so services can open transactions.
func (b *Base[T]) DB() *gorm.DB { return b.db }

// Notify publishes a change event for a mutation performed outside the base
// methods (raw updates, tx-scoped writes).
func (b *Base[T]) Notify(ctx context.Context, tipo string, id uuid.UUID) {
	b.publish(ctx, tipo, id)
}

func (b *Base[T]) publish(ctx context.Context, tipo string, id uuid.UUID) {
	if b.hub == nil {
		return
	}
	b.hub.Publish(ctx, realtime.Event{Tabela: b.tabela, Tipo: tipo, RowID: id.String()})
}
