package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryZeroValue(t *testing.T) {
	q := NewQuery()

	assert.Empty(t, q.Conditions())
	assert.Equal(t, "", q.Order())
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 20, q.Limit())
	assert.Equal(t, 0, q.Offset())
}

func TestQueryWhereAcumulaFiltros(t *testing.T) {
	q := NewQuery().
		Where("status", "pendente").
		Where("tipo", nil). // nil é ignorado
		Where("ativo", true)

	conds := q.Conditions()
	assert.Len(t, conds, 2)
	assert.Equal(t, "status", conds[0].Column)
	assert.Equal(t, "pendente", conds[0].Value)
	assert.Equal(t, "ativo", conds[1].Column)
}

func TestQueryWhereNaoMutaOriginal(t *testing.T) {
	base := NewQuery().Where("status", "pendente")
	_ = base.Where("tipo", "kit")

	assert.Len(t, base.Conditions(), 1)
}

func TestQueryOrder(t *testing.T) {
	assert.Equal(t, "created_at DESC", NewQuery().OrderBy("created_at", Desc).Order())
	assert.Equal(t, "nome ASC", NewQuery().OrderBy("nome", Asc).Order())
	// Direção inválida cai para ASC.
	assert.Equal(t, "nome ASC", NewQuery().OrderBy("nome", Direction("sideways")).Order())
}

func TestQueryPaginacaoComClamp(t *testing.T) {
	q := NewQuery().Paginate(3, 50)
	assert.Equal(t, 3, q.Page())
	assert.Equal(t, 50, q.Limit())
	assert.Equal(t, 100, q.Offset())

	// Valores fora de faixa são normalizados.
	q = NewQuery().Paginate(-1, 0)
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 20, q.Limit())

	q = NewQuery().Paginate(1, 9999)
	assert.Equal(t, 20, q.Limit())
}
