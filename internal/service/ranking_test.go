package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

func produtoRank(nome string, preco float64, duracao *int) model.Produto {
	return model.Produto{
		Nome:            nome,
		PrecoVenda:      decimal.NewFromFloat(preco),
		DuracaoSegundos: duracao,
		Ativo:           true,
	}
}

func dur(s int) *int { return &s }

func nomes(produtos []model.Produto) []string {
	out := make([]string, len(produtos))
	for i, p := range produtos {
		out[i] = p.Nome
	}
	return out
}

func TestRankSemCriterioDevolveEntradaIntacta(t *testing.T) {
	in := []model.Produto{
		produtoRank("C", 30, nil),
		produtoRank("A", 10, dur(60)),
		produtoRank("B", 20, dur(30)),
	}

	out := RankProdutos(in, OrdemNone, OrdemNone)

	assert.Equal(t, []string{"C", "A", "B"}, nomes(out))
	// Saída é cópia, não alias da entrada.
	out[0].Nome = "mutado"
	assert.Equal(t, "C", in[0].Nome)
}

func TestRankExcluiProdutosSemDuracao(t *testing.T) {
	in := []model.Produto{
		produtoRank("SemDuracao", 10, nil),
		produtoRank("DuracaoZero", 10, dur(0)),
		produtoRank("Ok", 10, dur(30)),
	}

	out := RankProdutos(in, OrdemAsc, OrdemNone)

	assert.Equal(t, []string{"Ok"}, nomes(out))
}

func TestRankMelhorValorPrimeiro(t *testing.T) {
	// preço asc + duração desc ⇒ custo por segundo crescente.
	// Y: 90/30s = 3.00/s   X: 100/60s ≈ 1.67/s
	x := produtoRank("X", 100, dur(60))
	y := produtoRank("Y", 90, dur(30))

	out := RankProdutos([]model.Produto{x, y}, OrdemAsc, OrdemDesc)

	require.Len(t, out, 2)
	assert.Equal(t, []string{"X", "Y"}, nomes(out))
}

func TestRankPiorValorPrimeiro(t *testing.T) {
	x := produtoRank("X", 100, dur(60))
	y := produtoRank("Y", 90, dur(30))

	out := RankProdutos([]model.Produto{x, y}, OrdemDesc, OrdemAsc)

	assert.Equal(t, []string{"Y", "X"}, nomes(out))
}

func TestRankDoisCriteriosMesmaDirecao(t *testing.T) {
	// duração primeiro, empate resolvido pelo preço.
	a := produtoRank("A", 50, dur(30))
	b := produtoRank("B", 20, dur(30))
	c := produtoRank("C", 10, dur(60))

	out := RankProdutos([]model.Produto{a, b, c}, OrdemAsc, OrdemAsc)

	assert.Equal(t, []string{"B", "A", "C"}, nomes(out))
}

func TestRankSomentePreco(t *testing.T) {
	a := produtoRank("A", 30, dur(10))
	b := produtoRank("B", 10, dur(10))
	c := produtoRank("C", 20, dur(10))

	out := RankProdutos([]model.Produto{a, b, c}, OrdemDesc, OrdemNone)

	assert.Equal(t, []string{"A", "C", "B"}, nomes(out))
}

func TestRankSomenteDuracao(t *testing.T) {
	a := produtoRank("A", 10, dur(45))
	b := produtoRank("B", 10, dur(15))

	out := RankProdutos([]model.Produto{a, b}, OrdemNone, OrdemAsc)

	assert.Equal(t, []string{"B", "A"}, nomes(out))
}

func TestRankEstavelEmEmpates(t *testing.T) {
	// Mesmo custo por segundo: ordem de entrada é preservada.
	a := produtoRank("A", 10, dur(10))
	b := produtoRank("B", 20, dur(20))
	c := produtoRank("C", 30, dur(30))

	out := RankProdutos([]model.Produto{a, b, c}, OrdemAsc, OrdemDesc)

	assert.Equal(t, []string{"A", "B", "C"}, nomes(out))
}

func TestOrdemFrom(t *testing.T) {
	assert.Equal(t, OrdemAsc, OrdemFrom("asc"))
	assert.Equal(t, OrdemDesc, OrdemFrom("desc"))
	assert.Equal(t, OrdemNone, OrdemFrom(""))
	assert.Equal(t, OrdemNone, OrdemFrom("qualquer"))
}
