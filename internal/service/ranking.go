package service

// ranking.go — ordenação do catálogo por valor (preço por segundo de efeito).
// Função pura sobre (lista, duas direções independentes); sem I/O.

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

// Ordem de um critério de ordenação.
type Ordem string

const (
	OrdemAsc  Ordem = "asc"
	OrdemDesc Ordem = "desc"
	OrdemNone Ordem = "none"
)

// OrdemFrom normaliza o valor vindo da query string.
func OrdemFrom(s string) Ordem {
	switch s {
	case "asc":
		return OrdemAsc
	case "desc":
		return OrdemDesc
	default:
		return OrdemNone
	}
}

func (o Ordem) ativa() bool { return o == OrdemAsc || o == OrdemDesc }

// RankProdutos ordena produtos pelos critérios de preço e duração:
//
//   - com qualquer critério ativo, produtos sem duração positiva saem do
//     resultado (incomparáveis são descartados, não empurrados para o fim);
//   - preço asc + duração desc  → custo/segundo crescente (melhor valor primeiro);
//   - preço desc + duração asc  → custo/segundo decrescente (pior valor primeiro);
//   - outras combinações com os dois ativos → duração primeiro (na própria
//     direção), desempate por preço (na própria direção);
//   - um único critério ativo → ordena só por ele;
//   - nenhum ativo → a entrada volta intacta, na mesma ordem.
//
// A entrada nunca é modificada; a saída é uma nova slice.
func RankProdutos(produtos []model.Produto, preco, duracao Ordem) []model.Produto {
	if !preco.ativa() && !duracao.ativa() {
		out := make([]model.Produto, len(produtos))
		copy(out, produtos)
		return out
	}

	// Critério ativo ⇒ produtos sem duração positiva são incomparáveis.
	out := make([]model.Produto, 0, len(produtos))
	for _, p := range produtos {
		if p.DuracaoSegundos != nil && *p.DuracaoSegundos > 0 {
			out = append(out, p)
		}
	}

	switch {
	case preco == OrdemAsc && duracao == OrdemDesc:
		sortStable(out, func(a, b model.Produto) int {
			return custoPorSegundo(a).Cmp(custoPorSegundo(b))
		})
	case preco == OrdemDesc && duracao == OrdemAsc:
		sortStable(out, func(a, b model.Produto) int {
			return custoPorSegundo(b).Cmp(custoPorSegundo(a))
		})
	case preco.ativa() && duracao.ativa():
		sortStable(out, func(a, b model.Produto) int {
			if c := cmpInt(*a.DuracaoSegundos, *b.DuracaoSegundos, duracao); c != 0 {
				return c
			}
			return cmpDecimal(a.PrecoVenda, b.PrecoVenda, preco)
		})
	case duracao.ativa():
		sortStable(out, func(a, b model.Produto) int {
			return cmpInt(*a.DuracaoSegundos, *b.DuracaoSegundos, duracao)
		})
	default: // só preço ativo
		sortStable(out, func(a, b model.Produto) int {
			return cmpDecimal(a.PrecoVenda, b.PrecoVenda, preco)
		})
	}
	return out
}

// custoPorSegundo: preço de venda dividido pela duração do efeito.
func custoPorSegundo(p model.Produto) decimal.Decimal {
	return p.PrecoVenda.Div(decimal.NewFromInt(int64(*p.DuracaoSegundos)))
}

func cmpInt(a, b int, ordem Ordem) int {
	c := 0
	if a < b {
		c = -1
	} else if a > b {
		c = 1
	}
	if ordem == OrdemDesc {
		c = -c
	}
	return c
}

func cmpDecimal(a, b decimal.Decimal, ordem Ordem) int {
	c := a.Cmp(b)
	if ordem == OrdemDesc {
		c = -c
	}
	return c
}

func sortStable(produtos []model.Produto, cmp func(a, b model.Produto) int) {
	sort.SliceStable(produtos, func(i, j int) bool {
		return cmp(produtos[i], produtos[j]) < 0
	})
}
