package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

type orcamentoFixture struct {
	svc        OrcamentoService
	produtos   *stubProdutoRepo
	orcamentos *stubOrcamentoRepo
	historico  *stubHistoricoRepo
}

func newOrcamentoFixture() *orcamentoFixture {
	produtos := newStubProdutoRepo()
	orcamentos := newStubOrcamentoRepo(produtos)
	historico := newStubHistoricoRepo()
	return &orcamentoFixture{
		svc:        NewOrcamentoService(orcamentos, produtos, historico, nil, "/tmp"),
		produtos:   produtos,
		orcamentos: orcamentos,
		historico:  historico,
	}
}

func (f *orcamentoFixture) novoProduto(nome string, preco float64, qtd int) *model.Produto {
	return f.produtos.add(&model.Produto{
		Nome:          nome,
		Categoria:     "tortas",
		PrecoCompra:   decimal.NewFromFloat(preco / 2),
		PrecoVenda:    decimal.NewFromFloat(preco),
		QtdDisponivel: qtd,
		Ativo:         true,
	})
}

func (f *orcamentoFixture) novoOrcamento(t *testing.T, itens map[*model.Produto]int) *model.Orcamento {
	t.Helper()
	o := &model.Orcamento{
		NomeContratante: "Prefeitura de Goiania",
		NomeEvento:      "Reveillon 2027",
		Status:          model.StatusPendente,
	}
	require.NoError(t, f.orcamentos.Create(context.Background(), o))
	for p, qtd := range itens {
		require.NoError(t, f.orcamentos.CreateItem(context.Background(), &model.OrcamentoProduto{
			OrcamentoID:   o.ID,
			ProdutoID:     p.ID,
			Quantidade:    qtd,
			PrecoUnitario: p.PrecoVenda,
		}))
	}
	return o
}

func mustParse(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestAdicionarItemCongelaPrecoERecalculaTotal(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta 100 tubos", 10.00, 50)
	kit := f.novoProduto("Kit Festa", 25.00, 50)

	o := f.novoOrcamento(t, nil)

	resp, err := f.svc.AdicionarItem(ctx, o.ID, dto.AdicionarItemRequest{
		ProdutoID: torta.ID.String(), Quantidade: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "30", resp.ValorTotal.String())

	resp, err = f.svc.AdicionarItem(ctx, o.ID, dto.AdicionarItemRequest{
		ProdutoID: kit.ID.String(), Quantidade: 2,
	})
	require.NoError(t, err)

	// 3×10.00 + 2×25.00
	assert.Equal(t, "80", resp.ValorTotal.String())
	require.Len(t, resp.Itens, 2)

	// Subir o preço de venda depois não muda o item já congelado.
	torta.PrecoVenda = decimal.NewFromFloat(99.00)
	atual, err := f.svc.ObterPorID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "80", atual.ValorTotal.String())
}

func TestAdicionarItemRepetidoSomaNoExistente(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta 60 tubos", 10.00, 50)
	o := f.novoOrcamento(t, nil)

	_, err := f.svc.AdicionarItem(ctx, o.ID, dto.AdicionarItemRequest{
		ProdutoID: torta.ID.String(), Quantidade: 3,
	})
	require.NoError(t, err)

	// Preço sobe entre as duas adições; o item mantém o valor congelado.
	torta.PrecoVenda = decimal.NewFromFloat(99.00)

	resp, err := f.svc.AdicionarItem(ctx, o.ID, dto.AdicionarItemRequest{
		ProdutoID: torta.ID.String(), Quantidade: 2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Itens, 1)
	assert.Equal(t, 5, resp.Itens[0].Quantidade)
	assert.Equal(t, "10", resp.Itens[0].PrecoUnitario.String())
	assert.Equal(t, "50", resp.ValorTotal.String())
}

func TestAprovarBaixaEstoqueEGravaLedger(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta X", 10.00, 10)
	metralha := f.novoProduto("Metralha Y", 5.00, 8)
	o := f.novoOrcamento(t, map[*model.Produto]int{torta: 4, metralha: 6})

	resp, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAprovado, resp.Status)
	assert.True(t, resp.EstoqueMovimentado)

	assert.Equal(t, 6, f.produtos.produtos[torta.ID].QtdDisponivel)
	assert.Equal(t, 2, f.produtos.produtos[metralha.ID].QtdDisponivel)

	// Exatamente um registro de saída por produto do orçamento.
	regTorta := f.historico.porProduto(torta.ID)
	require.Len(t, regTorta, 1)
	assert.Equal(t, model.MovimentoSaida, regTorta[0].Tipo)
	assert.Equal(t, 10, regTorta[0].QtdAnterior)
	assert.Equal(t, -4, regTorta[0].Delta)
	assert.Equal(t, 6, regTorta[0].QtdNova)
	require.NotNil(t, regTorta[0].OrcamentoID)
	assert.Equal(t, o.ID, *regTorta[0].OrcamentoID)

	require.Len(t, f.historico.porProduto(metralha.ID), 1)
}

func TestAprovarSomaDemandaDeItensDoMesmoProduto(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta Dupla", 10.00, 10)
	o := f.novoOrcamento(t, nil)
	for i := 0; i < 2; i++ {
		require.NoError(t, f.orcamentos.CreateItem(ctx, &model.OrcamentoProduto{
			OrcamentoID:   o.ID,
			ProdutoID:     torta.ID,
			Quantidade:    6,
			PrecoUnitario: torta.PrecoVenda,
		}))
	}

	// 6+6 > 10: a validação considera a soma, não cada item isolado.
	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.Error(t, err)

	var insuf *EstoqueInsuficienteError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, 10, insuf.Disponivel)
	assert.Equal(t, 12, insuf.Necessario)

	assert.Equal(t, 10, f.produtos.produtos[torta.ID].QtdDisponivel)
	assert.Empty(t, f.historico.registros)

	atual, err := f.svc.ObterPorID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendente, atual.Status)
}

func TestAprovarComItensRepetidosBaixaUmaVezPorProduto(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta Tripla", 10.00, 15)
	o := f.novoOrcamento(t, nil)
	for i := 0; i < 2; i++ {
		require.NoError(t, f.orcamentos.CreateItem(ctx, &model.OrcamentoProduto{
			OrcamentoID:   o.ID,
			ProdutoID:     torta.ID,
			Quantidade:    6,
			PrecoUnitario: torta.PrecoVenda,
		}))
	}

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	assert.Equal(t, 3, f.produtos.produtos[torta.ID].QtdDisponivel)

	// Um único registro de saída cobrindo os dois itens.
	regs := f.historico.porProduto(torta.ID)
	require.Len(t, regs, 1)
	assert.Equal(t, 15, regs[0].QtdAnterior)
	assert.Equal(t, -12, regs[0].Delta)
	assert.Equal(t, 3, regs[0].QtdNova)
}

func TestAprovarComEstoqueInsuficienteNaoMutaNada(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	ok := f.novoProduto("Produto Y", 10.00, 100)
	curto := f.novoProduto("Produto X", 10.00, 2)
	o := f.novoOrcamento(t, map[*model.Produto]int{ok: 10, curto: 5})

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.Error(t, err)

	var insuf *EstoqueInsuficienteError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, "Produto X", insuf.Produto)
	assert.Equal(t, 2, insuf.Disponivel)
	assert.Equal(t, 5, insuf.Necessario)

	// Tudo-ou-nada: nem mesmo o produto com estoque de sobra foi debitado.
	assert.Equal(t, 100, f.produtos.produtos[ok.ID].QtdDisponivel)
	assert.Equal(t, 2, f.produtos.produtos[curto.ID].QtdDisponivel)
	assert.Empty(t, f.historico.registros)

	// Status permanece pendente.
	atual, err := f.svc.ObterPorID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendente, atual.Status)
}

func TestCancelarOrcamentoAprovadoRepoeEstoque(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta Z", 10.00, 10)
	o := f.novoOrcamento(t, map[*model.Produto]int{torta: 4})

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusConfirmado)
	require.NoError(t, err)
	require.Equal(t, 6, f.produtos.produtos[torta.ID].QtdDisponivel)

	resp, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusCancelado)
	require.NoError(t, err)
	assert.True(t, resp.EstoqueMovimentado)
	assert.Equal(t, 10, f.produtos.produtos[torta.ID].QtdDisponivel)

	regs := f.historico.porProduto(torta.ID)
	require.Len(t, regs, 2)
	assert.Equal(t, model.MovimentoSaida, regs[0].Tipo)
	assert.Equal(t, model.MovimentoEntrada, regs[1].Tipo)
	assert.Equal(t, 6, regs[1].QtdAnterior)
	assert.Equal(t, 4, regs[1].Delta)
	assert.Equal(t, 10, regs[1].QtdNova)
}

func TestTransicaoDentroDoGrupoAprovadoNaoMoveEstoque(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta W", 10.00, 10)
	o := f.novoOrcamento(t, map[*model.Produto]int{torta: 4})

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	require.Len(t, f.historico.registros, 1)

	// aprovado → confirmado → realizado: sem nova movimentação.
	resp, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusConfirmado)
	require.NoError(t, err)
	assert.False(t, resp.EstoqueMovimentado)

	resp, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusRealizado)
	require.NoError(t, err)
	assert.False(t, resp.EstoqueMovimentado)

	assert.Equal(t, 6, f.produtos.produtos[torta.ID].QtdDisponivel)
	assert.Len(t, f.historico.registros, 1)
}

func TestTransicoesInvalidas(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	o := f.novoOrcamento(t, nil)

	_, err := f.svc.AlterarStatus(ctx, o.ID, "inexistente")
	assert.Error(t, err)

	// pendente → realizado não é permitido.
	_, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusRealizado)
	assert.Error(t, err)

	// realizado é terminal.
	_, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	_, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusRealizado)
	require.NoError(t, err)
	_, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusCancelado)
	assert.Error(t, err)
}

func TestMesmoStatusEhNoOp(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta N", 10.00, 10)
	o := f.novoOrcamento(t, map[*model.Produto]int{torta: 4})

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)

	resp, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	assert.False(t, resp.EstoqueMovimentado)

	// Sem dupla baixa.
	assert.Equal(t, 6, f.produtos.produtos[torta.ID].QtdDisponivel)
	assert.Len(t, f.historico.registros, 1)
}

func TestReaprovarOrcamentoCancelado(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta R", 10.00, 10)
	o := f.novoOrcamento(t, map[*model.Produto]int{torta: 4})

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	_, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusCancelado)
	require.NoError(t, err)
	require.Equal(t, 10, f.produtos.produtos[torta.ID].QtdDisponivel)

	// Reaprovação baixa o estoque de novo.
	_, err = f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)
	assert.Equal(t, 6, f.produtos.produtos[torta.ID].QtdDisponivel)
	assert.Len(t, f.historico.registros, 3)
}

func TestOrcamentoAprovadoNaoAceitaMudancaDeItens(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta I", 10.00, 10)
	o := f.novoOrcamento(t, map[*model.Produto]int{torta: 2})

	_, err := f.svc.AlterarStatus(ctx, o.ID, model.StatusAprovado)
	require.NoError(t, err)

	_, err = f.svc.AdicionarItem(ctx, o.ID, dto.AdicionarItemRequest{
		ProdutoID: torta.ID.String(), Quantidade: 1,
	})
	assert.Error(t, err)

	atual, err := f.svc.ObterPorID(ctx, o.ID)
	require.NoError(t, err)
	_, err = f.svc.RemoverItem(ctx, o.ID, mustParse(t, atual.Itens[0].ID))
	assert.Error(t, err)
}

func TestProdutoInativoNaoEntraEmOrcamento(t *testing.T) {
	f := newOrcamentoFixture()
	ctx := context.Background()

	torta := f.novoProduto("Torta D", 10.00, 10)
	torta.Ativo = false
	o := f.novoOrcamento(t, nil)

	_, err := f.svc.AdicionarItem(ctx, o.ID, dto.AdicionarItemRequest{
		ProdutoID: torta.ID.String(), Quantidade: 1,
	})
	assert.Error(t, err)
}
