package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

func newSolicitacaoFixture() (SolicitacaoService, *stubSolicitacaoRepo, *stubOrcamentoRepo) {
	solicitacoes := newStubSolicitacaoRepo()
	orcamentos := newStubOrcamentoRepo(nil)
	svc := NewSolicitacaoService(solicitacoes, orcamentos, nil, "contato@m5max.com")
	return svc, solicitacoes, orcamentos
}

func TestCriarSolicitacaoKitNaoGeraOrcamento(t *testing.T) {
	svc, solicitacoes, orcamentos := newSolicitacaoFixture()
	ctx := context.Background()

	resp, err := svc.Criar(ctx, dto.CriarSolicitacaoRequest{
		NomeCliente: "Joao da Silva",
		Whatsapp:    "62 98228-1758",
		Tipo:        "kit",
		KitDesejado: "Kit Reveillon",
	})
	require.NoError(t, err)

	assert.Equal(t, "kit", resp.Tipo)
	assert.Nil(t, resp.OrcamentoID)
	assert.Len(t, solicitacoes.solicitacoes, 1)
	assert.Empty(t, orcamentos.orcamentos)

	// Deep link pronto para a equipe responder.
	assert.Contains(t, resp.LinkWhatsapp, "https://wa.me/62982281758")
}

func TestCriarSolicitacaoContratarEquipeGeraOrcamentoPendente(t *testing.T) {
	svc, _, orcamentos := newSolicitacaoFixture()
	ctx := context.Background()

	data := "2026-12-31"
	resp, err := svc.Criar(ctx, dto.CriarSolicitacaoRequest{
		NomeCliente: "Prefeitura de Anapolis",
		Email:       "eventos@anapolis.go.gov.br",
		Tipo:        "contratar_equipe",
		TipoEvento:  "Reveillon",
		DataEvento:  &data,
		LocalEvento: "Praca Central",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OrcamentoID)
	require.Len(t, orcamentos.orcamentos, 1)
	for _, o := range orcamentos.orcamentos {
		assert.Equal(t, model.StatusPendente, o.Status)
		assert.Equal(t, "Prefeitura de Anapolis", o.NomeContratante)
		assert.Equal(t, "Reveillon", o.NomeEvento)
		assert.Equal(t, "eventos@anapolis.go.gov.br", o.Contato)
		require.NotNil(t, o.SolicitacaoID)
		assert.Equal(t, resp.ID, o.SolicitacaoID.String())
		require.NotNil(t, o.DataEvento)
		assert.Equal(t, "2026-12-31", o.DataEvento.Format("2006-01-02"))
	}

	assert.Contains(t, resp.LinkEmail, "mailto:eventos@anapolis.go.gov.br")
	assert.Empty(t, resp.LinkWhatsapp)
}

func TestTipoVazioViraKit(t *testing.T) {
	svc, _, orcamentos := newSolicitacaoFixture()

	resp, err := svc.Criar(context.Background(), dto.CriarSolicitacaoRequest{
		NomeCliente: "Maria",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TipoSolicitacaoKit, resp.Tipo)
	assert.Empty(t, orcamentos.orcamentos)
}

func TestObterSolicitacaoTrazOrcamentoVinculado(t *testing.T) {
	svc, _, _ := newSolicitacaoFixture()
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarSolicitacaoRequest{
		NomeCliente: "Carlos",
		Tipo:        "contratar_equipe",
	})
	require.NoError(t, err)

	obtido, err := svc.ObterPorID(ctx, mustParse(t, criado.ID))
	require.NoError(t, err)
	require.NotNil(t, obtido.OrcamentoID)
	assert.Equal(t, *criado.OrcamentoID, *obtido.OrcamentoID)
}

func TestMarcarSolicitacaoProcessada(t *testing.T) {
	svc, solicitacoes, _ := newSolicitacaoFixture()
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarSolicitacaoRequest{
		NomeCliente: "Pedro",
		Tipo:        "kit",
		KitDesejado: "Kit Festa Junina",
	})
	require.NoError(t, err)
	assert.False(t, criado.EnviadoEmail)

	resp, err := svc.MarcarProcessada(ctx, mustParse(t, criado.ID))
	require.NoError(t, err)
	assert.True(t, resp.EnviadoEmail)
	assert.True(t, solicitacoes.solicitacoes[mustParse(t, criado.ID)].EnviadoEmail)

	// Repetir a marcação não é erro.
	resp, err = svc.MarcarProcessada(ctx, mustParse(t, criado.ID))
	require.NoError(t, err)
	assert.True(t, resp.EnviadoEmail)
}

func TestMarcarProcessadaInexistente(t *testing.T) {
	svc, _, _ := newSolicitacaoFixture()

	_, err := svc.MarcarProcessada(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestDataInvalidaRejeitada(t *testing.T) {
	svc, solicitacoes, _ := newSolicitacaoFixture()

	data := "31/12/2026"
	_, err := svc.Criar(context.Background(), dto.CriarSolicitacaoRequest{
		NomeCliente: "Ana",
		DataEvento:  &data,
	})
	require.Error(t, err)
	assert.Empty(t, solicitacoes.solicitacoes)
}
