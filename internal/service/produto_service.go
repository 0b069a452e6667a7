package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

// Prefixos de código por categoria. Categorias fora da tabela usam as três
// primeiras letras maiúsculas do nome.
var prefixosCategoria = map[string]string{
	"tortas":     "TRT",
	"kits":       "KIT",
	"metralhas":  "MET",
	"morteiros":  "MRT",
	"fumacas":    "FUM",
	"acessorios": "ACS",
}

// ProdutoService defines the business logic contract for the catalog.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	// Listar aplica filtros e pagina. Quando ordem_preco/ordem_duracao vêm
	// na query, o ranking de valor ordena o conjunto inteiro antes da
	// paginação e o total reflete só os produtos rankeáveis.
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error

	// AjustarEstoque aplica um delta manual e grava a linha do ledger.
	AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error)
}

type produtoService struct {
	repo          repository.ProdutoRepository
	historicoRepo repository.HistoricoEstoqueRepository
}

func NewProdutoService(repo repository.ProdutoRepository, historicoRepo repository.HistoricoEstoqueRepository) ProdutoService {
	return &produtoService{repo: repo, historicoRepo: historicoRepo}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	codigo, err := s.repo.ProximoCodigo(ctx, prefixoCategoria(req.Categoria))
	if err != nil {
		return nil, err
	}
	p := &model.Produto{
		Codigo:          codigo,
		Nome:            req.Nome,
		Categoria:       req.Categoria,
		Fabricante:      req.Fabricante,
		Efeito:          req.Efeito,
		DuracaoSegundos: req.DuracaoSegundos,
		PrecoCompra:     req.PrecoCompra,
		PrecoVenda:      req.PrecoVenda,
		QtdDisponivel:   req.QtdDisponivel,
		Ativo:           true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	ordemPreco := OrdemFrom(filter.OrdemPreco)
	ordemDuracao := OrdemFrom(filter.OrdemDuracao)
	rankeado := ordemPreco != OrdemNone || ordemDuracao != OrdemNone

	busca := filter
	if rankeado {
		// O ranking ordena (e descarta produtos sem duração) sobre o
		// conjunto inteiro; a paginação acontece depois, em memória.
		busca.Page = 1
		busca.Limit = 0
	}
	produtos, total, err := s.repo.List(ctx, busca)
	if err != nil {
		return nil, err
	}

	if rankeado {
		produtos = RankProdutos(produtos, ordemPreco, ordemDuracao)
		total = int64(len(produtos))
		inicio := (filter.Page - 1) * filter.Limit
		if inicio > len(produtos) {
			inicio = len(produtos)
		}
		fim := inicio + filter.Limit
		if fim > len(produtos) {
			fim = len(produtos)
		}
		produtos = produtos[inicio:fim]
	}

	data := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		data = append(data, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	if req.Categoria != nil {
		// Código não muda junto: preserva referências externas já impressas.
		p.Categoria = *req.Categoria
	}
	if req.Fabricante != nil {
		p.Fabricante = *req.Fabricante
	}
	if req.Efeito != nil {
		p.Efeito = req.Efeito
	}
	if req.DuracaoSegundos != nil {
		p.DuracaoSegundos = req.DuracaoSegundos
	}
	if req.PrecoCompra != nil {
		p.PrecoCompra = *req.PrecoCompra
	}
	if req.PrecoVenda != nil {
		p.PrecoVenda = *req.PrecoVenda
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("produto nao encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *produtoService) Reativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("produto nao encontrado")
	}
	return s.repo.Reativar(ctx, id)
}

func (s *produtoService) AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	novaQtd := p.QtdDisponivel + req.Delta
	if novaQtd < 0 {
		return nil, &EstoqueInsuficienteError{
			Produto:    p.Nome,
			Disponivel: p.QtdDisponivel,
			Necessario: -req.Delta,
		}
	}

	tipo := model.MovimentoEntrada
	if req.Delta < 0 {
		tipo = model.MovimentoSaida
	}

	anterior := p.QtdDisponivel
	p.QtdDisponivel = novaQtd
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	hist := &model.HistoricoEstoque{
		ProdutoID:   p.ID,
		QtdAnterior: anterior,
		Delta:       req.Delta,
		QtdNova:     novaQtd,
		Tipo:        tipo,
		Motivo:      req.Motivo,
	}
	if err := s.historicoRepo.Create(ctx, hist); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func prefixoCategoria(categoria string) string {
	if p, ok := prefixosCategoria[strings.ToLower(categoria)]; ok {
		return p
	}
	limpa := strings.ToUpper(strings.ReplaceAll(categoria, " ", ""))
	if len(limpa) > 3 {
		limpa = limpa[:3]
	}
	if limpa == "" {
		limpa = "PRD"
	}
	return limpa
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:              p.ID.String(),
		Codigo:          p.Codigo,
		Nome:            p.Nome,
		Categoria:       p.Categoria,
		Fabricante:      p.Fabricante,
		Efeito:          p.Efeito,
		DuracaoSegundos: p.DuracaoSegundos,
		PrecoCompra:     p.PrecoCompra,
		PrecoVenda:      p.PrecoVenda,
		QtdDisponivel:   p.QtdDisponivel,
		Ativo:           p.Ativo,
	}
}
