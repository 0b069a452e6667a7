package service

// Stubs em memória das interfaces de repositório, compartilhados pelos testes
// do pacote. DB() devolve nil: runTx executa a função diretamente e os métodos
// *Tx recebem tx nil, que os stubs ignoram.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

var errNotFound = errors.New("record not found")

// ── ProdutoRepository ────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
	// updateQuantidadeErr força falha na segunda fase da baixa de estoque.
	updateQuantidadeErr error
	notificados         []uuid.UUID
}

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) add(p *model.Produto) *model.Produto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return p
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.add(p)
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProdutoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProdutoRepo) List(_ context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var result []model.Produto
	for _, p := range r.produtos {
		if filter.Ativo != "all" && filter.Ativo != "false" && !p.Ativo {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.produtos[id]
	if !ok {
		return errNotFound
	}
	p.Ativo = false
	return nil
}

func (r *stubProdutoRepo) Reativar(_ context.Context, id uuid.UUID) error {
	p, ok := r.produtos[id]
	if !ok {
		return errNotFound
	}
	p.Ativo = true
	return nil
}

func (r *stubProdutoRepo) ProximoCodigo(_ context.Context, prefixo string) (string, error) {
	n := 0
	for _, p := range r.produtos {
		if strings.HasPrefix(p.Codigo, prefixo+"-") {
			n++
		}
	}
	return fmt.Sprintf("%s-%03d", prefixo, n+1), nil
}

func (r *stubProdutoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProdutoRepo) UpdateQuantidadeTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	if r.updateQuantidadeErr != nil {
		return r.updateQuantidadeErr
	}
	p, ok := r.produtos[id]
	if !ok {
		return errNotFound
	}
	p.QtdDisponivel += delta
	return nil
}

func (r *stubProdutoRepo) Notify(_ context.Context, _ string, id uuid.UUID) {
	r.notificados = append(r.notificados, id)
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

// ── OrcamentoRepository ──────────────────────────────────────────────────────

type stubOrcamentoRepo struct {
	orcamentos map[uuid.UUID]*model.Orcamento
	itens      map[uuid.UUID]*model.OrcamentoProduto
	produtos   *stubProdutoRepo
}

var _ repository.OrcamentoRepository = (*stubOrcamentoRepo)(nil)

func newStubOrcamentoRepo(produtos *stubProdutoRepo) *stubOrcamentoRepo {
	return &stubOrcamentoRepo{
		orcamentos: make(map[uuid.UUID]*model.Orcamento),
		itens:      make(map[uuid.UUID]*model.OrcamentoProduto),
		produtos:   produtos,
	}
}

func (r *stubOrcamentoRepo) Create(_ context.Context, o *model.Orcamento) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.orcamentos[o.ID] = o
	return nil
}

func (r *stubOrcamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Orcamento, error) {
	o, ok := r.orcamentos[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *o
	cp.Itens = nil
	for _, item := range r.itens {
		if item.OrcamentoID == id {
			it := *item
			if r.produtos != nil {
				if p, ok := r.produtos.produtos[item.ProdutoID]; ok {
					it.Produto = p
				}
			}
			cp.Itens = append(cp.Itens, it)
		}
	}
	return &cp, nil
}

func (r *stubOrcamentoRepo) FindBySolicitacaoID(_ context.Context, solicitacaoID uuid.UUID) (*model.Orcamento, error) {
	for _, o := range r.orcamentos {
		if o.SolicitacaoID != nil && *o.SolicitacaoID == solicitacaoID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrcamentoRepo) List(_ context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error) {
	var result []model.Orcamento
	for id := range r.orcamentos {
		o, _ := r.FindByID(context.Background(), id)
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (r *stubOrcamentoRepo) Update(_ context.Context, o *model.Orcamento) error {
	stored, ok := r.orcamentos[o.ID]
	if !ok {
		return errNotFound
	}
	cp := *o
	cp.Itens = stored.Itens
	r.orcamentos[o.ID] = &cp
	return nil
}

func (r *stubOrcamentoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orcamentos, id)
	return nil
}

func (r *stubOrcamentoRepo) CreateItem(_ context.Context, item *model.OrcamentoProduto) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.itens[item.ID] = item
	return nil
}

func (r *stubOrcamentoRepo) FindItem(_ context.Context, itemID uuid.UUID) (*model.OrcamentoProduto, error) {
	item, ok := r.itens[itemID]
	if !ok {
		return nil, errNotFound
	}
	return item, nil
}

func (r *stubOrcamentoRepo) UpdateItem(_ context.Context, item *model.OrcamentoProduto) error {
	if _, ok := r.itens[item.ID]; !ok {
		return errNotFound
	}
	cp := *item
	r.itens[item.ID] = &cp
	return nil
}

func (r *stubOrcamentoRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	delete(r.itens, itemID)
	return nil
}

func (r *stubOrcamentoRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := r.orcamentos[id]
	if !ok {
		return errNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrcamentoRepo) UpdateValorTotal(_ context.Context, id uuid.UUID, total decimal.Decimal) error {
	o, ok := r.orcamentos[id]
	if !ok {
		return errNotFound
	}
	o.ValorTotal = total
	return nil
}

func (r *stubOrcamentoRepo) Notify(_ context.Context, _ string, _ uuid.UUID) {}

func (r *stubOrcamentoRepo) DB() *gorm.DB { return nil }

// ── HistoricoEstoqueRepository ───────────────────────────────────────────────

type stubHistoricoRepo struct {
	registros []model.HistoricoEstoque
}

var _ repository.HistoricoEstoqueRepository = (*stubHistoricoRepo)(nil)

func newStubHistoricoRepo() *stubHistoricoRepo { return &stubHistoricoRepo{} }

func (r *stubHistoricoRepo) Create(_ context.Context, h *model.HistoricoEstoque) error {
	h.ID = uuid.New()
	r.registros = append(r.registros, *h)
	return nil
}

func (r *stubHistoricoRepo) CreateTx(_ *gorm.DB, h *model.HistoricoEstoque) error {
	return r.Create(context.Background(), h)
}

func (r *stubHistoricoRepo) List(_ context.Context, filter repository.HistoricoFilter) ([]model.HistoricoEstoque, int64, error) {
	var result []model.HistoricoEstoque
	for _, h := range r.registros {
		if filter.ProdutoID != nil && h.ProdutoID != *filter.ProdutoID {
			continue
		}
		if filter.Tipo != "" && h.Tipo != filter.Tipo {
			continue
		}
		result = append(result, h)
	}
	return result, int64(len(result)), nil
}

// porProduto devolve os registros do ledger de um único produto.
func (r *stubHistoricoRepo) porProduto(id uuid.UUID) []model.HistoricoEstoque {
	var out []model.HistoricoEstoque
	for _, h := range r.registros {
		if h.ProdutoID == id {
			out = append(out, h)
		}
	}
	return out
}

// ── SolicitacaoRepository ────────────────────────────────────────────────────

type stubSolicitacaoRepo struct {
	solicitacoes map[uuid.UUID]*model.SolicitacaoOrcamento
}

var _ repository.SolicitacaoRepository = (*stubSolicitacaoRepo)(nil)

func newStubSolicitacaoRepo() *stubSolicitacaoRepo {
	return &stubSolicitacaoRepo{solicitacoes: make(map[uuid.UUID]*model.SolicitacaoOrcamento)}
}

func (r *stubSolicitacaoRepo) Create(_ context.Context, s *model.SolicitacaoOrcamento) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.solicitacoes[s.ID] = s
	return nil
}

func (r *stubSolicitacaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SolicitacaoOrcamento, error) {
	s, ok := r.solicitacoes[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubSolicitacaoRepo) List(_ context.Context, filter dto.SolicitacaoFilter) ([]model.SolicitacaoOrcamento, int64, error) {
	var result []model.SolicitacaoOrcamento
	for _, s := range r.solicitacoes {
		if filter.Tipo != "" && s.Tipo != filter.Tipo {
			continue
		}
		if filter.EnviadoEmail != nil && s.EnviadoEmail != *filter.EnviadoEmail {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (r *stubSolicitacaoRepo) MarcarEnviadoEmail(_ context.Context, id uuid.UUID) error {
	s, ok := r.solicitacoes[id]
	if !ok {
		return errNotFound
	}
	s.EnviadoEmail = true
	return nil
}

func (r *stubSolicitacaoRepo) ListNaoEnviadas(_ context.Context, cutoff time.Time, limit int) ([]model.SolicitacaoOrcamento, error) {
	var result []model.SolicitacaoOrcamento
	for _, s := range r.solicitacoes {
		if !s.EnviadoEmail && s.CreatedAt.Before(cutoff) && len(result) < limit {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *stubSolicitacaoRepo) DB() *gorm.DB { return nil }

// ── EventoRepository ─────────────────────────────────────────────────────────

type stubEventoRepo struct {
	eventos map[uuid.UUID]*model.Evento
}

var _ repository.EventoRepository = (*stubEventoRepo)(nil)

func newStubEventoRepo() *stubEventoRepo {
	return &stubEventoRepo{eventos: make(map[uuid.UUID]*model.Evento)}
}

func (r *stubEventoRepo) Create(_ context.Context, e *model.Evento) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.eventos[e.ID] = e
	return nil
}

func (r *stubEventoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Evento, error) {
	e, ok := r.eventos[id]
	if !ok {
		return nil, errNotFound
	}
	return e, nil
}

func (r *stubEventoRepo) FindByOrcamentoID(_ context.Context, orcamentoID uuid.UUID) (*model.Evento, error) {
	for _, e := range r.eventos {
		if e.OrcamentoID == orcamentoID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEventoRepo) List(_ context.Context, filter dto.EventoFilter) ([]model.Evento, int64, error) {
	var result []model.Evento
	for _, e := range r.eventos {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (r *stubEventoRepo) Update(_ context.Context, e *model.Evento) error {
	r.eventos[e.ID] = e
	return nil
}

func (r *stubEventoRepo) DB() *gorm.DB { return nil }

// ── UsuarioRepository ────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Ativo {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) ListAtivos(_ context.Context) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if u.Ativo {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUsuarioRepo) ListTodos(_ context.Context) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		result = append(result, *u)
	}
	return result, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Desativar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errNotFound
	}
	u.Ativo = false
	return nil
}

func (r *stubUsuarioRepo) Reativar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errNotFound
	}
	u.Ativo = true
	return nil
}
