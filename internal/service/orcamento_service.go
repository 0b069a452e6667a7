package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/infra"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
	"github.com/CunhaBSb/m5max-sub000/internal/worker"
)

// OrcamentoService owns the budget lifecycle: CRUD, line items with price
// snapshots, and the status transitions that drive stock movement.
type OrcamentoService interface {
	Criar(ctx context.Context, req dto.CriarOrcamentoRequest) (*dto.OrcamentoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error)
	Listar(ctx context.Context, filter dto.OrcamentoFilter) (*dto.OrcamentoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrcamentoRequest) (*dto.OrcamentoResponse, error)

	AdicionarItem(ctx context.Context, id uuid.UUID, req dto.AdicionarItemRequest) (*dto.OrcamentoResponse, error)
	RemoverItem(ctx context.Context, id, itemID uuid.UUID) (*dto.OrcamentoResponse, error)

	// AlterarStatus persiste a transição e aplica o ajuste de estoque
	// correspondente exatamente uma vez, de forma atômica.
	AlterarStatus(ctx context.Context, id uuid.UUID, novoStatus string) (*dto.AlterarStatusResponse, error)

	// GerarPDF escreve o documento do orçamento e devolve o caminho do arquivo.
	GerarPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type orcamentoService struct {
	repo          repository.OrcamentoRepository
	produtoRepo   repository.ProdutoRepository
	historicoRepo repository.HistoricoEstoqueRepository
	dispatcher    *worker.Dispatcher
	pdfPath       string
}

func NewOrcamentoService(
	repo repository.OrcamentoRepository,
	produtoRepo repository.ProdutoRepository,
	historicoRepo repository.HistoricoEstoqueRepository,
	dispatcher *worker.Dispatcher,
	pdfPath string,
) OrcamentoService {
	return &orcamentoService{
		repo:          repo,
		produtoRepo:   produtoRepo,
		historicoRepo: historicoRepo,
		dispatcher:    dispatcher,
		pdfPath:       pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *orcamentoService) Criar(ctx context.Context, req dto.CriarOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	data, err := parseDataOpcional(req.DataEvento)
	if err != nil {
		return nil, err
	}
	o := &model.Orcamento{
		NomeContratante: req.NomeContratante,
		Contato:         req.Contato,
		NomeEvento:      req.NomeEvento,
		DataEvento:      data,
		LocalEvento:     req.LocalEvento,
		ModoPagamento:   req.ModoPagamento,
		ValorTotal:      decimal.Zero,
		Status:          model.StatusPendente,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return orcamentoToResponse(o), nil
}

func (s *orcamentoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	return orcamentoToResponse(o), nil
}

func (s *orcamentoService) Listar(ctx context.Context, filter dto.OrcamentoFilter) (*dto.OrcamentoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	orcamentos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrcamentoResponse, 0, len(orcamentos))
	for i := range orcamentos {
		data = append(data, *orcamentoToResponse(&orcamentos[i]))
	}
	return &dto.OrcamentoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *orcamentoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if req.NomeContratante != nil {
		o.NomeContratante = *req.NomeContratante
	}
	if req.Contato != nil {
		o.Contato = *req.Contato
	}
	if req.NomeEvento != nil {
		o.NomeEvento = *req.NomeEvento
	}
	if req.DataEvento != nil {
		data, err := parseDataOpcional(req.DataEvento)
		if err != nil {
			return nil, err
		}
		o.DataEvento = data
	}
	if req.LocalEvento != nil {
		o.LocalEvento = *req.LocalEvento
	}
	if req.ModoPagamento != nil {
		o.ModoPagamento = *req.ModoPagamento
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return orcamentoToResponse(o), nil
}

// ── Itens ─────────────────────────────────────────────────────────────────────

func (s *orcamentoService) AdicionarItem(ctx context.Context, id uuid.UUID, req dto.AdicionarItemRequest) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if model.StatusComprometeEstoque(o.Status) {
		return nil, errors.New("orcamento aprovado nao aceita novos itens")
	}

	pid, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, fmt.Errorf("produto_id invalido: %w", err)
	}
	p, err := s.produtoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("produto %s nao encontrado", req.ProdutoID)
	}
	if !p.Ativo {
		return nil, fmt.Errorf("produto %s esta inativo", p.Nome)
	}

	// Produto repetido soma no item existente, mantendo o preço já congelado.
	for i := range o.Itens {
		if o.Itens[i].ProdutoID == pid {
			existente := o.Itens[i]
			existente.Quantidade += req.Quantidade
			if err := s.repo.UpdateItem(ctx, &existente); err != nil {
				return nil, err
			}
			return s.recalcularTotal(ctx, o.ID)
		}
	}

	// Congela o preço de venda vigente.
	item := &model.OrcamentoProduto{
		OrcamentoID:   o.ID,
		ProdutoID:     p.ID,
		Quantidade:    req.Quantidade,
		PrecoUnitario: p.PrecoVenda,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return s.recalcularTotal(ctx, o.ID)
}

func (s *orcamentoService) RemoverItem(ctx context.Context, id, itemID uuid.UUID) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if model.StatusComprometeEstoque(o.Status) {
		return nil, errors.New("orcamento aprovado nao permite remover itens")
	}

	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil || item.OrcamentoID != o.ID {
		return nil, errors.New("item nao encontrado")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.recalcularTotal(ctx, o.ID)
}

// recalcularTotal recarrega os itens e persiste valor_total = Σ qtd × unitário.
func (s *orcamentoService) recalcularTotal(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, item := range o.Itens {
		total = total.Add(item.ValorTotal())
	}
	if err := s.repo.UpdateValorTotal(ctx, id, total); err != nil {
		return nil, err
	}
	o.ValorTotal = total
	return orcamentoToResponse(o), nil
}

// ── AlterarStatus ─────────────────────────────────────────────────────────────
// Somente duas transições movimentam estoque:
//   - fora do grupo aprovado → dentro dele: baixa (valida tudo antes de
//     aplicar qualquer escrita — tudo-ou-nada);
//   - dentro do grupo aprovado → cancelado: reentrada incondicional.
// Status e ajuste são gravados na MESMA transação; falha em qualquer item
// desfaz o conjunto inteiro.

func (s *orcamentoService) AlterarStatus(ctx context.Context, id uuid.UUID, novoStatus string) (*dto.AlterarStatusResponse, error) {
	if !model.StatusValido(novoStatus) {
		return nil, fmt.Errorf("status invalido: %q", novoStatus)
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	atual := o.Status
	if atual == novoStatus {
		return &dto.AlterarStatusResponse{ID: o.ID.String(), Status: atual}, nil
	}
	if !model.TransicaoValida(atual, novoStatus) {
		return nil, fmt.Errorf("transicao de %q para %q nao permitida", atual, novoStatus)
	}

	baixa := !model.StatusComprometeEstoque(atual) && model.StatusComprometeEstoque(novoStatus)
	reentrada := model.StatusComprometeEstoque(atual) && novoStatus == model.StatusCancelado

	movimentado := false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if baixa {
			if err := s.baixarEstoqueTx(tx, o); err != nil {
				return err
			}
			movimentado = true
		} else if reentrada {
			if err := s.reporEstoqueTx(tx, o); err != nil {
				return err
			}
			movimentado = true
		}
		return s.repo.UpdateStatusTx(tx, id, novoStatus)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.repo.Notify(ctx, realtime.EventUpdate, id)
	if movimentado {
		for _, item := range o.Itens {
			s.produtoRepo.Notify(ctx, realtime.EventUpdate, item.ProdutoID)
		}
	}

	// PDF do orçamento confirmado sai de forma assíncrona.
	if novoStatus == model.StatusConfirmado && s.dispatcher != nil {
		_ = s.dispatcher.EnqueuePDF(ctx, worker.PDFJobPayload{OrcamentoID: o.ID.String()})
	}

	return &dto.AlterarStatusResponse{
		ID:                 o.ID.String(),
		Status:             novoStatus,
		EstoqueMovimentado: movimentado,
	}, nil
}

// demandaPorProduto soma as quantidades dos itens agrupadas por produto,
// preservando a ordem da primeira ocorrência. O mesmo produto pode constar
// em mais de um item; a validação e a baixa olham o total.
func demandaPorProduto(itens []model.OrcamentoProduto) ([]uuid.UUID, map[uuid.UUID]int) {
	demanda := make(map[uuid.UUID]int, len(itens))
	ordem := make([]uuid.UUID, 0, len(itens))
	for _, item := range itens {
		if _, visto := demanda[item.ProdutoID]; !visto {
			ordem = append(ordem, item.ProdutoID)
		}
		demanda[item.ProdutoID] += item.Quantidade
	}
	return ordem, demanda
}

// baixarEstoqueTx valida a demanda agregada de TODOS os produtos antes de
// mutar qualquer um deles.
func (s *orcamentoService) baixarEstoqueTx(tx *gorm.DB, o *model.Orcamento) error {
	ordem, demanda := demandaPorProduto(o.Itens)

	// Fase 1: carrega quantidades atuais e valida todos os deltas.
	produtos := make(map[uuid.UUID]*model.Produto, len(ordem))
	for _, pid := range ordem {
		p, err := s.produtoRepo.FindByIDTx(tx, pid)
		if err != nil {
			return fmt.Errorf("produto %s nao encontrado", pid)
		}
		if p.QtdDisponivel-demanda[pid] < 0 {
			return &EstoqueInsuficienteError{
				Produto:    p.Nome,
				Disponivel: p.QtdDisponivel,
				Necessario: demanda[pid],
			}
		}
		produtos[pid] = p
	}

	// Fase 2: uma baixa e uma linha de ledger por produto.
	for _, pid := range ordem {
		p := produtos[pid]
		anterior := p.QtdDisponivel
		delta := demanda[pid]
		if err := s.produtoRepo.UpdateQuantidadeTx(tx, pid, -delta); err != nil {
			return fmt.Errorf("erro baixando estoque de %s: %w", p.Nome, err)
		}
		hist := &model.HistoricoEstoque{
			ProdutoID:   pid,
			QtdAnterior: anterior,
			Delta:       -delta,
			QtdNova:     anterior - delta,
			Tipo:        model.MovimentoSaida,
			Motivo:      fmt.Sprintf("Aprovacao do orcamento %q", o.NomeEvento),
			OrcamentoID: &o.ID,
		}
		if err := s.historicoRepo.CreateTx(tx, hist); err != nil {
			return err
		}
	}
	return nil
}

// reporEstoqueTx devolve as quantidades dos itens ao estoque (incondicional).
func (s *orcamentoService) reporEstoqueTx(tx *gorm.DB, o *model.Orcamento) error {
	ordem, demanda := demandaPorProduto(o.Itens)

	for _, pid := range ordem {
		p, err := s.produtoRepo.FindByIDTx(tx, pid)
		if err != nil {
			return fmt.Errorf("produto %s nao encontrado", pid)
		}
		anterior := p.QtdDisponivel
		delta := demanda[pid]
		if err := s.produtoRepo.UpdateQuantidadeTx(tx, pid, delta); err != nil {
			return fmt.Errorf("erro repondo estoque de %s: %w", p.Nome, err)
		}
		hist := &model.HistoricoEstoque{
			ProdutoID:   pid,
			QtdAnterior: anterior,
			Delta:       delta,
			QtdNova:     anterior + delta,
			Tipo:        model.MovimentoEntrada,
			Motivo:      fmt.Sprintf("Cancelamento do orcamento %q", o.NomeEvento),
			OrcamentoID: &o.ID,
		}
		if err := s.historicoRepo.CreateTx(tx, hist); err != nil {
			return err
		}
	}
	return nil
}

// ── PDF ───────────────────────────────────────────────────────────────────────

func (s *orcamentoService) GerarPDF(ctx context.Context, id uuid.UUID) (string, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("orcamento nao encontrado")
	}
	return infra.GerarOrcamentoPDF(o, s.pdfPath)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func orcamentoToResponse(o *model.Orcamento) *dto.OrcamentoResponse {
	itens := make([]dto.ItemOrcamentoResponse, 0, len(o.Itens))
	for _, item := range o.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		itens = append(itens, dto.ItemOrcamentoResponse{
			ID:            item.ID.String(),
			ProdutoID:     item.ProdutoID.String(),
			Produto:       nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			ValorTotal:    item.ValorTotal(),
		})
	}
	var dataEvento *string
	if o.DataEvento != nil {
		s := o.DataEvento.Format("2006-01-02")
		dataEvento = &s
	}
	var solicitacaoID *string
	if o.SolicitacaoID != nil {
		s := o.SolicitacaoID.String()
		solicitacaoID = &s
	}
	return &dto.OrcamentoResponse{
		ID:              o.ID.String(),
		NomeContratante: o.NomeContratante,
		Contato:         o.Contato,
		NomeEvento:      o.NomeEvento,
		DataEvento:      dataEvento,
		LocalEvento:     o.LocalEvento,
		ModoPagamento:   o.ModoPagamento,
		ValorTotal:      o.ValorTotal,
		Status:          o.Status,
		SolicitacaoID:   solicitacaoID,
		Itens:           itens,
		CreatedAt:       o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
