package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/service"
)

type OrcamentosHandler struct{ svc service.OrcamentoService }

func NewOrcamentosHandler(svc service.OrcamentoService) *OrcamentosHandler {
	return &OrcamentosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar orcamento
// @Description  Cria um orcamento pendente sem itens. Itens sao adicionados depois, congelando o preco de venda vigente.
// @Tags         orcamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarOrcamentoRequest true "Dados do orcamento"
// @Success      201  {object} dto.OrcamentoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orcamentos [post]
func (h *OrcamentosHandler) Criar(c *gin.Context) {
	var req dto.CriarOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar orcamentos
// @Tags         orcamentos
// @Produce      json
// @Security     BearerAuth
// @Param        status           query string false "pendente | processado | aprovado | confirmado | realizado | cancelado"
// @Param        nome_contratante query string false "Busca parcial"
// @Param        page             query int    false "Pagina (default 1)"
// @Param        limit            query int    false "Registros por pagina (default 20)"
// @Success      200 {object} dto.OrcamentoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/orcamentos [get]
func (h *OrcamentosHandler) Listar(c *gin.Context) {
	var filter dto.OrcamentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar orcamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter orcamento por ID
// @Tags         orcamentos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do orcamento"
// @Success      200 {object} dto.OrcamentoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orcamentos/{id} [get]
func (h *OrcamentosHandler) Obter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary      Atualizar dados do orcamento
// @Tags         orcamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do orcamento"
// @Param        body body dto.AtualizarOrcamentoRequest true "Campos a atualizar"
// @Success      200  {object} dto.OrcamentoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orcamentos/{id} [put]
func (h *OrcamentosHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdicionarItem godoc
// @Summary      Adicionar item ao orcamento
// @Tags         orcamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do orcamento"
// @Param        body body dto.AdicionarItemRequest true "Produto e quantidade"
// @Success      200  {object} dto.OrcamentoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orcamentos/{id}/itens [post]
func (h *OrcamentosHandler) AdicionarItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdicionarItem(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoverItem godoc
// @Summary      Remover item do orcamento
// @Tags         orcamentos
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "UUID do orcamento"
// @Param        itemId path string true "UUID do item"
// @Success      200 {object} dto.OrcamentoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/orcamentos/{id}/itens/{itemId} [delete]
func (h *OrcamentosHandler) RemoverItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.svc.RemoverItem(c.Request.Context(), id, itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AlterarStatus godoc
// @Summary      Alterar status do orcamento
// @Description  Aplica a transicao de status. Entrar no grupo aprovado baixa o estoque de todos os itens de forma atomica; orcamento aprovado cancelado devolve as quantidades.
// @Tags         orcamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do orcamento"
// @Param        body body dto.AlterarStatusRequest true "Novo status"
// @Success      200  {object} dto.AlterarStatusResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError "Estoque insuficiente"
// @Router       /v1/orcamentos/{id}/status [patch]
func (h *OrcamentosHandler) AlterarStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AlterarStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AlterarStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		var insuf *service.EstoqueInsuficienteError
		if errors.As(err, &insuf) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(insuf.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GerarPDF godoc
// @Summary      Gerar e baixar o PDF do orcamento
// @Tags         orcamentos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID do orcamento"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orcamentos/{id}/pdf [get]
func (h *OrcamentosHandler) GerarPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.GerarPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "orcamento_"+id.String()+".pdf")
}
