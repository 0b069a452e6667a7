package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/middleware"
	"github.com/CunhaBSb/m5max-sub000/internal/service"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar produto
// @Description  Cadastra um artigo pirotecnico. O codigo e gerado a partir da categoria (ex.: TRT-012).
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarProdutoRequest true "Dados do produto"
// @Success      201  {object} dto.ProdutoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
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
// @Summary      Listar produtos
// @Description  Lista paginada com filtros. ordem_preco/ordem_duracao (asc|desc) ativam o ranking por valor e excluem produtos sem duracao.
// @Tags         produtos
// @Produce      json
// @Param        nome          query string false "Busca parcial por nome"
// @Param        categoria     query string false "Categoria exata"
// @Param        ativo         query string false "true (default) | false | all"
// @Param        ordem_preco   query string false "asc | desc"
// @Param        ordem_duracao query string false "asc | desc"
// @Param        page          query int    false "Pagina (default 1)"
// @Param        limit         query int    false "Registros por pagina (default 20)"
// @Success      200 {object} dto.ProdutoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter produto por ID
// @Tags         produtos
// @Produce      json
// @Param        id path string true "UUID do produto"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) Obter(c *gin.Context) {
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
// @Summary      Atualizar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do produto"
// @Param        body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/produtos/{id} [put]
func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
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

// Desativar godoc
// @Summary      Desativar produto (soft delete)
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [delete]
func (h *ProdutosHandler) Desativar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reativar godoc
// @Summary      Reativar produto
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id}/reativar [post]
func (h *ProdutosHandler) Reativar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reativar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AjustarEstoque godoc
// @Summary      Ajustar estoque manualmente
// @Description  Aplica um delta positivo ou negativo e registra a movimentacao no historico.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do produto"
// @Param        body body dto.AjustarEstoqueRequest true "Delta e motivo"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/produtos/{id}/estoque [patch]
func (h *ProdutosHandler) AjustarEstoque(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AjustarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), id, req)
	if err != nil {
		var insuf *service.EstoqueInsuficienteError
		if errors.As(err, &insuf) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(insuf.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	// Ajuste manual fica auditável junto com quem o fez.
	if claims := middleware.GetClaims(c); claims != nil {
		log.Info().
			Str("produto_id", id.String()).
			Int("delta", req.Delta).
			Str("usuario", claims.Email).
			Msg("estoque ajustado manualmente")
	}
	c.JSON(http.StatusOK, resp)
}
