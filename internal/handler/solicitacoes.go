package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/service"
)

type SolicitacoesHandler struct{ svc service.SolicitacaoService }

func NewSolicitacoesHandler(svc service.SolicitacaoService) *SolicitacoesHandler {
	return &SolicitacoesHandler{svc: svc}
}

// Criar godoc
// @Summary      Enviar solicitacao de orcamento
// @Description  Endpoint publico dos formularios do site. Tipo contratar_equipe gera automaticamente um orcamento pendente e um aviso por e-mail e assincrono para a equipe.
// @Tags         solicitacoes
// @Accept       json
// @Produce      json
// @Param        body body dto.CriarSolicitacaoRequest true "Dados do formulario"
// @Success      201  {object} dto.SolicitacaoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/solicitacoes [post]
func (h *SolicitacoesHandler) Criar(c *gin.Context) {
	var req dto.CriarSolicitacaoRequest
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
// @Summary      Listar solicitacoes recebidas
// @Tags         solicitacoes
// @Produce      json
// @Security     BearerAuth
// @Param        tipo          query string false "kit | contratar_equipe"
// @Param        enviado_email query bool   false "Filtrar por aviso enviado"
// @Param        page          query int    false "Pagina (default 1)"
// @Param        limit         query int    false "Registros por pagina (default 20)"
// @Success      200 {object} dto.SolicitacaoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/solicitacoes [get]
func (h *SolicitacoesHandler) Listar(c *gin.Context) {
	var filter dto.SolicitacaoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar solicitacoes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter solicitacao por ID
// @Tags         solicitacoes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da solicitacao"
// @Success      200 {object} dto.SolicitacaoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/solicitacoes/{id} [get]
func (h *SolicitacoesHandler) Obter(c *gin.Context) {
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

// MarcarProcessada godoc
// @Summary      Marcar solicitacao como processada
// @Description  Registra que a equipe ja tratou a solicitacao, sem depender do worker de e-mail.
// @Tags         solicitacoes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da solicitacao"
// @Success      200 {object} dto.SolicitacaoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/solicitacoes/{id}/processar [patch]
func (h *SolicitacoesHandler) MarcarProcessada(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.MarcarProcessada(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
