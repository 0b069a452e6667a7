package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/service"
)

type EventosHandler struct{ svc service.EventoService }

func NewEventosHandler(svc service.EventoService) *EventosHandler {
	return &EventosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar evento a partir de orcamento aprovado
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarEventoRequest true "Orcamento de origem"
// @Success      201  {object} dto.EventoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/eventos [post]
func (h *EventosHandler) Criar(c *gin.Context) {
	var req dto.CriarEventoRequest
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
// @Summary      Listar eventos agendados
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pendente | confirmado | realizado | cancelado"
// @Param        page   query int    false "Pagina (default 1)"
// @Param        limit  query int    false "Registros por pagina (default 20)"
// @Success      200 {object} dto.EventoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/eventos [get]
func (h *EventosHandler) Listar(c *gin.Context) {
	var filter dto.EventoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar eventos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter evento por ID
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do evento"
// @Success      200 {object} dto.EventoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/eventos/{id} [get]
func (h *EventosHandler) Obter(c *gin.Context) {
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
// @Summary      Atualizar observacoes e contrato do evento
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do evento"
// @Param        body body dto.AtualizarEventoRequest true "Campos a atualizar"
// @Success      200  {object} dto.EventoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/eventos/{id} [put]
func (h *EventosHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarEventoRequest
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

// AlterarStatus godoc
// @Summary      Alterar status do evento
// @Description  Transicoes validas: pendente→confirmado|cancelado, confirmado→realizado|cancelado, cancelado→pendente|confirmado. Cada estado carimba seu timestamp.
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do evento"
// @Param        body body dto.AlterarStatusEventoRequest true "Novo status"
// @Success      200  {object} dto.EventoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/eventos/{id}/status [patch]
func (h *EventosHandler) AlterarStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AlterarStatusEventoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AlterarStatus(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
