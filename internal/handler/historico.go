package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/repository"
)

// HistoricoHandler serves the append-only stock movement ledger.
type HistoricoHandler struct {
	repo repository.HistoricoEstoqueRepository
}

func NewHistoricoHandler(repo repository.HistoricoEstoqueRepository) *HistoricoHandler {
	return &HistoricoHandler{repo: repo}
}

// Listar godoc
// @Summary      Historico de movimentacoes de estoque
// @Description  Retorna o ledger imutavel de entradas e saidas, ordenado por data decrescente.
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        produto_id query string false "Filtrar por produto (UUID)"
// @Param        tipo       query string false "entrada | saida"
// @Param        page       query int    false "Pagina (default 1)"
// @Param        limit      query int    false "Registros por pagina (default 100, max 500)"
// @Success      200 {object} dto.HistoricoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estoque/historico [get]
func (h *HistoricoHandler) Listar(c *gin.Context) {
	filter := repository.HistoricoFilter{Tipo: c.Query("tipo")}
	if raw := c.Query("produto_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("produto_id invalido"))
			return
		}
		filter.ProdutoID = &pid
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	rows, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao obter historico de estoque"))
		return
	}

	data := make([]dto.HistoricoResponse, 0, len(rows))
	for i := range rows {
		data = append(data, historicoToDTO(&rows[i]))
	}

	c.JSON(http.StatusOK, dto.HistoricoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

func historicoToDTO(h *model.HistoricoEstoque) dto.HistoricoResponse {
	resp := dto.HistoricoResponse{
		ID:          h.ID.String(),
		ProdutoID:   h.ProdutoID.String(),
		QtdAnterior: h.QtdAnterior,
		Delta:       h.Delta,
		QtdNova:     h.QtdNova,
		Tipo:        h.Tipo,
		Motivo:      h.Motivo,
		CreatedAt:   h.CreatedAt.Format(time.RFC3339),
	}
	if h.Produto != nil {
		resp.Produto = h.Produto.Nome
	}
	if h.OrcamentoID != nil {
		s := h.OrcamentoID.String()
		resp.OrcamentoID = &s
	}
	return resp
}
