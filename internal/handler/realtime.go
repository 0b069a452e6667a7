package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CunhaBSb/m5max-sub000/internal/apierror"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// Tabelas expostas no stream de mudanças.
var tabelasAssinaveis = map[string]bool{
	"produtos":               true,
	"orcamentos":             true,
	"orcamentos_produtos":    true,
	"solicitacoes_orcamento": true,
	"eventos":                true,
	"historico_estoque":      true,
}

// RealtimeHandler streams table change events over Server-Sent Events.
type RealtimeHandler struct{ hub *realtime.Hub }

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Stream godoc
// @Summary      Stream de mudancas (SSE)
// @Description  Assina uma ou mais tabelas (query tabelas=produtos,orcamentos) e recebe eventos insert/update/delete como Server-Sent Events.
// @Tags         realtime
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        tabelas query string true "Tabelas separadas por virgula"
// @Success      200
// @Failure      400 {object} apierror.APIError
// @Router       /v1/realtime [get]
func (h *RealtimeHandler) Stream(c *gin.Context) {
	raw := c.Query("tabelas")
	if raw == "" {
		c.JSON(http.StatusBadRequest, apierror.New("informe ao menos uma tabela"))
		return
	}
	tabelas := strings.Split(raw, ",")
	for _, t := range tabelas {
		if !tabelasAssinaveis[t] {
			c.JSON(http.StatusBadRequest, apierror.Newf("tabela %q nao assinavel", t))
			return
		}
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Buffer absorve rajadas sem bloquear o hub; eventos excedentes são
	// descartados, o cliente re-sincroniza via listagem.
	events := make(chan realtime.Event, 64)
	unsubs := make([]func(), 0, len(tabelas))
	for _, t := range tabelas {
		unsub := h.hub.Subscribe(t, func(ev realtime.Event) {
			select {
			case events <- ev:
			default:
			}
		})
		unsubs = append(unsubs, unsub)
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(data))
			return true
		}
	})
}
