package worker

// Fila morta: jobs que estouraram as tentativas param em dlq:<fila> e
// ficam lá até alguém inspecionar via redis-cli.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry embrulha o job falho com o contexto da falha.
type DLQEntry struct {
	FilaOrigem string          `json:"fila_origem"`
	TipoJob    string          `json:"tipo_job"`
	Payload    json.RawMessage `json:"payload"`
	Motivo     string          `json:"motivo"`
	FalhouEm   string          `json:"falhou_em"` // RFC 3339
	Tentativas int             `json:"tentativas"`
}

// SendToDLQ estaciona um job esgotado na fila morta. Nunca devolve erro:
// se até o LPush falhar, o log é o que resta.
func SendToDLQ(ctx context.Context, rdb *redis.Client, fila, tipoJob string, payload json.RawMessage, motivo string, tentativas int) {
	entry := DLQEntry{
		FilaOrigem: fila,
		TipoJob:    tipoJob,
		Payload:    payload,
		Motivo:     motivo,
		FalhouEm:   time.Now().UTC().Format(time.RFC3339),
		Tentativas: tentativas,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: marshal")
		return
	}

	key := DLQPrefix + fila
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: push")
		return
	}

	log.Warn().Str("dlq_key", key).Str("tipo", tipoJob).Int("tentativas", tentativas).
		Msg("dlq: job estacionado")
}
