package dto

// HistoricoResponse é uma linha do ledger de estoque.
type HistoricoResponse struct {
	ID          string  `json:"id"`
	ProdutoID   string  `json:"produto_id"`
	Produto     string  `json:"produto"`
	QtdAnterior int     `json:"qtd_anterior"`
	Delta       int     `json:"delta"`
	QtdNova     int     `json:"qtd_nova"`
	Tipo        string  `json:"tipo"`
	Motivo      string  `json:"motivo"`
	OrcamentoID *string `json:"orcamento_id"`
	CreatedAt   string  `json:"created_at"`
}

type HistoricoListResponse struct {
	Data  []HistoricoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
