package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CriarSolicitacaoRequest chega dos formulários do site público, sem
// autenticação. Tipo "contratar_equipe" gera um orçamento pendente.
type CriarSolicitacaoRequest struct {
	NomeCliente string  `json:"nome_cliente" validate:"required,min=2,max=120"`
	Whatsapp    string  `json:"whatsapp"     validate:"omitempty,min=10,max=15"`
	Email       string  `json:"email"        validate:"omitempty,email"`
	Tipo        string  `json:"tipo"         validate:"omitempty,oneof=kit contratar_equipe"`
	KitDesejado string  `json:"kit_desejado"`
	TipoEvento  string  `json:"tipo_evento"`
	DataEvento  *string `json:"data_evento"  validate:"omitempty,datetime=2006-01-02"`
	LocalEvento string  `json:"local_evento"`
	Observacoes string  `json:"observacoes"  validate:"max=2000"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type SolicitacaoFilter struct {
	Tipo         string `form:"tipo"`
	EnviadoEmail *bool  `form:"enviado_email"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SolicitacaoResponse struct {
	ID           string  `json:"id"`
	NomeCliente  string  `json:"nome_cliente"`
	Whatsapp     string  `json:"whatsapp"`
	Email        string  `json:"email"`
	Tipo         string  `json:"tipo"`
	KitDesejado  string  `json:"kit_desejado"`
	TipoEvento   string  `json:"tipo_evento"`
	DataEvento   *string `json:"data_evento"`
	LocalEvento  string  `json:"local_evento"`
	Observacoes  string  `json:"observacoes"`
	EnviadoEmail bool    `json:"enviado_email"`
	// OrcamentoID é preenchido quando a solicitação gerou orçamento automático.
	OrcamentoID *string `json:"orcamento_id"`
	CreatedAt   string  `json:"created_at"`
	// Deep links prontos para a equipe responder pelo canal que o
	// cliente informou.
	LinkWhatsapp string `json:"link_whatsapp,omitempty"`
	LinkEmail    string `json:"link_email,omitempty"`
}

type SolicitacaoListResponse struct {
	Data  []SolicitacaoResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
