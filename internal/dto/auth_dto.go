package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CriarUsuarioRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Nome     string `json:"nome"     validate:"required,min=2,max=120"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol"      validate:"required,oneof=admin operador"`
}

type AtualizarUsuarioRequest struct {
	Nome     string `json:"nome"     validate:"omitempty,min=2,max=120"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin operador"`
}

type UsuarioResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Rol   string `json:"rol"`
	Ativo bool   `json:"ativo"`
}
