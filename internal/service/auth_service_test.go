package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CunhaBSb/m5max-sub000/internal/config"
	"github.com/CunhaBSb/m5max-sub000/internal/dto"
	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, email, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	require.NoError(t, err)
	u := &model.Usuario{
		Email:        email,
		Nome:         "Usuario Teste",
		PasswordHash: string(hash),
		Rol:          rol,
		Ativo:        true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginComCredenciaisValidas(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "admin@m5max.com", "senha123", model.RolAdmin)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@m5max.com", Password: "senha123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RolAdmin, resp.User.Rol)
}

func TestLoginComSenhaErrada(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "admin@m5max.com", "senha123", model.RolAdmin)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@m5max.com", Password: "outra",
	})
	assert.EqualError(t, err, "credenciais invalidas")
}

func TestLoginUsuarioInativo(t *testing.T) {
	svc, repo := newAuthFixture(t)
	u := seedUsuario(t, repo, "op@m5max.com", "senha123", model.RolOperador)
	u.Ativo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "op@m5max.com", Password: "senha123",
	})
	assert.Error(t, err)
}

func TestRefreshEmiteNovosTokens(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUsuario(t, repo, "admin@m5max.com", "senha123", model.RolAdmin)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@m5max.com", Password: "senha123"})
	require.NoError(t, err)

	resp, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin@m5max.com", resp.User.Email)
}

func TestRefreshComTokenInvalido(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "nao-e-um-jwt")
	assert.Error(t, err)
}

func TestCriarEAtualizarUsuario(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	criado, err := svc.CriarUsuario(ctx, dto.CriarUsuarioRequest{
		Email:    "novo@m5max.com",
		Nome:     "Novo Operador",
		Password: "senha12345",
		Rol:      model.RolOperador,
	})
	require.NoError(t, err)
	assert.True(t, criado.Ativo)

	id := mustParse(t, criado.ID)
	atualizado, err := svc.AtualizarUsuario(ctx, id, dto.AtualizarUsuarioRequest{
		Nome: "Operador Renomeado",
		Rol:  model.RolAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Operador Renomeado", atualizado.Nome)
	assert.Equal(t, model.RolAdmin, atualizado.Rol)

	require.NoError(t, svc.DesativarUsuario(ctx, id))
	assert.False(t, repo.usuarios[id].Ativo)

	ativos, err := svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, ativos)

	todos, err := svc.ListarUsuarios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
