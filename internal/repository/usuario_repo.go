package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CunhaBSb/m5max-sub000/internal/model"
	"github.com/CunhaBSb/m5max-sub000/internal/realtime"
)

// UsuarioRepository is the data access contract for back-office users.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ListAtivos(ctx context.Context) ([]model.Usuario, error)
	ListTodos(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	Desativar(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct {
	Base[model.Usuario]
}

func NewUsuarioRepository(db *gorm.DB, hub *realtime.Hub) UsuarioRepository {
	return &usuarioRepo{Base: NewBase[model.Usuario](db, hub, model.Usuario{}.TableName())}
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.DB().WithContext(ctx).Where("email = ? AND ativo = true", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ListAtivos(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.DB().WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) ListTodos(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.DB().WithContext(ctx).Order("nome ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.DB().WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).Update("ativo", false).Error
}

func (r *usuarioRepo) Reativar(ctx context.Context, id uuid.UUID) error {
	return r.DB().WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).Update("ativo", true).Error
}
