package model

import (
	"time"

	"github.com/google/uuid"
)

// Papéis de acesso à área administrativa.
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
)

// Usuario é um membro da equipe com acesso ao back-office.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"not null;default:'operador'"`
	Ativo        bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
