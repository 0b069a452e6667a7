package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the whole schema. The schema is small enough that AutoMigrate plus one
// idempotent patch block covers it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates all tables and applies the DDL that GORM
// cannot express on its own. Safe to re-run.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Produto{},
		&model.Orcamento{},
		&model.OrcamentoProduto{},
		&model.SolicitacaoOrcamento{},
		&model.Evento{},
		&model.HistoricoEstoque{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements beyond AutoMigrate's reach.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Quantidade nunca fica negativa — última linha de defesa além da
		// validação de negócio na transição de status.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_qtd_disponivel') THEN
		    ALTER TABLE produtos ADD CONSTRAINT chk_produtos_qtd_disponivel CHECK (qtd_disponivel >= 0);
		  END IF;
		END $$`,
		// Status fora do enum de seis valores é rejeitado pelo banco.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_orcamentos_status') THEN
		    ALTER TABLE orcamentos ADD CONSTRAINT chk_orcamentos_status
		      CHECK (status IN ('pendente','processado','aprovado','confirmado','realizado','cancelado'));
		  END IF;
		END $$`,
		// Índice parcial para o cron de reenvio de e-mails.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_solicitacoes_nao_enviadas') THEN
		    CREATE INDEX idx_solicitacoes_nao_enviadas
		        ON solicitacoes_orcamento (created_at)
		        WHERE enviado_email = false;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
