// seed crea el administrador inicial si todavía no existe.
//
// Uso: SEED_ADMIN_EMAIL=... SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Aplica las migraciones antes de insertar.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	email := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))
	if email == "" || len(cfg.Seed.AdminPassword) < 8 {
		log.Error().Msg("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD (mínimo 8 caracteres) son obligatorios")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar administrador")
	}
	if existing != nil {
		log.Info().Str("email", email).Str("role", string(existing.Role)).Msg("el usuario ya existe, nada que hacer")
		return
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         cfg.Seed.AdminName,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("id", admin.ID).Str("email", email).Msg("administrador creado")
}
