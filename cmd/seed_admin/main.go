// seed_admin crea el primer administrador en PostgreSQL.
//
// Uso: go run ./cmd/seed_admin -email admin@example.com -password 'secreto123' [-name "Admin"]
// Sin flags usa ADMIN_EMAIL, ADMIN_PASSWORD y ADMIN_NAME.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/application/auth"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/memory"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/postgres"
	"github.com/SakshamC12/fliprinventory/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	email := flag.String("email", cfg.Admin.Email, "email del administrador")
	password := flag.String("password", cfg.Admin.Password, "password (mínimo 8 caracteres)")
	name := flag.String("name", cfg.Admin.Name, "nombre visible")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// La revocación no interviene en el alta; basta el store en memoria.
	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewStaffRepository(pool), memory.NewRevocationStore(), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})
	user, err := uc.SeedAdmin(ctx, *email, *password, *name)
	if errors.Is(err, domain.ErrDuplicate) {
		fmt.Printf("El administrador %s ya existe\n", *email)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s (%s)\n", user.Email, user.ID)
}
