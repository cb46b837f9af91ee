// Command seed provisions a development database with a staff account
// and a couple of plans so the API is usable right after migrations.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tumentor/tumentor-api/internal/models"
	"github.com/tumentor/tumentor-api/internal/repository"
	"github.com/tumentor/tumentor-api/pkg/config"
	"github.com/tumentor/tumentor-api/pkg/database"
)

func main() {
	email := flag.String("email", "admin@tumentor.pe", "admin account email")
	password := flag.String("password", "changeme", "admin account password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'ADMIN', TRUE, $5, $5)
		ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), *email, "Administración", string(hash), now); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	plans := repository.NewPlanRepository(db)
	for _, plan := range []models.Plan{
		{Name: "Plan Estándar", Price: decimal.NewFromInt(100), AllowProration: true, Active: true},
		{Name: "Plan Intensivo", Price: decimal.RequireFromString("149.90"), AllowProration: true, Active: true},
		{Name: "Plan Taller", Price: decimal.NewFromInt(60), AllowProration: false, Active: true},
	} {
		p := plan
		var exists bool
		if err := db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM plans WHERE name = $1)`, p.Name); err != nil {
			log.Fatalf("check plan %s: %v", p.Name, err)
		}
		if exists {
			continue
		}
		if err := plans.Create(ctx, &p); err != nil {
			log.Fatalf("seed plan %s: %v", p.Name, err)
		}
	}

	log.Printf("seed complete: admin=%s plans ensured", *email)
}
