// Command seed loads a YAML manifest of demo users, projects and prompts
// into the database. Safe to re-run: existing users are skipped.
//
//	go run ./cmd/seed -manifest seed.yaml
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"promptvault/internal/config"
	"promptvault/internal/repository/postgres"
	"promptvault/internal/seed"
)

func main() {
	manifestPath := flag.String("manifest", "seed.yaml", "path to the YAML seed manifest")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	manifest, err := seed.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	seeder := seed.NewSeeder(
		postgres.NewUserRepository(repoConfig),
		postgres.NewProjectRepository(repoConfig),
		postgres.NewPromptRepository(repoConfig),
		postgres.NewResponseRepository(repoConfig),
		postgres.NewAttachmentRepository(repoConfig),
		logger,
	)

	if err := seeder.Apply(ctx, manifest); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	logger.Info("seed complete",
		"manifest", *manifestPath,
		"users", len(manifest.Users),
	)
}
