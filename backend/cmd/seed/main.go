package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"party-planner/backend/internal/graph"
	"party-planner/backend/pkg/config"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print the guides without writing to Neo4j")
	list := flag.Bool("list", false, "List the guides currently stored after seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	guides := graph.DefaultGuides()

	if *dryRun {
		printGuides(os.Stdout, guides)
		return
	}

	if !cfg.GraphEnabled() {
		log.Fatal("Cannot seed", zap.Error(apperrors.NewConfigMissingRequired("NEO4J_URI")))
	}

	log.Info("Starting knowledge seeding...")

	ctx := context.Background()
	repo, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer repo.Close()

	log.Info("Creating constraints...")
	if err := repo.EnsureConstraints(ctx); err != nil {
		log.Fatal("Failed to create constraints", zap.Error(err))
	}

	count, err := repo.SeedGuides(ctx, guides)
	if err != nil {
		log.Fatal("Failed to seed guides", zap.Error(err))
	}
	log.Info("Seeding complete", zap.Int("guides", count))

	if *list {
		stored, err := repo.ListGuides(ctx)
		if err != nil {
			log.Fatal("Failed to list guides", zap.Error(err))
		}
		printGuides(os.Stdout, stored)
	}
}

func printGuides(w io.Writer, guides []graph.Guide) {
	for _, g := range guides {
		fmt.Fprintf(w, "%-28s [%s] %s\n", g.ID, g.Category, g.Title)
	}
	fmt.Fprintf(w, "%d guides\n", len(guides))
}
