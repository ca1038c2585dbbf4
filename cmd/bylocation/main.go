package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/api"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/catalog"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/config"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database/repository"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/logging"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/service"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/session"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/testdata"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/tui"
)

func main() {
	seed := flag.Bool("seed", false, "fill the local snapshot cache with sample bookings")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New("bylocation", cfg.Log.Path)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	sessions, err := session.NewStore(cfg.Session.Dir)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	// a corrupt session file forces logout; the app then runs in guest mode
	var user *session.User
	switch u, err := sessions.Load(); {
	case err == nil:
		user = &u
	case errors.Is(err, session.ErrNoSession):
	case errors.Is(err, session.ErrCorrupt):
		logger.Warn("stored session unreadable, signed out")
	default:
		log.Fatalf("session: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		log.Fatalf("mkdir cache dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Cache.Path, cfg.Cache.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Cache.Path)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}
	defer db.Close()

	cache := repository.NewBookingRepo(db)

	if *seed && user != nil {
		if err := testdata.Seed(ctx, cache, user.ID); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	client := api.New(cfg.API.BaseURL, logger)

	dashboard := &service.Dashboard{API: client, Cache: cache, Log: logger}
	profile := &service.Profile{API: client, Sessions: sessions, Log: logger}

	p := tea.NewProgram(tui.New(ctx, catalog.New(),
		tui.Services{Dashboard: dashboard, Profile: profile},
		sessions, user,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
