package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohitkumarofficial/reactivities/internal/api"
	"github.com/rohitkumarofficial/reactivities/internal/app"
	"github.com/rohitkumarofficial/reactivities/internal/invite"
	"github.com/rohitkumarofficial/reactivities/internal/logging"
	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/internal/registry"
	"github.com/rohitkumarofficial/reactivities/internal/session"
	"github.com/rohitkumarofficial/reactivities/internal/store"
	appsync "github.com/rohitkumarofficial/reactivities/internal/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reactivities: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String(
		"config", model.DefaultConfigPath(), "path to config file",
	)
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	if err != nil {
		return err
	}

	sess := session.New()
	if err := sess.LoadToken(); err != nil {
		log.Warn("loading stored token", "error", err)
	}

	client := api.NewClient(
		cfg.Server.BaseURL,
		sess,
		api.WithDelay(time.Duration(cfg.Server.DelayMS)*time.Millisecond),
	)

	reg := registry.New(client)

	var snapshot store.Store
	if cfg.Cache.Path != "" {
		s, err := store.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		snapshot = s

		hydrateFromSnapshot(snapshot, reg, log)
	}

	var importer *invite.Importer
	if cfg.Mail.Enabled {
		password, _ := os.LookupEnv("REACTIVITIES_MAIL_PASSWORD")
		imapClient := invite.NewIMAPClient(
			cfg.Mail.Host, cfg.Mail.Port,
			cfg.Mail.Username, password,
			cfg.Mail.Mailbox, cfg.Mail.TLS,
		)
		importer = invite.NewImporter(imapClient, reg, log)
	}

	poller := appsync.New(
		reg, importer,
		time.Duration(cfg.Sync.PollIntervalSec)*time.Second,
		log,
	)

	program := tea.NewProgram(
		app.New(reg, sess, poller),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if snapshot != nil {
		persistSnapshot(snapshot, reg, log)
	}

	if err := sess.PersistToken(); err != nil {
		log.Warn("persisting token", "error", err)
	}

	return nil
}

// hydrateFromSnapshot seeds the registry from the local cache so the
// UI has data before the first sync completes.
func hydrateFromSnapshot(
	s store.Store,
	reg *registry.Registry,
	log *slog.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	activities, err := s.GetActivities(ctx)
	if err != nil {
		log.Warn("reading snapshot", "error", err)
		return
	}
	reg.Hydrate(activities)
}

// persistSnapshot writes the final registry state back to the cache.
func persistSnapshot(
	s store.Store,
	reg *registry.Registry,
	log *slog.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.ReplaceAll(ctx, reg.All()); err != nil {
		log.Warn("writing snapshot", "error", err)
	}
}
