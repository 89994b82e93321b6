package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davixiao/MeetTheDev/cmd/tui/ui"
	"github.com/davixiao/MeetTheDev/internal/client/api"
	"github.com/davixiao/MeetTheDev/internal/client/config"
	"github.com/davixiao/MeetTheDev/internal/client/storage/boltdb"
	"github.com/davixiao/MeetTheDev/internal/client/store"
	"github.com/davixiao/MeetTheDev/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal owns stdout, so logs only go to LOG_FILE when set.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Output: out, Service: "tui"})

	tokens, err := boltdb.Open(cfg.TokenDB)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer tokens.Close()

	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout)
	actions := store.NewActions(client, tokens, cfg.RequestTimeout, cfg.AlertTTL, logger.Component(log, "store"))
	initial := store.Initial(actions.RestoreToken())

	log.Info().Str("api_url", cfg.APIURL).Bool("restored_session", initial.Auth.Token != "").Msg("tui starting")

	p := tea.NewProgram(ui.NewModel(actions, initial), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
