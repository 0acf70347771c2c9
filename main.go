package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/amirsalarabedini/LinguaTask/api"
	"github.com/amirsalarabedini/LinguaTask/config"
	"github.com/amirsalarabedini/LinguaTask/session"
	"github.com/amirsalarabedini/LinguaTask/tui"
)

func main() {
	server := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	flag.Parse()

	// .env can set LINGUATASK_SERVER; a missing file is fine
	_ = godotenv.Load()

	cfg := config.Load()
	if *server != "" {
		cfg.ServerURL = *server
	}

	client := api.NewClient(cfg.ServerURL, cfg.Timeout())
	store := session.NewStore(client, session.NewTokenFile())

	m := tui.New(client, store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
