package main

import (
	"context"
	"os"

	"github.com/HenriqueSydney/03-marketspace/internal/config"
	"github.com/HenriqueSydney/03-marketspace/internal/infra/api"
	"github.com/HenriqueSydney/03-marketspace/internal/infra/security"
	"github.com/HenriqueSydney/03-marketspace/internal/interface/cli"
	"github.com/HenriqueSydney/03-marketspace/internal/log"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/advert"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/auth"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/catalog"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/filter"
)

func main() {
	cfg := config.Load()

	tokens := security.NewTokenFile(cfg.TokenFile)
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, tokens)

	store := catalog.NewStore(client)
	app := cli.NewApp(cli.Dependencies{
		Out:    os.Stdout,
		Client: client,
		Store:  store,
		Flow:   advert.NewFlow(client),
		Auth:   auth.NewService(client, tokens),
		Modal:  filter.NewModal(store),
	})

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		log.Error("command", err, map[string]any{"args": os.Args[1:]})
		os.Exit(1)
	}
}
