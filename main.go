package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	dbsqlite "locmate/internal/adapters/db/sqlite"
	llmfactory "locmate/internal/adapters/llm/factory"
	apiapp "locmate/internal/api/app"
	"locmate/internal/glossary"
	memoryusecase "locmate/internal/usecase/memory"
	translatorusecase "locmate/internal/usecase/translator"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	db, err := dbsqlite.Init("data/locmate.db")
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}

	memoryRepo := dbsqlite.NewMemoryRepo(db)
	glossaryRepo := dbsqlite.NewGlossaryRepo(db)
	providerRepo := dbsqlite.NewProviderRepo(db)
	settingsRepo := dbsqlite.NewSettingsRepo(db)

	memorySvc := memoryusecase.New(memoryRepo, logger)
	glossarySvc := glossary.NewService(glossaryRepo, logger)
	translateSvc := translatorusecase.New(translatorusecase.Deps{
		Providers:     providerRepo,
		Memory:        memorySvc,
		Glossary:      glossarySvc,
		BuildProvider: llmfactory.FromProvider,
		Logger:        logger,
	})

	relay := &eventRelay{}
	app := NewApp(relay)

	memoryAPI := apiapp.NewMemoryAPI(memorySvc)
	glossaryAPI := apiapp.NewGlossaryAPI(glossarySvc)
	translateAPI := apiapp.NewTranslateAPI(translateSvc)
	batchAPI := apiapp.NewBatchAPI(translateSvc, relay, logger)
	providerAPI := apiapp.NewProviderAPI(providerRepo)
	settingsAPI := apiapp.NewSettingsAPI(settingsRepo)

	err = wails.Run(&options.App{
		Title:  "locmate",
		Width:  1200,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
			memoryAPI,
			glossaryAPI,
			translateAPI,
			batchAPI,
			providerAPI,
			settingsAPI,
		},
	})
	if err != nil {
		logger.Error("wails run failed", "error", err)
		os.Exit(1)
	}
}
