package main

import (
	"fmt"

	"asset-scan/internal/asset"
	"asset-scan/internal/backend"
	"asset-scan/internal/config"
	"asset-scan/internal/database"
	"asset-scan/internal/handlers"
	"asset-scan/internal/importer"
	"asset-scan/internal/scan"
	"asset-scan/internal/server"
	"asset-scan/internal/service"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	cfg.SetupLogging()
	database.Init(cfg.DBDSN)

	client := backend.New(cfg.BackendURL)
	decoder := scan.NewQRDecoder()

	h := &handlers.Handler{
		Auth:       client,
		MasterData: &service.MasterDataService{Backend: client},
		Assets:     &service.AssetService{Backend: client, Today: asset.Today},
		Imports: &service.ImportService{Runner: &importer.Runner{
			Backend: client,
			Limit:   cfg.ImportConcurrency,
			Today:   asset.Today,
		}},
		Cameras: scan.NewRegistry(decoder, cfg.ScanSessionTTL),
		Decoder: decoder,
	}

	r, err := server.NewRouter(cfg, h)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Infof("starting server on %s (backend %s)", addr, cfg.BackendURL)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
