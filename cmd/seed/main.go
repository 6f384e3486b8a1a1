package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/photoshare-backend/internal/app"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"github.com/yungbote/photoshare-backend/internal/seed"
	"github.com/yungbote/photoshare-backend/internal/services"
)

func main() {
	var fixturePath string
	var wipe bool
	var dryRun bool
	flag.StringVar(&fixturePath, "fixture", "fixtures/photoshare.yaml", "YAML fixture to load")
	flag.BoolVar(&wipe, "wipe", false, "delete existing users, photos and schema info first")
	flag.BoolVar(&dryRun, "dry-run", false, "validate the fixture without touching the database")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	f, err := os.Open(fixturePath)
	if err != nil {
		log.Error("Open fixture failed", "path", fixturePath, "error", err)
		os.Exit(1)
	}
	fx, err := seed.Decode(f)
	_ = f.Close()
	if err != nil {
		log.Error("Invalid fixture", "path", fixturePath, "error", err)
		os.Exit(1)
	}
	if dryRun {
		fmt.Printf("fixture %s ok: version=%s users=%d photos=%d\n", fixturePath, fx.Version, len(fx.Users), len(fx.Photos))
		return
	}

	cfg := app.LoadConfig(log)
	db, err := app.OpenDB(log, cfg)
	if err != nil {
		log.Error("Open database failed", "error", err)
		os.Exit(1)
	}
	credentials, err := services.NewCredentialChecker(cfg.CredentialMode)
	if err != nil {
		log.Error("Credential mode rejected", "error", err)
		os.Exit(1)
	}

	r := app.NewRepos(db, log)
	loader := seed.NewLoader(log, r.Tx, r.User, r.Photo, r.SchemaInfo, credentials)
	res, err := loader.Load(context.Background(), fx, wipe)
	if err != nil {
		log.Error("Load fixture failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("loaded %s: users=%d photos=%d comments=%d\n", res.Version, res.Users, res.Photos, res.Comments)
}
