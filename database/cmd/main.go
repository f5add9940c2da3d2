package main

import (
	"flag"
	"os"

	"luax.health/configs"
	"luax.health/configs/configsdatabase"
	"luax.health/configs/configslog"
	"luax.health/database"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "apply pending schema migrations")
	seedFlag := flag.Bool("seed", false, "insert the demo patient and walk-in booking")
	flag.Parse()

	cfg := configs.Load()
	configslog.InitLogger(cfg.LogLevel, cfg.LogFormat)
	defer configslog.SyncLogger()

	db := configsdatabase.InitDB(cfg)
	defer configsdatabase.CloseDB()

	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.SLog.Errorf("Database initialization failed: %v", err)
		configsdatabase.CloseDB()
		configslog.SyncLogger()
		os.Exit(1)
	}
}
