package main

import (
	"flag"
	"log"

	"github.com/franckalain/fitplan/internal/config"
	"github.com/franckalain/fitplan/internal/planner"
	"github.com/franckalain/fitplan/internal/server"
	"github.com/franckalain/fitplan/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file, if present
	godotenv.Load()

	configPath := flag.String("config", config.GetConfigPath(), "path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize store
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	// Initialize and start server
	srv := server.New(st, planner.New(nil), cfg.Server.Debug)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
