package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/carbo/internal/config"
	"github.com/MrJamesThe3rd/carbo/internal/database"
	carboHttp "github.com/MrJamesThe3rd/carbo/internal/http"
	matchingHandler "github.com/MrJamesThe3rd/carbo/internal/http/matching"
	"github.com/MrJamesThe3rd/carbo/internal/matcher"
	matcherStore "github.com/MrJamesThe3rd/carbo/internal/matcher/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	matcherService := matcher.NewService(matcherStore.New(db), cfg.MatcherConfig())
	matchingH := matchingHandler.NewHandler(matcherService)

	router := carboHttp.New(matchingH, cfg.Auth.JWTSecret, cfg.Server.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
