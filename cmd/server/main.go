package main

import (
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"houseflip/internal/config"
	"houseflip/internal/game"
	"houseflip/internal/ledger"
	"houseflip/internal/refdata"
	"houseflip/internal/save"
	"houseflip/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	balance := config.FromEnv()
	if path := os.Getenv("BALANCE_FILE"); path != "" {
		var err error
		balance, err = config.LoadFile(path)
		if err != nil {
			logger.WithError(err).Fatal("load balance file")
		}
	}

	catalogs := refdata.Embedded()
	if dir := os.Getenv("CATALOG_DIR"); dir != "" {
		var err error
		catalogs, err = refdata.LoadDir(dir)
		if err != nil {
			logger.WithError(err).Fatal("load catalogs")
		}
	}

	dataDir := envOr("DATA_DIR", "data")

	saves, err := save.NewFileStore(filepath.Join(dataDir, "saves"))
	if err != nil {
		logger.WithError(err).Fatal("open save store")
	}

	history, err := ledger.Open(filepath.Join(dataDir, "ledger.db"))
	if err != nil {
		logger.WithError(err).Fatal("open ledger")
	}
	defer history.Close()

	seed := time.Now().UnixNano()
	if raw := os.Getenv("GAME_SEED"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.WithField("seed", raw).Fatal("GAME_SEED must be an integer")
		}
		seed = n
	}

	state, err := game.New(game.Options{
		Catalogs: catalogs,
		Balance:  balance,
		Rand:     rand.New(rand.NewSource(seed)),
		Ledger:   history,
	})
	if err != nil {
		logger.WithError(err).Fatal("create game")
	}

	handler, err := server.NewHandler(server.Options{
		State:          state,
		Catalogs:       catalogs,
		Balance:        balance,
		Saves:          saves,
		History:        history,
		Recorder:       history,
		Logger:         logger,
		Autosave:       os.Getenv("AUTOSAVE_NAME"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
	})
	if err != nil {
		logger.WithError(err).Fatal("build server")
	}

	addr := ":" + envOr("PORT", "8080")
	logger.WithFields(logrus.Fields{"addr": addr, "seed": seed}).Info("listening")
	logger.Fatal(http.ListenAndServe(addr, handler))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
