package main

import (
	"errors"
	"fmt"
	"os"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/storage"
	"todo/internal/todo"
	"todo/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	logger.Info("starting", "config", configPath, "first_launch", firstLaunch, "backend", cfg.Storage.Backend)

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := todo.NewStore(kv, todo.Options{Key: cfg.Storage.Key, Logger: logger})
	store.Initialize()

	if err := ui.Run(store, cfg); err != nil {
		logger.Error("ui exited", "err", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
