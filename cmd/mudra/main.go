package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/feed"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

type config struct {
	Addr        string `env:"MUDRA_ADDR" envDefault:":8080"`
	DataDir     string `env:"MUDRA_DATA_DIR"`
	PluginDir   string `env:"MUDRA_PLUGIN_DIR"`
	RightHanded bool   `env:"MUDRA_RIGHT_HANDED" envDefault:"true"`
	TickRate    int    `env:"MUDRA_TICK_RATE" envDefault:"30"`
	Replay      string `env:"MUDRA_REPLAY_RECORDING"`
	ReplayLoop  bool   `env:"MUDRA_REPLAY_LOOP" envDefault:"true"`
}

func main() {
	fmt.Println("Mudra - Hand Gesture Detection")

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, ".mudra")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	pluginDir := cfg.PluginDir
	if pluginDir == "" {
		pluginDir = filepath.Join(dataDir, "plugins")
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	application := app.New(app.Config{
		Store:       st,
		PluginDir:   pluginDir,
		RightHanded: cfg.RightHanded,
		TickRate:    cfg.TickRate,
	})

	if err := application.LoadGestures(); err != nil {
		log.Fatalf("Failed to load gestures: %v", err)
	}
	if err := application.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	// A replay recording stands in for a live tracking collaborator. Without
	// one the daemon idles: the API still works, gestures just never activate.
	if cfg.Replay != "" {
		source, err := feed.NewReplaySource(st, cfg.Replay, cfg.ReplayLoop)
		if err != nil {
			log.Fatalf("Failed to open replay recording: %v", err)
		}
		application.SetSource(source)
		application.SetEnabled(true)
		if err := application.Start(); err != nil {
			log.Fatalf("Failed to start pipeline: %v", err)
		}
		defer application.Stop()
	}

	srv := server.New(server.Config{
		Store:     st,
		Registrar: application,
		Recorder:  application,
		Tracker:   application.Coordinator(),
	})

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
