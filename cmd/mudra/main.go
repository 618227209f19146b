package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracker"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	noTray := flag.Bool("no-tray", false, "run without the system tray icon")
	flag.Parse()

	fmt.Println("Mudra - Fingertip Gesture Daemon")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:         st,
		PluginDir:     cfg.PluginDir(),
		TrackerScript: cfg.TrackerScript,
		Tracker: tracker.Config{
			MaxHands:      cfg.MaxHands,
			MinConfidence: cfg.MinConfidence,
		},
		MovementThresh: cfg.MovementThreshold,
	})

	if err := a.LoadRules(); err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	srv := server.New(server.Config{
		StaticDir: cfg.StaticDir,
		Store:     st,
		Provider:  a.Provider(),
		OnRulesChanged: func() {
			if err := a.ReloadRules(); err != nil {
				log.Printf("Failed to reload rules: %v", err)
			}
		},
	})

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	if cfg.Tray && !*noTray {
		runWithTray(cfg, a, srv)
		return
	}

	a.SetEventCallback(func(e gesture.Event) {
		srv.Events().Publish(e)
	})

	fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// runWithTray runs the HTTP server in the background and blocks on the
// system tray loop, which must own the main goroutine.
func runWithTray(cfg config.Config, a *app.App, srv *server.Server) {
	t := tray.New()

	a.SetEventCallback(func(e gesture.Event) {
		srv.Events().Publish(e)
		t.SetLastEvent(fmt.Sprintf("%s %s", e.RuleName, e.Phase))
	})

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnSettings(func() {
		log.Printf("Settings available at http://localhost%s/", cfg.ListenAddr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t.Run()
}
