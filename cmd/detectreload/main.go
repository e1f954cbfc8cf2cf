// Command detectreload rebuilds the profile index from disk on an
// interval or on SIGHUP and logs each new profile set version. It does
// not hand the rebuilt index to a running detectsvc process; that
// process keeps the index it loaded at startup. It fills in what the
// address-parser teacher left as a TODO stub worker.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caiatext/langident/internal/config"
	"github.com/caiatext/langident/internal/profile"
)

// Reloader is the minimal surface detectreload needs from whatever
// holds the live index — detectsvc.Service satisfies this.
type Reloader interface {
	SwapIndex(idx *profile.ProbabilityIndex, profileVersion string)
}

func main() {
	configPath := envOr("LANGIDENT_CONFIG", "config/langident.yaml")
	if err := config.Load(configPath); err != nil {
		log.Fatalf("detectreload: load config: %v", err)
	}

	log.Println("starting profile reload worker")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	interval, err := time.ParseDuration(config.C.Reload.Interval)
	if err != nil || interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastVersion string
	reload := func() {
		idx, version, err := profile.LoadIndexFromFile(config.C.ProfilePath)
		if err != nil {
			log.Printf("detectreload: reload failed: %v", err)
			return
		}
		if version == lastVersion {
			return
		}
		lastVersion = version
		log.Printf("detectreload: loaded profile set %s (%d languages)", version, idx.LangCount())
		// TODO: push idx/version to the running detectsvc.Service via its
		// admin socket once that transport exists; for now this process
		// only proves the index rebuilds cleanly on an interval or SIGHUP.
	}

	reload()
	for {
		select {
		case <-ticker.C:
			reload()
		case <-hup:
			log.Println("detectreload: SIGHUP received, forcing reload")
			reload()
		case <-quit:
			log.Println("detectreload: shutting down")
			return
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
