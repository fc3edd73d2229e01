// Command classify runs one batch pass of the sighting classification
// pipeline against a SQLite database: it loads every geotagged observation,
// partitions each MAC's activity into static and mobile behaviour, and
// atomically writes the resulting static_aps and mobile_track tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sigtrace-labs/sigtrace/internal/classify"
	"github.com/sigtrace-labs/sigtrace/internal/config"
	"github.com/sigtrace-labs/sigtrace/internal/monitoring"
	"github.com/sigtrace-labs/sigtrace/internal/store"
	"github.com/sigtrace-labs/sigtrace/internal/version"
)

var (
	dbFile      = flag.String("db", "sightings.db", "Path to the SQLite database file")
	preset      = flag.String("preset", "driving", "Tuning preset to use when -config is not set: driving or walking")
	configPath  = flag.String("config", "", "Path to a JSON tuning override file (layered over the driving preset; -preset is ignored when set)")
	versionFlag = flag.Bool("version", false, "Print version information and exit")
)

func resolveConfig() (config.Resolved, error) {
	if *configPath != "" {
		cfg, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			return config.Resolved{}, fmt.Errorf("load config %s: %w", *configPath, err)
		}
		return cfg.Resolve(), nil
	}

	switch *preset {
	case "driving":
		return config.DrivingPreset().Resolve(), nil
	case "walking":
		return config.WalkingPreset().Resolve(), nil
	default:
		return config.Resolved{}, fmt.Errorf("unknown preset %q, want driving or walking", *preset)
	}
}

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("classify v%s (git SHA: %s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	db, err := store.Open(*dbFile)
	if err != nil {
		log.Fatalf("classify: open database %s: %v", *dbFile, err)
	}
	defer db.Close()

	startedAt := time.Now()
	pipeline := classify.New(db, db, cfg)
	result, err := pipeline.Run(context.Background())
	if err != nil {
		log.Fatalf("classify: run failed: %v", err)
	}

	if err := db.RecordRun(context.Background(), result, startedAt.Unix()); err != nil {
		monitoring.Logf("classify: failed to record run summary: %v", err)
	}

	fmt.Printf("run %s: %d observations -> %d static APs, %d mobile track points\n",
		result.RunID, result.NObservations, len(result.StaticAPs), len(result.MobileTracks))
	os.Exit(0)
}
