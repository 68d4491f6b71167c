// Command rainroad runs the weather driving demo in a desktop window.
package main

import (
	"fmt"
	"os"

	"rainroad/internal/config"
	"rainroad/internal/game"
	"rainroad/internal/log"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rainroad: %v\n", err)
		os.Exit(1)
	}

	if err := log.InitWithFile(cfg.Debug, log.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "rainroad: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := game.RunDesktop(cfg, log.Named("game")); err != nil {
		log.Errorw("game exited with error", "error", err)
		log.Sync()
		os.Exit(1)
	}
}
