package main

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/younwookim/spinner/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// loadConfig reads game.yaml from dir, or from the embedded configs when dir is empty
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).Load()
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").Load()
}
