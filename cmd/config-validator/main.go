package main

import (
	"fmt"
	"os"

	"github.com/chess10kp/tuicher/internal/config"
)

func main() {
	configPath := "~/.config/tuicher/config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	fmt.Printf("Validating config: %s\n", configPath)

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		fmt.Printf("❌ Config validation failed: %v\n", err)
		os.Exit(1)
	}

	engine, ok := cfg.DefaultEngine()
	if ok {
		fmt.Printf("Default search engine: %s (%s)\n", engine.Name, engine.URL)
	} else {
		fmt.Println("Default search engine: none")
	}
	fmt.Printf("Search engines: %d, bookmarks: %d\n", len(cfg.SearchEngines), len(cfg.Bookmarks))
	fmt.Println("✅ Config is valid!")
}
