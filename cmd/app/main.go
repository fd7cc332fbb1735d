package main

import (
	"flag"
	"log"

	"github.com/andreyxaxa/Media-Service/config"
	"github.com/andreyxaxa/Media-Service/internal/app"
)

func main() {
	dotenv := flag.String("env-file", ".env", "optional dotenv file")
	flag.Parse()

	// Config
	cfg, err := config.Load(*dotenv)
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	// Run
	app.Run(cfg)
}
