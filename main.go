package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/klokku/hackathons/internal/commands"
	log "github.com/sirupsen/logrus"
)

func init() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	if err := commands.NewApp(commands.Options{}).RunContext(context.Background(), os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
