package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		log.Printf("application stopped with error: %v", err)
		cleanup()
		os.Exit(1)
	}
}
