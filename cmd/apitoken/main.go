// Mints a bearer token for the collaborator HTTP API.
package main

import (
	"flag"
	"fmt"
	"log"

	"invite-warden/internal/config"
	"invite-warden/internal/security"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	subject := flag.String("subject", "command-layer", "Token subject")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tokens := security.NewTokenManager(cfg.Security.JWTSecret)
	token, err := tokens.GenerateAPIToken(*subject, cfg.TokenExpiry())
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
