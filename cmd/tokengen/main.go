// Command tokengen prints a bearer token for itembox write routes.
//
//	AUTH_JWT_SECRET=... tokengen -subject deploy-bot -ttl 720h
//
// The secret and issuer are read the same way the server reads them, so a
// token minted here validates against a server sharing its config.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sakif/itembox/internal/auth"
	"github.com/sakif/itembox/internal/config"
)

func main() {
	subject := flag.String("subject", "", "who the token is issued to (required)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !cfg.Auth.Enabled() {
		slog.Error("auth.jwt_secret is not set; the server accepts writes without a token")
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if err != nil {
		slog.Error("failed to create token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := tokens.Generate(*subject, *ttl)
	if err != nil {
		slog.Error("failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
