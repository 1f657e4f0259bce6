// Package main is the entry point for the picking-service application.
//
// @title           Picking Service API
// @version         1.0.0
// @description     Barcode scanning sessions for warehouse transfers.
//
//	Scanners open a session on a transfer, scan products, lots, packages and
//	locations, and save or validate the reconciled lines. Scans keep working
//	while the store is briefly unreachable and are saved on the next attempt.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/picking-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key of the scanning device. Exchanged for an operator token, or required on every request when operator tokens are off.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Operator token as "Bearer <token>".
//
// @tag.name        Pickings
// @tag.description Scanning sessions on transfers
//
// @tag.name        Auth
// @tag.description Operator token exchange
//
// @tag.name        Logs
// @tag.description Audit log queries
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/guttosm/picking-service/docs" // swagger docs

	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
