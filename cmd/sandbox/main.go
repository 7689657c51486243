package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
	httpRouter "github.com/jhoicas/gestion-bodegas/internal/interfaces/http"
	"github.com/jhoicas/gestion-bodegas/pkg/config"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando backend sandbox")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	db := memdb.New(cfg.Sandbox.BcryptCost)
	if err := db.SeedDemo(cfg.Sandbox.Password); err != nil {
		log.Fatal().Err(err).Msg("sembrar datos de demostración")
	}
	log.Info().Strs("usuarios", []string{"ana (ADMIN)", "carlos (ENCARGADO)", "olga (OPERADOR)"}).Msg("datos de demostración cargados")

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		DB: db,
		Tokens: httpRouter.TokenConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Log: log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("sandbox detenido")
}
