package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/gestion-bodegas/internal/application/analytics"
	"github.com/jhoicas/gestion-bodegas/internal/application/auth"
	"github.com/jhoicas/gestion-bodegas/internal/application/inventory"
	"github.com/jhoicas/gestion-bodegas/internal/application/usecase"
	infrapdf "github.com/jhoicas/gestion-bodegas/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/rest"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/store"
	"github.com/jhoicas/gestion-bodegas/internal/interfaces/cli"
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
		Out:   os.Stderr,
	})
	log.Debug().
		Str("api", cfg.API.BaseURL).
		Str("session_file", cfg.Session.File).
		Msg("iniciando cliente")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	guard := auth.NewGuard(client, store.NewFileStore(cfg.Session.File), log)

	warehouseRepo := rest.NewWarehouseRepository(guard)
	productRepo := rest.NewProductRepository(guard)
	userRepo := rest.NewUserRepository(guard)
	movementRepo := rest.NewInventoryMovementRepository(guard)
	auditRepo := rest.NewAuditRepository(guard)

	movementUC := inventory.NewRegisterMovementUseCase(guard, userRepo, movementRepo, log)
	dashboardUC := analytics.NewDashboardUseCase(guard, analytics.Sources{
		Warehouses:    warehouseRepo,
		Products:      productRepo,
		Users:         userRepo,
		Movements:     movementRepo,
		Audits:        auditRepo,
		Mine:          movementUC,
		Replenishment: inventory.NewReplenishmentUseCase(productRepo),
	}, log)

	svc := cli.Services{
		Guard:      guard,
		Registrar:  auth.NewRegistrar(client, log),
		Dashboard:  dashboardUC,
		Warehouses: usecase.NewWarehouseUseCase(warehouseRepo, userRepo),
		Products:   usecase.NewProductUseCase(productRepo),
		Movements:  movementUC,
		Users:      usecase.NewUserUseCase(userRepo),
		Audits:     usecase.NewAuditUseCase(auditRepo),
		Reports:    usecase.NewReportUseCase(guard, warehouseRepo, productRepo, rest.NewReportRepository(guard), infrapdf.NewMarotoPDFGenerator()),
	}

	d := cli.NewDispatcher(guard, os.Stdout, os.Stderr, log)
	d.Register(cli.Commands(svc)...)
	code := d.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
