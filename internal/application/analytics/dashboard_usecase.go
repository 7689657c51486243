// Package analytics contiene el dashboard de la aplicación: una sola vista parametrizada
// por rol que verifica el acceso, calcula los contadores y carga cada sección.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-bodegas/internal/application/access"
	"github.com/jhoicas/gestion-bodegas/internal/application/auth"
	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

// StockThreshold umbral del contador de stock bajo.
const StockThreshold = 10

// Gate verificación de acceso y sesión activa. Lo implementa *auth.Guard.
type Gate interface {
	RequireRole(expected entity.Rol) auth.Outcome
	Session() entity.Session
}

// MineLister movimientos del usuario de la sesión.
type MineLister interface {
	ListMine(ctx context.Context) ([]entity.Movimiento, error)
}

// ReplenishmentLister sugerencias de reposición (sección reportes).
type ReplenishmentLister interface {
	GenerateReplenishmentList(ctx context.Context, umbral int) ([]dto.ReplenishmentSuggestion, error)
}

// Sources fuentes de datos del dashboard.
type Sources struct {
	Warehouses    repository.WarehouseRepository
	Products      repository.ProductRepository
	Users         repository.UserRepository
	Movements     repository.InventoryMovementRepository
	Audits        repository.AuditRepository
	Mine          MineLister
	Replenishment ReplenishmentLister
}

// DashboardUseCase arma el dashboard de cada rol.
type DashboardUseCase struct {
	gate Gate
	src  Sources
	log  *logger.Logger
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(gate Gate, src Sources, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{gate: gate, src: src, log: log, now: time.Now}
}

type counter struct {
	name  string
	dest  **int
	fetch func(ctx context.Context) (int, error)
}

// Open verifica el rol esperado y, solo si corresponde, calcula los contadores uno tras otro.
// Un contador que falla queda en 0 y se registra; la expiración de sesión detiene el resto y se propaga.
func (uc *DashboardUseCase) Open(ctx context.Context, expected entity.Rol) (*dto.DashboardSummary, auth.Outcome, error) {
	outcome := uc.gate.RequireRole(expected)
	if !outcome.Allowed() {
		return nil, outcome, outcome.Err()
	}

	session := uc.gate.Session()
	summary := &dto.DashboardSummary{
		Rol:       session.Rol.String(),
		Username:  session.Username,
		Secciones: sectionNames(access.Sections(session.Rol)),
		DateLabel: monthLabel(uc.now()),
	}

	for _, c := range uc.countersFor(expected, summary) {
		n, err := c.fetch(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				return nil, outcome, domain.ErrSessionExpired
			}
			uc.log.Warn().Err(err).Str("contador", c.name).Msg("dashboard: contador no disponible")
			n = 0
		}
		*c.dest = &n
	}
	return summary, outcome, nil
}

func (uc *DashboardUseCase) countersFor(rol entity.Rol, s *dto.DashboardSummary) []counter {
	productos := counter{"productos", &s.TotalProductos, func(ctx context.Context) (int, error) {
		items, err := uc.src.Products.List(ctx)
		return len(items), err
	}}
	bodegas := counter{"bodegas", &s.TotalBodegas, func(ctx context.Context) (int, error) {
		items, err := uc.src.Warehouses.List(ctx)
		return len(items), err
	}}
	movimientos := counter{"movimientos", &s.Movimientos, func(ctx context.Context) (int, error) {
		items, err := uc.src.Movements.List(ctx)
		return len(items), err
	}}

	switch rol {
	case entity.RolAdmin:
		return []counter{productos, bodegas, movimientos,
			{"usuarios", &s.UsuariosActivos, func(ctx context.Context) (int, error) {
				items, err := uc.src.Users.List(ctx)
				return len(items), err
			}},
		}
	case entity.RolEncargado:
		return []counter{productos, bodegas, movimientos,
			{"stock_bajo", &s.StockBajo, func(ctx context.Context) (int, error) {
				items, err := uc.src.Products.ListStockBajo(ctx, StockThreshold)
				return len(items), err
			}},
		}
	case entity.RolOperador:
		return []counter{productos, bodegas,
			{"mis_movimientos", &s.Movimientos, func(ctx context.Context) (int, error) {
				items, err := uc.src.Mine.ListMine(ctx)
				return len(items), err
			}},
		}
	}
	return nil
}

// Section carga los datos de una sección si el rol de la sesión puede verla.
func (uc *DashboardUseCase) Section(ctx context.Context, section access.Section) (any, error) {
	session := uc.gate.Session()
	if !session.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if !access.CanView(session.Rol, section) {
		return nil, &domain.AccessDeniedError{
			Rol:      session.Rol.String(),
			Required: "sección " + string(section),
			Redirect: entity.DashboardRoute(session.Rol),
		}
	}

	switch section {
	case access.SectionBodegas:
		return uc.src.Warehouses.List(ctx)
	case access.SectionProductos:
		return uc.src.Products.List(ctx)
	case access.SectionMovimientos:
		return uc.src.Movements.List(ctx)
	case access.SectionMisMovimientos:
		return uc.src.Mine.ListMine(ctx)
	case access.SectionUsuarios:
		return uc.src.Users.List(ctx)
	case access.SectionAuditoria:
		return uc.src.Audits.List(ctx)
	case access.SectionReportes:
		return uc.src.Replenishment.GenerateReplenishmentList(ctx, StockThreshold)
	}
	return nil, fmt.Errorf("dashboard: sección desconocida %q", section)
}

func sectionNames(sections []access.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = string(s)
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
