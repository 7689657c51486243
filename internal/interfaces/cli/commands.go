package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/jhoicas/gestion-bodegas/internal/application/access"
	"github.com/jhoicas/gestion-bodegas/internal/application/analytics"
	"github.com/jhoicas/gestion-bodegas/internal/application/auth"
	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/inventory"
	"github.com/jhoicas/gestion-bodegas/internal/application/usecase"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// Services casos de uso que exponen los comandos.
type Services struct {
	Guard      *auth.Guard
	Registrar  *auth.Registrar
	Dashboard  *analytics.DashboardUseCase
	Warehouses *usecase.WarehouseUseCase
	Products   *usecase.ProductUseCase
	Movements  *inventory.RegisterMovementUseCase
	Users      *usecase.UserUseCase
	Audits     *usecase.AuditUseCase
	Reports    *usecase.ReportUseCase
	ReportDir  string // destino de los PDF; vacío = directorio actual
}

// UsageError flags o argumentos inválidos para un comando.
type UsageError struct {
	Command string
	Err     error
}

func (e *UsageError) Error() string { return fmt.Sprintf("%s: %v", e.Command, e.Err) }

func (e *UsageError) Unwrap() error { return e.Err }

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return &UsageError{Command: fs.Name(), Err: err}
	}
	return nil
}

func requireID(name string, id int) error {
	if id <= 0 {
		return &UsageError{Command: name, Err: fmt.Errorf("--id es requerido")}
	}
	return nil
}

// Commands arma el conjunto completo de comandos sobre los servicios.
func Commands(svc Services) []Command {
	return []Command{
		loginCommand(svc),
		{
			Name:  "logout",
			Usage: "Cierra la sesión (idempotente)",
			Run: func(ctx context.Context, args []string) (any, error) {
				if err := svc.Guard.Logout(); err != nil {
					return nil, err
				}
				return map[string]any{"ok": true, "redirect": entity.RouteLogin}, nil
			},
		},
		{
			Name:  "whoami",
			Usage: "Muestra la sesión actual y las secciones visibles",
			Run: func(ctx context.Context, args []string) (any, error) {
				s := svc.Guard.Session()
				return map[string]any{
					"autenticado": s.Authenticated(),
					"estado":      svc.Guard.State().String(),
					"username":    s.Username,
					"rol":         s.Rol,
					"vista":       entity.DashboardRoute(s.Rol),
					"secciones":   access.Sections(s.Rol),
				}, nil
			},
		},
		registerCommand(svc),
		dashboardCommand(svc),
		sectionCommand(svc),
		bodegaSaveCommand(svc, "bodega-crear", access.ActionBodegaCrear),
		bodegaSaveCommand(svc, "bodega-editar", access.ActionBodegaEditar),
		deleteCommand("bodega-eliminar", "Elimina una bodega", access.ActionBodegaEliminar, svc.Warehouses.Delete),
		productoSaveCommand(svc, "producto-crear", access.ActionProductoCrear),
		productoSaveCommand(svc, "producto-editar", access.ActionProductoEditar),
		deleteCommand("producto-eliminar", "Elimina un producto", access.ActionProductoEliminar, svc.Products.Delete),
		movementCommand(svc),
		usuarioSaveCommand(svc, "usuario-crear", access.ActionUsuarioCrear),
		usuarioSaveCommand(svc, "usuario-editar", access.ActionUsuarioEditar),
		deleteCommand("usuario-eliminar", "Elimina un usuario", access.ActionUsuarioEliminar, svc.Users.Delete),
		auditCommand(svc),
		reportCommand(svc),
		summaryCommand(svc),
	}
}

func loginCommand(svc Services) Command {
	return Command{
		Name:  "login",
		Usage: "--username <u> --password <p>",
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("login")
			username := fs.StringP("username", "u", "", "usuario")
			password := fs.StringP("password", "p", "", "contraseña")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			res, err := svc.Guard.Login(ctx, *username, *password)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"username": res.Session.Username,
				"rol":      res.Session.Rol,
				"redirect": res.Redirect,
			}, nil
		},
	}
}

func registerCommand(svc Services) Command {
	return Command{
		Name:  "registro",
		Usage: "--username --nombre --password --confirm --rol (no inicia sesión)",
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("registro")
			var in dto.RegisterInput
			fs.StringVar(&in.Username, "username", "", "usuario")
			fs.StringVar(&in.NombreCompleto, "nombre", "", "nombre completo")
			fs.StringVar(&in.Password, "password", "", "contraseña")
			fs.StringVar(&in.ConfirmPassword, "confirm", "", "confirmación")
			fs.StringVar(&in.Rol, "rol", "", "ADMIN | ENCARGADO | OPERADOR")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			msg, err := svc.Registrar.Register(ctx, in)
			if err != nil {
				return nil, err
			}
			return map[string]any{"mensaje": msg, "redirect": entity.RouteLogin}, nil
		},
	}
}

func dashboardCommand(svc Services) Command {
	return Command{
		Name:  "dashboard",
		Usage: "[--rol ROL] Abre el dashboard (por defecto el del rol de la sesión)",
		Auth:  true,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("dashboard")
			rol := fs.String("rol", "", "dashboard a abrir")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			expected := svc.Guard.Rol()
			if *rol != "" {
				expected = entity.Rol(*rol)
			}
			summary, _, err := svc.Dashboard.Open(ctx, expected)
			if err != nil {
				return nil, err
			}
			return summary, nil
		},
	}
}

func sectionCommand(svc Services) Command {
	return Command{
		Name:  "seccion",
		Usage: "<nombre> Carga los datos de una sección del dashboard",
		Auth:  true,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("seccion")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			if fs.NArg() != 1 {
				return nil, &UsageError{Command: "seccion", Err: fmt.Errorf("indica una sección: %v", access.AllSections())}
			}
			section, ok := access.ParseSection(fs.Arg(0))
			if !ok {
				return nil, &UsageError{Command: "seccion", Err: fmt.Errorf("sección desconocida %q", fs.Arg(0))}
			}
			return svc.Dashboard.Section(ctx, section)
		},
	}
}

func bodegaSaveCommand(svc Services, name string, action access.Action) Command {
	return Command{
		Name:   name,
		Usage:  "[--id N] --nombre --ubicacion --capacidad [--encargado ID]",
		Action: action,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet(name)
			var in dto.BodegaRequest
			id := fs.Int("id", 0, "ID de la bodega (editar)")
			fs.StringVar(&in.Nombre, "nombre", "", "nombre")
			fs.StringVar(&in.Ubicacion, "ubicacion", "", "ubicación")
			fs.IntVar(&in.Capacidad, "capacidad", 0, "capacidad en unidades")
			encargado := fs.Int("encargado", 0, "ID del usuario encargado")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			if *encargado > 0 {
				in.Encargado = &entity.Ref{ID: *encargado}
			}
			if action == access.ActionBodegaCrear {
				return svc.Warehouses.Create(ctx, in)
			}
			if err := requireID(name, *id); err != nil {
				return nil, err
			}
			return svc.Warehouses.Update(ctx, *id, in)
		},
	}
}

func productoSaveCommand(svc Services, name string, action access.Action) Command {
	return Command{
		Name:   name,
		Usage:  "[--id N] --nombre --categoria --stock --precio --bodega ID",
		Action: action,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet(name)
			var in dto.ProductoRequest
			id := fs.Int("id", 0, "ID del producto (editar)")
			fs.StringVar(&in.Nombre, "nombre", "", "nombre")
			fs.StringVar(&in.Categoria, "categoria", "", "categoría")
			fs.IntVar(&in.Stock, "stock", 0, "unidades")
			precio := fs.String("precio", "0", "precio unitario")
			fs.IntVar(&in.Bodega.ID, "bodega", 0, "ID de la bodega")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			p, err := decimal.NewFromString(*precio)
			if err != nil {
				return nil, &UsageError{Command: name, Err: fmt.Errorf("--precio inválido: %q", *precio)}
			}
			in.Precio = p
			if action == access.ActionProductoCrear {
				return svc.Products.Create(ctx, in)
			}
			if err := requireID(name, *id); err != nil {
				return nil, err
			}
			return svc.Products.Update(ctx, *id, in)
		},
	}
}

func usuarioSaveCommand(svc Services, name string, action access.Action) Command {
	return Command{
		Name:   name,
		Usage:  "[--id N] --username --nombre --rol [--password] (al editar, sin password conserva la actual)",
		Action: action,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet(name)
			var in dto.UsuarioRequest
			var rol string
			id := fs.Int("id", 0, "ID del usuario (editar)")
			fs.StringVar(&in.Username, "username", "", "usuario")
			fs.StringVar(&in.NombreCompleto, "nombre", "", "nombre completo")
			fs.StringVar(&rol, "rol", "", "ADMIN | ENCARGADO | OPERADOR")
			fs.StringVar(&in.Password, "password", "", "contraseña")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			in.Rol = entity.Rol(rol)
			if action == access.ActionUsuarioCrear {
				return svc.Users.Create(ctx, in)
			}
			if err := requireID(name, *id); err != nil {
				return nil, err
			}
			return svc.Users.Update(ctx, *id, in)
		},
	}
}

func deleteCommand(name, usage string, action access.Action, del func(context.Context, int) error) Command {
	return Command{
		Name:   name,
		Usage:  "--id N " + usage,
		Action: action,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet(name)
			id := fs.Int("id", 0, "ID")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			if err := requireID(name, *id); err != nil {
				return nil, err
			}
			if err := del(ctx, *id); err != nil {
				return nil, err
			}
			return map[string]any{"ok": true, "id": *id}, nil
		},
	}
}

func movementCommand(svc Services) Command {
	return Command{
		Name:   "movimiento-registrar",
		Usage:  "--tipo ENTRADA|SALIDA|TRANSFERENCIA [--origen ID] [--destino ID] --producto ID --cantidad N",
		Action: access.ActionMovimientoRegistrar,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("movimiento-registrar")
			var in dto.RegistrarMovimientoInput
			fs.StringVar(&in.Tipo, "tipo", "", "tipo de movimiento")
			fs.IntVar(&in.BodegaOrigenID, "origen", 0, "ID de la bodega origen")
			fs.IntVar(&in.BodegaDestinoID, "destino", 0, "ID de la bodega destino")
			fs.IntVar(&in.ProductoID, "producto", 0, "ID del producto")
			fs.IntVar(&in.Cantidad, "cantidad", 0, "unidades")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			return svc.Movements.RegisterMovement(ctx, in)
		},
	}
}

func auditCommand(svc Services) Command {
	return Command{
		Name:    "auditoria",
		Usage:   "[--tipo INSERT|UPDATE|DELETE | --entidad NOMBRE] Consulta la bitácora",
		Section: access.SectionAuditoria,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("auditoria")
			tipo := fs.String("tipo", "", "tipo de operación")
			entidad := fs.String("entidad", "", "entidad afectada")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			switch {
			case *tipo != "" && *entidad != "":
				return nil, &UsageError{Command: "auditoria", Err: fmt.Errorf("usa --tipo o --entidad, no ambos")}
			case *tipo != "":
				return svc.Audits.ListByTipo(ctx, *tipo)
			case *entidad != "":
				return svc.Audits.ListByEntidad(ctx, *entidad)
			}
			return svc.Audits.List(ctx)
		},
	}
}

func reportCommand(svc Services) Command {
	return Command{
		Name:   "reporte-stock",
		Usage:  "[--umbral N] [--dir RUTA] Genera el reporte de stock en PDF",
		Action: access.ActionReporteStock,
		Run: func(ctx context.Context, args []string) (any, error) {
			fs := newFlagSet("reporte-stock")
			umbral := fs.Int("umbral", analytics.StockThreshold, "stock menor a este valor se marca como bajo")
			dir := fs.String("dir", svc.ReportDir, "directorio de salida")
			if err := parse(fs, args); err != nil {
				return nil, err
			}
			pdf, filename, err := svc.Reports.StockReport(ctx, *umbral)
			if err != nil {
				return nil, err
			}
			path := filepath.Join(*dir, filename)
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return nil, fmt.Errorf("guardar reporte: %w", err)
			}
			return map[string]any{"archivo": path, "bytes": len(pdf)}, nil
		},
	}
}

func summaryCommand(svc Services) Command {
	return Command{
		Name:    "reporte-resumen",
		Usage:   "Resumen general: stock por bodega, productos más movidos y stock bajo",
		Section: access.SectionReportes,
		Run: func(ctx context.Context, args []string) (any, error) {
			if err := parse(newFlagSet("reporte-resumen"), args); err != nil {
				return nil, err
			}
			return svc.Reports.ResumenGeneral(ctx)
		},
	}
}
