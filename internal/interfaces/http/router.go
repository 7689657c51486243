package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/gestion-bodegas/internal/application/access"
	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DB     *memdb.DB
	Tokens TokenConfig
	Log    *logger.Logger
}

// NewApp crea la aplicación Fiber del sandbox con recover, log de peticiones y todas las rutas.
func NewApp(name string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})

	Router(app, deps)
	return app
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
// Propaga X-Request-ID o genera uno nuevo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("X-Request-ID", reqID)
		err := c.Next()
		log.Debug().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Str("username", GetUsername(c)).
			Msg("petición")
		return err
	}
}

// Router registra las rutas de la API. Las rutas públicas se registran antes del grupo protegido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.DB, deps.Tokens, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	api.Get("/usuarios/existe/:username", authHandler.Exists)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens.Secret))

	// Bodegas: lectura para cualquier sesión (los contadores del dashboard la usan)
	bodegas := protected.Group("/bodegas")
	warehouseHandler := NewWarehouseHandler(deps.DB)
	bodegas.Get("/", warehouseHandler.List)
	bodegas.Get("/:id", warehouseHandler.GetByID)
	bodegas.Post("/", RequireAction(access.ActionBodegaCrear), warehouseHandler.Create)
	bodegas.Put("/:id", RequireAction(access.ActionBodegaEditar), warehouseHandler.Update)
	bodegas.Delete("/:id", RequireAction(access.ActionBodegaEliminar), warehouseHandler.Delete)

	// Productos
	productos := protected.Group("/productos")
	productHandler := NewProductHandler(deps.DB)
	productos.Get("/", productHandler.List)
	productos.Get("/stock-bajo/:cantidad", productHandler.StockBajo)
	productos.Get("/:id", productHandler.GetByID)
	productos.Post("/", RequireAction(access.ActionProductoCrear), productHandler.Create)
	productos.Put("/:id", RequireAction(access.ActionProductoEditar), productHandler.Update)
	productos.Delete("/:id", RequireAction(access.ActionProductoEliminar), productHandler.Delete)

	// Movimientos y detalles
	inventoryHandler := NewInventoryHandler(deps.DB)
	movimientos := protected.Group("/movimientos")
	movimientos.Get("/", RequireSection(access.SectionMovimientos), inventoryHandler.List)
	movimientos.Get("/usuario/:id", inventoryHandler.ListByUser)
	movimientos.Get("/:id", inventoryHandler.GetByID)
	movimientos.Post("/", RequireAction(access.ActionMovimientoRegistrar), inventoryHandler.RegisterMovement)

	detalles := protected.Group("/detalle-movimientos")
	detalles.Get("/", RequireSection(access.SectionMovimientos), inventoryHandler.ListDetails)
	detalles.Post("/", RequireAction(access.ActionMovimientoRegistrar), inventoryHandler.RegisterDetail)

	// Usuarios: las rutas con segmento fijo van antes de /:id
	usuarios := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.DB)
	usuarios.Get("/username/:username", userHandler.GetByUsername)
	usuarios.Get("/encargables", RequireAction(access.ActionBodegaCrear), userHandler.Encargables)
	usuarios.Get("/", RequireSection(access.SectionUsuarios), userHandler.List)
	usuarios.Get("/:id", RequireSection(access.SectionUsuarios), userHandler.GetByID)
	usuarios.Post("/", RequireAction(access.ActionUsuarioCrear), userHandler.Create)
	usuarios.Put("/:id", RequireAction(access.ActionUsuarioEditar), userHandler.Update)
	usuarios.Delete("/:id", RequireAction(access.ActionUsuarioEliminar), userHandler.Delete)

	// Auditoría (solo lectura)
	auditorias := protected.Group("/auditorias", RequireSection(access.SectionAuditoria))
	auditHandler := NewAuditHandler(deps.DB)
	auditorias.Get("/", auditHandler.List)
	auditorias.Get("/tipo/:tipo", auditHandler.ListByTipo)
	auditorias.Get("/entidad/:entidad", auditHandler.ListByEntidad)

	reportes := protected.Group("/reportes", RequireSection(access.SectionReportes))
	reportes.Get("/resumen-general", NewReportHandler(deps.DB).ResumenGeneral)
}
