// Package cli convierte cada acción del usuario en un comando con nombre. El despachador
// comprueba la sesión y la tabla de capacidades antes de ejecutar, escribe el resultado como
// JSON en stdout y los errores en stderr con un código de salida por categoría.
//
// Dos invocaciones seguidas del mismo comando de escritura envían dos peticiones: no hay
// deduplicación de envíos dobles.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jhoicas/gestion-bodegas/internal/application/access"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

// Códigos de salida.
const (
	ExitOK            = 0
	ExitError         = 1
	ExitUsage         = 2 // comando desconocido, flags o datos inválidos
	ExitUnauthorized  = 3 // sin sesión o sesión expirada
	ExitForbidden     = 4
	ExitAuthFailed    = 5
	ExitTransport     = 6
	ExitHTTP          = 7
	ExitMalformed     = 8
	ExitUsernameTaken = 9
)

// ErrUnknownCommand el nombre no corresponde a ningún comando registrado.
var ErrUnknownCommand = errors.New("comando desconocido")

// Session lo que el despachador necesita saber de la sesión.
type Session interface {
	IsAuthenticated() bool
	Rol() entity.Rol
}

// Command acción con nombre. Action y Section, si están presentes, se verifican contra la
// tabla de capacidades; cualquiera de los dos implica sesión obligatoria.
type Command struct {
	Name    string
	Usage   string
	Auth    bool
	Action  access.Action
	Section access.Section
	Run     func(ctx context.Context, args []string) (any, error)
}

func (c Command) needsSession() bool {
	return c.Auth || c.Action != "" || c.Section != ""
}

// Dispatcher registro de comandos.
type Dispatcher struct {
	session  Session
	commands map[string]Command
	out      io.Writer
	errOut   io.Writer
	log      *logger.Logger
}

// NewDispatcher construye el despachador. out recibe el JSON de resultado; errOut los errores.
func NewDispatcher(session Session, out, errOut io.Writer, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{session: session, commands: map[string]Command{}, out: out, errOut: errOut, log: log}
}

// Register agrega comandos. Un nombre repetido reemplaza al anterior.
func (d *Dispatcher) Register(cmds ...Command) {
	for _, c := range cmds {
		d.commands[c.Name] = c
	}
}

// Names nombres registrados en orden alfabético.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.commands))
	for n := range d.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dispatch verifica sesión y capacidades y ejecuta el comando. La verificación local es
// una pista: el backend vuelve a autorizar cada petición.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []string) (any, error) {
	cmd, ok := d.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if cmd.needsSession() && !d.session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	rol := d.session.Rol()
	if cmd.Action != "" && !access.Can(rol, cmd.Action) {
		d.log.Warn().Str("comando", name).Str("rol", rol.String()).Msg("acción no permitida para el rol")
		return nil, &domain.AccessDeniedError{Rol: rol.String(), Required: string(cmd.Action), Redirect: entity.DashboardRoute(rol)}
	}
	if cmd.Section != "" && !access.CanView(rol, cmd.Section) {
		d.log.Warn().Str("comando", name).Str("rol", rol.String()).Msg("sección no visible para el rol")
		return nil, &domain.AccessDeniedError{Rol: rol.String(), Required: "sección " + string(cmd.Section), Redirect: entity.DashboardRoute(rol)}
	}
	d.log.Debug().Str("comando", name).Strs("args", redact(args)).Msg("ejecutando comando")
	return cmd.Run(ctx, args)
}

// Execute interpreta argv (sin el nombre del programa), despacha y escribe la salida.
// Devuelve el código de salida.
func (d *Dispatcher) Execute(ctx context.Context, argv []string) int {
	if len(argv) == 0 || argv[0] == "help" || argv[0] == "-h" || argv[0] == "--help" {
		d.printUsage()
		return ExitOK
	}
	result, err := d.Dispatch(ctx, argv[0], argv[1:])
	if err != nil {
		code := ExitCode(err)
		fmt.Fprintf(d.errOut, "error: %v\n", err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(d.errOut, hint)
		}
		return code
	}
	if result == nil {
		return ExitOK
	}
	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(d.errOut, "error: escribir salida: %v\n", err)
		return ExitError
	}
	return ExitOK
}

func (d *Dispatcher) printUsage() {
	fmt.Fprintln(d.out, "Uso: bodegas <comando> [flags]")
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Comandos:")
	for _, n := range d.Names() {
		fmt.Fprintf(d.out, "  %-22s %s\n", n, d.commands[n].Usage)
	}
}

// ExitCode clasifica el error en un código de salida.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUnknownCommand), errors.As(err, &usage), errors.Is(err, domain.ErrInvalidInput):
		return ExitUsage
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrNoToken), errors.Is(err, domain.ErrSessionExpired):
		return ExitUnauthorized
	case errors.Is(err, domain.ErrAccessDenied):
		return ExitForbidden
	case errors.Is(err, domain.ErrAuthentication):
		return ExitAuthFailed
	case errors.Is(err, domain.ErrUsernameTaken):
		return ExitUsernameTaken
	case errors.Is(err, domain.ErrTransport):
		return ExitTransport
	case errors.Is(err, domain.ErrHTTP), errors.Is(err, domain.ErrNotFound):
		return ExitHTTP
	case errors.Is(err, domain.ErrMalformed):
		return ExitMalformed
	default:
		return ExitError
	}
}

func hintFor(err error) string {
	var denied *domain.AccessDeniedError
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return "La sesión expiró. Inicia sesión de nuevo: bodegas login --username <u> --password <p>"
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrNoToken):
		return "No hay sesión activa. Inicia sesión: bodegas login --username <u> --password <p>"
	case errors.As(err, &denied):
		return "Vista de tu rol: " + denied.Redirect
	}
	return ""
}

// redact oculta el valor de las flags de contraseña en los logs.
func redact(args []string) []string {
	out := make([]string, len(args))
	hide := false
	for i, a := range args {
		switch {
		case hide:
			out[i] = "***"
			hide = false
		case strings.HasPrefix(a, "--password=") || strings.HasPrefix(a, "--confirm="):
			out[i] = a[:strings.Index(a, "=")+1] + "***"
		default:
			out[i] = a
			hide = a == "--password" || a == "--confirm"
		}
	}
	return out
}
