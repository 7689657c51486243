// Package auth es la única autoridad sobre la sesión del cliente: convierte credenciales en
// una sesión almacenada, responde si hay sesión y con qué rol, decide el acceso a cada vista
// y ejecuta las llamadas autenticadas con un manejo uniforme de expiración y errores HTTP.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
	"github.com/jhoicas/gestion-bodegas/pkg/jwt"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

// Verificar en tiempo de compilación que Guard implementa APICaller.
var _ ports.APICaller = (*Guard)(nil)

const (
	loginPath             = "/auth/login"
	defaultLoginFailure   = "Usuario o contraseña inválidos"
	missingFieldsMessage  = "Por favor completa todos los campos"
	maxMalformedBodyInErr = 512
)

// State estado observable de la sesión. Authenticating existe solo dentro de Login y nunca se persiste.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "AUTHENTICATED"
	}
	return "ANONYMOUS"
}

// LoginResult sesión creada y la vista a la que corresponde su rol.
type LoginResult struct {
	Session  entity.Session
	Redirect string
}

// Guard sesión y control de acceso. Se construye una vez y se inyecta en cada caso de uso.
type Guard struct {
	doer  ports.HTTPDoer
	store repository.SessionStore
	log   *logger.Logger

	// mu serializa las escrituras de la sesión (login, logout, expiración).
	mu sync.Mutex
}

// NewGuard construye el guard sobre un transporte HTTP y un almacenamiento de sesión.
func NewGuard(doer ports.HTTPDoer, store repository.SessionStore, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{doer: doer, store: store, log: log}
}

// Login envía las credenciales a POST /auth/login. En éxito decodifica el rol del token,
// guarda token+username+rol en una sola escritura y devuelve la vista del rol.
// En fallo devuelve *domain.AuthError con el mensaje del servidor y no toca la sesión previa.
func (g *Guard) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, &domain.ValidationError{Field: "username", Message: missingFieldsMessage}
	}

	resp, err := g.doer.Do(ctx, ports.HTTPRequest{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   dto.LoginRequest{Username: username, Password: password},
	})
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.Status) {
		g.log.Info().Str("username", username).Int("status", resp.Status).Msg("login rechazado")
		return nil, &domain.AuthError{Status: resp.Status, Message: serverMessage(resp.Body, defaultLoginFailure)}
	}

	var out dto.LoginResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, &domain.MalformedResponseError{Path: loginPath, Body: truncate(resp.Body), Err: err}
	}
	if out.Token == "" {
		return nil, &domain.MalformedResponseError{Path: loginPath, Body: truncate(resp.Body), Err: errors.New("token ausente")}
	}

	session := entity.Session{Token: out.Token, Username: username}
	subject, rol, err := jwt.DecodeUnverified(out.Token)
	if err != nil {
		g.log.Warn().Err(err).Msg("no se pudo decodificar el rol del token; se continúa sin rol")
	} else {
		if subject != "" {
			session.Username = subject
		}
		if r := entity.Rol(rol); r.Valid() {
			session.Rol = r
		} else if rol != "" {
			g.log.Warn().Str("rol", rol).Msg("rol desconocido en el token; se continúa sin rol")
		}
	}

	g.mu.Lock()
	err = g.store.Save(session)
	g.mu.Unlock()
	if err != nil {
		g.log.Error().Err(err).Str("username", session.Username).Msg("guardar sesión")
		return nil, fmt.Errorf("auth: guardar sesión: %w", err)
	}

	g.log.Info().Str("username", session.Username).Str("rol", session.Rol.String()).Msg("sesión iniciada")
	return &LoginResult{Session: session, Redirect: entity.DashboardRoute(session.Rol)}, nil
}

// IsAuthenticated true si hay token almacenado. No consulta al servidor.
func (g *Guard) IsAuthenticated() bool {
	return g.Session().Authenticated()
}

// State devuelve el estado actual de la sesión.
func (g *Guard) State() State {
	if g.IsAuthenticated() {
		return StateAuthenticated
	}
	return StateAnonymous
}

// Session devuelve la sesión almacenada. Un fallo de lectura se trata como sesión vacía.
func (g *Guard) Session() entity.Session {
	s, err := g.store.Load()
	if err != nil {
		g.log.Error().Err(err).Msg("leer sesión")
		return entity.Session{}
	}
	return s
}

// Username nombre del usuario de la sesión, para mostrar.
func (g *Guard) Username() string { return g.Session().Username }

// Rol rol de la sesión, para mostrar. Vacío si no hay sesión o el token no traía rol.
func (g *Guard) Rol() entity.Rol { return g.Session().Rol }

// Call ejecuta una llamada autenticada (apiCall).
//   - Sin token: domain.ErrNoToken, sin emitir la petición.
//   - 401: limpia la sesión y devuelve domain.ErrSessionExpired (no se reintenta).
//   - 204: (nil, nil).
//   - Otro no-2xx: *domain.HTTPError con código y cuerpo; la sesión no cambia.
//   - 2xx: el cuerpo según su Content-Type; JSON inválido es *domain.MalformedResponseError.
func (g *Guard) Call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	session, err := g.store.Load()
	if err != nil {
		return nil, fmt.Errorf("auth: leer sesión: %w", err)
	}
	if !session.Authenticated() {
		return nil, domain.ErrNoToken
	}

	resp, err := g.doer.Do(ctx, ports.HTTPRequest{Method: method, Path: path, Body: body, Token: session.Token})
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Status == http.StatusUnauthorized:
		g.expire(session.Token, method, path)
		return nil, domain.ErrSessionExpired
	case resp.Status == http.StatusNoContent:
		return nil, nil
	case !isSuccess(resp.Status):
		return nil, &domain.HTTPError{Status: resp.Status, Body: string(resp.Body)}
	}
	return decodeBody(path, resp)
}

// Logout limpia la sesión sin condiciones. Es idempotente.
func (g *Guard) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("auth: limpiar sesión: %w", err)
	}
	g.log.Info().Msg("sesión cerrada")
	return nil
}

// expire limpia la sesión solo si sigue siendo la del token rechazado: un 401 tardío
// de una petición anterior no debe borrar una sesión iniciada después.
func (g *Guard) expire(token, method, path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	current, err := g.store.Load()
	if err == nil && current.Token != token {
		return
	}
	if err := g.store.Clear(); err != nil {
		g.log.Error().Err(err).Msg("limpiar sesión expirada")
		return
	}
	g.log.Warn().Str("method", method).Str("path", path).Msg("token expirado, sesión cerrada")
}

func isSuccess(status int) bool { return status >= 200 && status <= 299 }

func decodeBody(path string, resp *ports.HTTPResponse) (json.RawMessage, error) {
	mediaType := ""
	if resp.ContentType != "" {
		if mt, _, err := mime.ParseMediaType(resp.ContentType); err == nil {
			mediaType = mt
		}
	}
	if strings.HasPrefix(mediaType, "text/") {
		raw, err := json.Marshal(string(resp.Body))
		if err != nil {
			return nil, &domain.MalformedResponseError{Path: path, Body: truncate(resp.Body), Err: err}
		}
		return raw, nil
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		if mediaType == "" {
			return nil, nil
		}
		return nil, &domain.MalformedResponseError{Path: path, Err: errors.New("cuerpo vacío")}
	}
	if !json.Valid(resp.Body) {
		return nil, &domain.MalformedResponseError{Path: path, Body: truncate(resp.Body), Err: errors.New("JSON inválido")}
	}
	return json.RawMessage(resp.Body), nil
}

// serverMessage extrae {"message": "..."} o, si el cuerpo no es JSON, el texto tal cual.
func serverMessage(body []byte, fallback string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallback
	}
	var parsed dto.ErrorResponse
	if err := json.Unmarshal(trimmed, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		return fallback
	}
	return string(trimmed)
}

func truncate(b []byte) string {
	if len(b) > maxMalformedBodyInErr {
		return string(b[:maxMalformedBodyInErr])
	}
	return string(b)
}
