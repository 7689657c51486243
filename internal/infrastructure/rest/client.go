package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa HTTPDoer.
var _ ports.HTTPDoer = (*Client)(nil)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 8 << 20
)

// Client adaptador HTTP hacia el backend de bodegas. No conoce la sesión: el token
// llega en cada HTTPRequest y los códigos de estado se devuelven sin interpretar.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente con un timeout de red por petición.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewClientWithHTTP permite inyectar el *http.Client (por ejemplo con un RoundTripper de pruebas).
func NewClientWithHTTP(baseURL string, hc *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		log:        log,
	}
}

// Do envía la petición. Solo devuelve error si no se pudo construir o si no llegó al servidor.
func (c *Client) Do(ctx context.Context, in ports.HTTPRequest) (*ports.HTTPResponse, error) {
	var reader io.Reader
	if in.Body != nil {
		payload, err := json.Marshal(in.Body)
		if err != nil {
			return nil, fmt.Errorf("rest: serializar cuerpo de %s %s: %w", in.Method, in.Path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.Method, c.baseURL+in.Path, reader)
	if err != nil {
		return nil, fmt.Errorf("rest: crear HTTP request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if in.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.Token != "" {
		req.Header.Set("Authorization", "Bearer "+in.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).
			Str("method", in.Method).
			Str("path", in.Path).
			Str("request_id", requestID).
			Msg("petición sin respuesta")
		return nil, &domain.TransportError{Method: in.Method, Path: in.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.TransportError{Method: in.Method, Path: in.Path, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("method", in.Method).
		Str("path", in.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("respuesta del backend")

	return &ports.HTTPResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
