package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
)

// Transport implementa http.RoundTripper despachando cada petición a la app Fiber en memoria
// (app.Test), sin abrir sockets. Conecta el cliente REST real al sandbox en los tests de contrato.
type Transport struct {
	App *fiber.App
}

// RoundTrip clona la petición (app.Test la consume) y devuelve la respuesta de Fiber.
func (t *Transport) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	clone := req.Clone(req.Context())
	clone.RequestURI = ""
	if clone.Host == "" {
		clone.Host = req.URL.Host
	}
	return t.App.Test(clone, -1)
}
