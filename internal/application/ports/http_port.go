package ports

import (
	"context"
	"encoding/json"
)

// HTTPRequest descriptor efímero de una petición al backend: método, ruta relativa a la
// URL base y cuerpo opcional (se serializa a JSON). Token vacío = petición sin Authorization.
type HTTPRequest struct {
	Method string
	Path   string
	Body   any
	Token  string
}

// HTTPResponse respuesta cruda del backend.
type HTTPResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// HTTPDoer define el puerto de transporte HTTP. Un error solo indica que la petición no
// llegó al servidor (domain.TransportError); cualquier código de estado se devuelve en HTTPResponse.
type HTTPDoer interface {
	Do(ctx context.Context, req HTTPRequest) (*HTTPResponse, error)
}

// APICaller define el contrato de una llamada autenticada al backend.
// Implementado por auth.Guard: adjunta el token, trata 401 como expiración de sesión
// y devuelve nil (sin error) en 204.
type APICaller interface {
	Call(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}
