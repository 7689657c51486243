package dto

// ErrorResponse cuerpo de error HTTP.
// El backend de bodegas responde {"message": "..."}; Code se usa en el sandbox.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
