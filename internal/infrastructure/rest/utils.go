package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
)

// call ejecuta la llamada autenticada y decodifica el JSON en out. Un cuerpo vacío deja out intacto.
func call(ctx context.Context, api ports.APICaller, method, path string, body, out any) error {
	raw, err := api.Call(ctx, method, path, body)
	if err != nil {
		return notFound(err)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.MalformedResponseError{Path: path, Body: string(raw), Err: err}
	}
	return nil
}

// list decodifica una colección; un 204 o un null se convierten en slice vacío.
func list[T any](ctx context.Context, api ports.APICaller, path string) ([]T, error) {
	var items []T
	if err := call(ctx, api, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// notFound traduce un 404 del backend a domain.ErrNotFound conservando el detalle.
func notFound(err error) error {
	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, httpErr.Body)
	}
	return err
}
