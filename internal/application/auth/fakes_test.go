package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

// fakeDoer responde según una función y cuenta las peticiones emitidas.
type fakeDoer struct {
	mu       sync.Mutex
	requests []ports.HTTPRequest
	handle   func(req ports.HTTPRequest) (*ports.HTTPResponse, error)
}

func (f *fakeDoer) Do(_ context.Context, req ports.HTTPRequest) (*ports.HTTPResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.handle == nil {
		return nil, errors.New("fakeDoer sin handler")
	}
	return f.handle(req)
}

func (f *fakeDoer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeDoer) last() ports.HTTPRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func jsonResponse(t *testing.T, status int, v any) *ports.HTTPResponse {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return &ports.HTTPResponse{Status: status, ContentType: "application/json", Body: raw}
}

func tokenFor(t *testing.T, username string, rol entity.Rol) string {
	t.Helper()
	tok, err := jwt.Generate(testSecret, username, rol.String(), "test", 60)
	require.NoError(t, err)
	return tok
}

// failingStore simula un almacenamiento ilegible.
type failingStore struct{}

func (failingStore) Load() (entity.Session, error) { return entity.Session{}, errors.New("disco roto") }
func (failingStore) Save(entity.Session) error { return errors.New("disco roto") }
func (failingStore) Clear() error { return errors.New("disco roto") }
