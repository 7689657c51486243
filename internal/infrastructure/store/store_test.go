package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/store"
)

var sesionAna = entity.Session{Token: "tok.en.ana", Username: "ana", Rol: entity.RolAdmin}

func stores(t *testing.T) map[string]repository.SessionStore {
	t.Helper()
	return map[string]repository.SessionStore{
		"memory": store.NewMemoryStore(),
		"file":   store.NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
	}
}

func TestSessionStore_CicloCompleto(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := s.Load()
			require.NoError(t, err, "un store sin datos no es un error")
			assert.False(t, empty.Authenticated())

			require.NoError(t, s.Save(sesionAna))
			got, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, sesionAna, got)

			require.NoError(t, s.Clear())
			require.NoError(t, s.Clear(), "Clear debe ser idempotente")
			got, err = s.Load()
			require.NoError(t, err)
			assert.Equal(t, entity.Session{}, got)
		})
	}
}

func TestFileStore_PersisteEntreInstancias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, store.NewFileStore(path).Save(sesionAna))

	got, err := store.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, sesionAna, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "el token solo debe ser legible por el dueño")
}

func TestFileStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))

	_, err := store.NewFileStore(path).Load()
	assert.Error(t, err)
}
