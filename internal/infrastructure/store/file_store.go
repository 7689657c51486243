package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

var _ repository.SessionStore = (*FileStore)(nil)

// FileStore persiste la sesión en un archivo JSON con tres entradas: token, username y rol.
// Sobrevive entre ejecuciones del CLI; no guarda expiración (la única señal es un 401).
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore construye el store sobre la ruta indicada. El directorio se crea al guardar.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del archivo de sesión.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.Session{}, nil
	}
	if err != nil {
		return entity.Session{}, fmt.Errorf("store: leer %s: %w", s.path, err)
	}
	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return entity.Session{}, fmt.Errorf("store: sesión corrupta en %s: %w", s.path, err)
	}
	return session, nil
}

// Save escribe en un archivo temporal y lo renombra, para que nunca quede una sesión a medias.
func (s *FileStore) Save(session entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("store: crear directorio: %w", err)
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("store: serializar sesión: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("store: crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: escribir sesión: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: cerrar temporal: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: permisos: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: reemplazar sesión: %w", err)
	}
	return nil
}

// Clear elimina el archivo; no es error si ya no existe.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: eliminar %s: %w", s.path, err)
	}
	return nil
}
